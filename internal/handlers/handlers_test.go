package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/design-tracker/internal/dto"
	apierrors "github.com/yukikurage/design-tracker/internal/errors"
	"github.com/yukikurage/design-tracker/internal/logging"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/repository"
	"github.com/yukikurage/design-tracker/internal/services"
	"github.com/yukikurage/design-tracker/internal/testutil"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// HandlerTestSuite exercises the full router over an in-memory SQLite store
type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLiteDB(suite.T())

	suite.router = NewRouter(Dependencies{
		Tasks:   services.NewTaskService(repository.NewTaskRepository(db)),
		Members: services.NewMemberService(repository.NewMemberRepository(db), models.DefaultMembers),
		Store:   fakePinger{},
		Log:     logging.Discard(),
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlerTestSuite) createTask(body map[string]any) dto.TaskDTO {
	w := suite.do(http.MethodPost, "/api/tasks", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var task dto.TaskDTO
	suite.decode(w, &task)
	return task
}

func (suite *HandlerTestSuite) TestCreateThenList() {
	created := suite.createTask(map[string]any{
		"taskName": "Home Screen Re-work",
		"status":   "In progress",
		"tags":     "Nexus",
		"assignee": "Akash Roy, Kunal Verma",
	})

	suite.NotEmpty(created.ID)
	suite.Equal("In progress", created.Status)
	suite.NotEmpty(created.CreatedAt)
	suite.Equal(created.CreatedAt, created.UpdatedAt)

	w := suite.do(http.MethodGet, "/api/tasks", nil)
	suite.Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Require().Len(tasks, 1)
	suite.Equal(created, tasks[0])
}

func (suite *HandlerTestSuite) TestListTasks_EmptyArray() {
	w := suite.do(http.MethodGet, "/api/tasks", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateTask_DefaultStatus() {
	created := suite.createTask(map[string]any{"taskName": "No status"})
	suite.Equal(models.TaskStatusNotStarted, created.Status)
}

func (suite *HandlerTestSuite) TestCreateTask_Validation() {
	w := suite.do(http.MethodPost, "/api/tasks", map[string]any{"taskName": ""})
	suite.Equal(http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeMissingField, apiErr.Code)

	w = suite.do(http.MethodPost, "/api/tasks", `{"taskName": `)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask() {
	created := suite.createTask(map[string]any{"taskName": "Fetch me"})

	w := suite.do(http.MethodGet, "/api/tasks/"+created.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(created, task)

	w = suite.do(http.MethodGet, "/api/tasks/0f8fad5b-d9cb-469f-a165-70867728950e", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask_MalformedID() {
	w := suite.do(http.MethodGet, "/api/tasks/not-an-id", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeInternalError, apiErr.Code)
	suite.NotContains(apiErr.Message, "not-an-id")
}

func (suite *HandlerTestSuite) TestUpdateTask_IgnoresIdentifierAndTimestamps() {
	created := suite.createTask(map[string]any{"taskName": "Original", "tags": "Halo"})

	w := suite.do(http.MethodPut, "/api/tasks/"+created.ID, map[string]any{
		"_id":       "someone-else",
		"createdAt": "1999-01-01T00:00:00.000Z",
		"updatedAt": "1999-01-01T00:00:00.000Z",
		"status":    "In review",
		"tags":      "Halo",
	})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal(created.ID, updated.ID)
	suite.Equal("Original", updated.TaskName)
	suite.Equal("In review", updated.Status)
	suite.Equal("Halo", updated.Tags)
	suite.Equal(created.CreatedAt, updated.CreatedAt)
	suite.GreaterOrEqual(updated.UpdatedAt, created.UpdatedAt)
	suite.NotEqual("1999-01-01T00:00:00.000Z", updated.UpdatedAt)
}

func (suite *HandlerTestSuite) TestUpdateTask_FallbackTag() {
	created := suite.createTask(map[string]any{"taskName": "Tagged", "tags": "Nexus"})

	w := suite.do(http.MethodPut, "/api/tasks/"+created.ID, map[string]any{"status": "Handed-over"})
	suite.Equal(http.StatusOK, w.Code)

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal(models.FallbackTag, updated.Tags)
}

func (suite *HandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.do(http.MethodPut, "/api/tasks/0f8fad5b-d9cb-469f-a165-70867728950e", map[string]any{"status": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	created := suite.createTask(map[string]any{"taskName": "Doomed"})

	w := suite.do(http.MethodDelete, "/api/tasks/"+created.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true}`, w.Body.String())

	w = suite.do(http.MethodDelete, "/api/tasks/"+created.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/tasks/"+created.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestMembers() {
	w := suite.do(http.MethodGet, "/api/members", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`["Akash Roy","Kunal Verma"]`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/members", map[string]any{"name": "  Puneeth K "})
	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"name":"Puneeth K"}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/members", map[string]any{"name": "Puneeth K"})
	suite.Equal(http.StatusConflict, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal("Member already exists", apiErr.Message)

	w = suite.do(http.MethodPost, "/api/members", map[string]any{"name": " "})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.decode(w, &apiErr)
	suite.Equal("Name is required", apiErr.Message)

	w = suite.do(http.MethodGet, "/api/members", nil)
	suite.JSONEq(`["Akash Roy","Kunal Verma","Puneeth K"]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok","store":"ok"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth_StoreDown() {
	suite.router = NewRouter(Dependencies{
		Store: fakePinger{err: errors.New("dial tcp: connection refused")},
		Log:   logging.Discard(),
	})

	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
