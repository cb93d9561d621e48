package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/design-tracker/internal/models"
)

type stubAPI struct {
	created []models.TaskPatch
	updated map[string]models.TaskPatch
	deleted []string
	err     error
	block   chan struct{}
}

func (s *stubAPI) wait() {
	if s.block != nil {
		<-s.block
	}
}

func (s *stubAPI) CreateTask(_ context.Context, patch models.TaskPatch) (*models.Task, error) {
	s.wait()
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, patch)
	task := &models.Task{ID: "new-id"}
	patch.Apply(task)
	return task, nil
}

func (s *stubAPI) UpdateTask(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	s.wait()
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		s.updated = map[string]models.TaskPatch{}
	}
	s.updated[id] = patch
	task := &models.Task{ID: id}
	patch.Apply(task)
	return task, nil
}

func (s *stubAPI) DeleteTask(_ context.Context, id string) error {
	s.wait()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func existingTask() *models.Task {
	return &models.Task{
		ID:         "t1",
		TaskName:   "Home Screen Re-work",
		Status:     models.TaskStatusInProgress,
		TaskType:   models.TaskTypeImprovement,
		Tags:       models.TagHalo,
		Assignee:   "Akash Roy, Kunal Verma",
		ReceivedBy: "Puneeth K",
		Delivery:   "2025-03-10T00:00:00.000Z",
	}
}

func TestNew_Defaults(t *testing.T) {
	f := New(nil, models.DefaultMembers)

	assert.True(t, f.IsNew())
	assert.Equal(t, models.TaskStatusNotStarted, f.Draft.Status)
	assert.Equal(t, models.TaskTypeFeature, f.Draft.TaskType)
	assert.Equal(t, models.TagTintin, f.Draft.Tags)
	assert.Empty(t, f.Assignee.Selected)
	assert.Equal(t, models.DefaultMembers, f.Assignee.Known)
}

func TestNew_FromTask(t *testing.T) {
	f := New(existingTask(), models.DefaultMembers)

	assert.False(t, f.IsNew())
	assert.Equal(t, "2025-03-10", f.Draft.Delivery)
	assert.Equal(t, []string{"Akash Roy", "Kunal Verma"}, f.Assignee.Selected)
	assert.Equal(t, []string{"Puneeth K"}, f.ReceivedBy.Selected)
}

func TestDraft_Validate(t *testing.T) {
	d := NewDraft()
	d.TaskName = "  "
	d.Delivery = "10/03/2025"
	d.AttachFile = "figma.com/file/abc"

	err := d.Validate()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "taskName is required", vErr.Fields["taskName"])
	assert.Contains(t, vErr.Fields, "delivery")
	assert.NotContains(t, vErr.Fields, "attachFile")

	d.TaskName = "Onboarding"
	d.Delivery = "2025-03-10"
	assert.NoError(t, d.Validate())
}

func TestSubmit_KeepsStoredFreeFormValues(t *testing.T) {
	api := &stubAPI{}
	task := existingTask()
	task.AttachFile = "figma.com/file/abc"
	task.ProductDoc = "see notion page"
	task.Delivery = "end of sprint"
	f := New(task, nil)
	f.Draft.Status = models.TaskStatusInReview

	saved, err := f.Submit(context.Background(), api, nil)
	require.NoError(t, err)
	require.Contains(t, api.updated, "t1")
	assert.Equal(t, "figma.com/file/abc", saved.AttachFile)
	assert.Equal(t, "end of sprint", saved.Delivery)

	f.Draft.Delivery = "next week"
	_, err = f.Submit(context.Background(), api, nil)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "delivery")

	f.Draft.Delivery = "end of sprint"
	f.Draft.TaskName = " "
	_, err = f.Submit(context.Background(), api, nil)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "taskName is required", vErr.Fields["taskName"])
}

func TestSubmit_CreatesNewTask(t *testing.T) {
	api := &stubAPI{}
	f := New(nil, nil)
	f.Draft.TaskName = "Onboarding"
	f.Assignee.Toggle("Akash Roy")

	refreshed := 0
	task, err := f.Submit(context.Background(), api, func(context.Context) { refreshed++ })
	require.NoError(t, err)
	assert.Equal(t, "new-id", task.ID)
	assert.Equal(t, "Akash Roy", task.Assignee)
	assert.Len(t, api.created, 1)
	assert.Equal(t, 1, refreshed)
	assert.False(t, f.Submitting())
}

func TestSubmit_UpdatesExistingTask(t *testing.T) {
	api := &stubAPI{}
	f := New(existingTask(), nil)
	f.Draft.Status = models.TaskStatusHandedOver
	f.Assignee.Toggle("Kunal Verma")

	task, err := f.Submit(context.Background(), api, nil)
	require.NoError(t, err)
	assert.Empty(t, api.created)
	require.Contains(t, api.updated, "t1")
	assert.Equal(t, models.TaskStatusHandedOver, task.Status)
	assert.Equal(t, "Akash Roy", task.Assignee)
}

func TestSubmit_InvalidDraftNotSent(t *testing.T) {
	api := &stubAPI{}
	f := New(nil, nil)

	_, err := f.Submit(context.Background(), api, nil)
	assert.Error(t, err)
	assert.Empty(t, api.created)
}

func TestSubmit_NoRefreshOnFailure(t *testing.T) {
	api := &stubAPI{err: errors.New("boom")}
	f := New(existingTask(), nil)

	refreshed := false
	_, err := f.Submit(context.Background(), api, func(context.Context) { refreshed = true })
	assert.Error(t, err)
	assert.False(t, refreshed)
}

func TestSubmit_RejectsDuplicateWhileInFlight(t *testing.T) {
	api := &stubAPI{block: make(chan struct{})}
	f := New(existingTask(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), api, nil)
		done <- err
	}()

	require.Eventually(t, f.Submitting, time.Second, time.Millisecond)
	_, err := f.Submit(context.Background(), api, nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(api.block)
	assert.NoError(t, <-done)
	assert.False(t, f.Submitting())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	api := &stubAPI{}
	f := New(existingTask(), nil)

	var prompt string
	err := f.Delete(ctx, api, func(p string) bool { prompt = p; return false }, nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, DeleteConfirmation, prompt)
	assert.Empty(t, api.deleted)

	refreshed := false
	err = f.Delete(ctx, api, func(string) bool { return true }, func(context.Context) { refreshed = true })
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, api.deleted)
	assert.True(t, refreshed)
}

func TestDelete_NewTask(t *testing.T) {
	f := New(nil, nil)
	err := f.Delete(context.Background(), &stubAPI{}, func(string) bool { return true }, nil)
	assert.ErrorIs(t, err, ErrNotSaved)
}
