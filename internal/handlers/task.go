package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/dto"
	apierrors "github.com/yukikurage/design-tracker/internal/errors"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *logrus.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns all tasks, most recently updated first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req models.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask merges the request body into an existing task. Identifier and
// timestamps in the body are ignored.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req models.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.log, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}
