package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNameRequired = errors.New("taskName is required")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// timestamp returns the current time as stores keep it: UTC, millisecond precision
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ListTasks returns every task, most recently updated first
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores a new task built from patch
func (s *TaskService) CreateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error) {
	if patch.TaskName == nil || strings.TrimSpace(*patch.TaskName) == "" {
		return nil, ErrTaskNameRequired
	}

	task := &models.Task{Status: models.TaskStatusNotStarted}
	patch.Apply(task)
	if task.Status == "" {
		task.Status = models.TaskStatusNotStarted
	}

	now := s.timestamp()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetTask returns one task
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask merges patch into the task identified by id. A task is never
// left without a tag: an absent or empty tags value stores the fallback tag.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.TaskName != nil && strings.TrimSpace(*patch.TaskName) == "" {
		return nil, ErrTaskNameRequired
	}

	fields := patch.Values()
	if patch.Tags == nil || *patch.Tags == "" {
		fields[models.FieldTags] = models.FallbackTag
	}
	fields[models.FieldUpdatedAt] = s.timestamp()

	task, err := s.taskRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task permanently
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
