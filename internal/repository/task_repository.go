package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/design-tracker/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// taskColumns maps wire field names to task table columns
var taskColumns = map[string]string{
	models.FieldTaskName:    "task_name",
	models.FieldDescription: "description",
	models.FieldStatus:      "status",
	models.FieldTaskType:    "task_type",
	models.FieldTags:        "tags",
	models.FieldAssignee:    "assignee",
	models.FieldReceivedBy:  "received_by",
	models.FieldDelivery:    "delivery",
	models.FieldAttachFile:  "attach_file",
	models.FieldProductDoc:  "product_doc",
	models.FieldCreatedAt:   "created_at",
	models.FieldUpdatedAt:   "updated_at",
}

// List retrieves all tasks, most recently updated first
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := r.db.WithContext(ctx).Scopes(OrderByUpdatedDesc).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	if err := validateRowID(id); err != nil {
		return nil, err
	}

	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(ByID(id)).First(&task).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &task, nil
}

// Update sets the given fields and reloads the task in one transaction
func (r *GormTaskRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Task, error) {
	if err := validateRowID(id); err != nil {
		return nil, err
	}

	columns := make(map[string]any, len(fields))
	for name, value := range fields {
		column, ok := taskColumns[name]
		if !ok {
			return nil, fmt.Errorf("unknown task field %q", name)
		}
		columns[column] = value
	}

	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ByID(id)).First(&task).Error; err != nil {
			return translateGormError(err)
		}
		if len(columns) > 0 {
			if err := tx.Model(&models.Task{}).Scopes(ByID(id)).Updates(columns).Error; err != nil {
				return err
			}
		}
		return tx.Scopes(ByID(id)).First(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	if err := validateRowID(id); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Scopes(ByID(id)).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validateRowID rejects identifiers that this store could never have issued
func validateRowID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid identifier %q: %w", id, err)
	}
	return nil
}

func translateGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
