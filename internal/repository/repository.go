package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/design-tracker/internal/models"
)

var (
	// ErrNotFound is returned when no document matches an identifier.
	ErrNotFound = errors.New("repository: document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("repository: duplicate key")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List returns every task, most recently updated first
	List(ctx context.Context) ([]models.Task, error)

	// Create inserts a task and assigns its identifier
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by identifier
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// Update sets the given fields (keyed by wire field name) and returns the
	// task as stored after the update
	Update(ctx context.Context, id string, fields map[string]any) (*models.Task, error)

	// Delete removes a task permanently
	Delete(ctx context.Context, id string) error
}

// MemberRepository defines the interface for member roster access
type MemberRepository interface {
	// Count returns the number of members
	Count(ctx context.Context) (int64, error)

	// ListNames returns member names in ascending order
	ListNames(ctx context.Context) ([]string, error)

	// FindByName finds a member by exact name
	FindByName(ctx context.Context, name string) (*models.Member, error)

	// Create inserts one member
	Create(ctx context.Context, member *models.Member) error

	// CreateMany inserts several members at once
	CreateMany(ctx context.Context, members []models.Member) error
}
