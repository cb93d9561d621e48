package database

import (
	"context"

	"github.com/yukikurage/design-tracker/internal/models"
)

type lazyTaskRepository struct {
	h *Handle
}

func (r *lazyTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	return withConnection(ctx, r.h, func(c *connection) ([]models.Task, error) {
		return c.tasks().List(ctx)
	})
}

func (r *lazyTaskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := withConnection(ctx, r.h, func(c *connection) (struct{}, error) {
		return struct{}{}, c.tasks().Create(ctx, task)
	})
	return err
}

func (r *lazyTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	return withConnection(ctx, r.h, func(c *connection) (*models.Task, error) {
		return c.tasks().FindByID(ctx, id)
	})
}

func (r *lazyTaskRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Task, error) {
	return withConnection(ctx, r.h, func(c *connection) (*models.Task, error) {
		return c.tasks().Update(ctx, id, fields)
	})
}

func (r *lazyTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := withConnection(ctx, r.h, func(c *connection) (struct{}, error) {
		return struct{}{}, c.tasks().Delete(ctx, id)
	})
	return err
}

type lazyMemberRepository struct {
	h *Handle
}

func (r *lazyMemberRepository) Count(ctx context.Context) (int64, error) {
	return withConnection(ctx, r.h, func(c *connection) (int64, error) {
		return c.members().Count(ctx)
	})
}

func (r *lazyMemberRepository) ListNames(ctx context.Context) ([]string, error) {
	return withConnection(ctx, r.h, func(c *connection) ([]string, error) {
		return c.members().ListNames(ctx)
	})
}

func (r *lazyMemberRepository) FindByName(ctx context.Context, name string) (*models.Member, error) {
	return withConnection(ctx, r.h, func(c *connection) (*models.Member, error) {
		return c.members().FindByName(ctx, name)
	})
}

func (r *lazyMemberRepository) Create(ctx context.Context, member *models.Member) error {
	_, err := withConnection(ctx, r.h, func(c *connection) (struct{}, error) {
		return struct{}{}, c.members().Create(ctx, member)
	})
	return err
}

func (r *lazyMemberRepository) CreateMany(ctx context.Context, members []models.Member) error {
	_, err := withConnection(ctx, r.h, func(c *connection) (struct{}, error) {
		return struct{}{}, c.members().CreateMany(ctx, members)
	})
	return err
}
