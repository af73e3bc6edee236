package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// Status filter values accepted by ListByOwner.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// StatusCounts aggregates todos by completion state.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// TodoRepository handles CRUD for todos. Ownership checks are the
// service's job; lookups here are deliberately unscoped.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

// ListByOwner returns the owner's todos, optionally filtered by status.
// Completed listings are ordered by most recent update, everything else
// by most recent creation.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uint, status string) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	switch status {
	case StatusCompleted:
		q = q.Where("done = ?", true).Order("updated_at DESC")
	case StatusPending:
		q = q.Where("done = ?", false).Order("created_at DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var todos []model.Todo
	if err := q.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// ListAll returns every todo regardless of owner, newest first.
func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	return todos, nil
}

// Search matches the term as a substring of title or description,
// scoped to the owner.
func (r *TodoRepository) Search(ctx context.Context, ownerID uint, term string) ([]model.Todo, error) {
	pattern := "%" + term + "%"
	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND (title LIKE ? OR description LIKE ?)", ownerID, pattern, pattern).
		Order("created_at DESC").
		Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("search todos: %w", err)
	}
	return todos, nil
}

// Update applies the given fields and returns the fresh record. An
// empty field set is a read.
func (r *TodoRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Todo, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Todo{}, id).Error; err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// CountByStatus aggregates completion counts for one owner, or across
// all todos when ownerID is 0.
func (r *TodoRepository) CountByStatus(ctx context.Context, ownerID uint) (StatusCounts, error) {
	var counts StatusCounts
	base := r.db.WithContext(ctx).Model(&model.Todo{})
	if ownerID != 0 {
		base = base.Where("user_id = ?", ownerID)
	}

	if err := base.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return counts, fmt.Errorf("count todos: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("done = ?", true).Count(&counts.Completed).Error; err != nil {
		return counts, fmt.Errorf("count completed todos: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("done = ?", false).Count(&counts.Pending).Error; err != nil {
		return counts, fmt.Errorf("count pending todos: %w", err)
	}
	return counts, nil
}
