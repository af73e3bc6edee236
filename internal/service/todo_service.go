package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// CreateTodoInput represents data required to create a todo.
type CreateTodoInput struct {
	Title string
	Desc  string
	Done  bool
}

// UpdateTodoInput carries a partial update; nil fields are untouched.
type UpdateTodoInput struct {
	Title *string
	Desc  *string
	Done  *bool
}

// CreateTodoResult is returned from Create.
type CreateTodoResult struct {
	Message string   `json:"message"`
	Todo    TodoView `json:"todo"`
}

// GetTodoResult is returned from Get.
type GetTodoResult struct {
	Todo TodoView `json:"todo"`
}

// ListTodosResult is an owner-scoped listing plus aggregate counts.
type ListTodosResult struct {
	Todos []TodoItemView          `json:"todos"`
	Stats repository.StatusCounts `json:"stats"`
}

// ListAllTodosResult is the unscoped listing with global counts.
type ListAllTodosResult struct {
	Todos []TodoView              `json:"todos"`
	Stats repository.StatusCounts `json:"stats"`
}

// UpdateTodoResult is returned from Update.
type UpdateTodoResult struct {
	Message string          `json:"message"`
	Todo    UpdatedTodoView `json:"todo"`
}

// DeleteTodoResult echoes the deleted record.
type DeleteTodoResult struct {
	Message     string          `json:"message"`
	DeletedTodo DeletedTodoView `json:"deletedTodo"`
}

// ToggleTodoResult is returned from Toggle.
type ToggleTodoResult struct {
	Message string          `json:"message"`
	Todo    ToggledTodoView `json:"todo"`
}

// SearchTodosResult carries matches plus the effective filter used.
type SearchTodosResult struct {
	SearchTerm string         `json:"searchTerm"`
	Status     string         `json:"status"`
	Todos      []TodoItemView `json:"todos"`
	Count      int            `json:"count"`
}

// TodoStats extends the raw counts with a completion percentage.
type TodoStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	Pending        int64 `json:"pending"`
	CompletionRate int   `json:"completionRate"`
}

// TodoStatsResult is returned from Stats.
type TodoStatsResult struct {
	Stats TodoStats `json:"stats"`
}

// TodoService owns ownership-scoped access to todo records.
type TodoService struct {
	todos *repository.TodoRepository
}

func NewTodoService(todos *repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// canAccess is the single ownership rule shared by Get, Update, Delete
// and Toggle: a record with no owner is open to any authenticated
// caller, an owned record only to its owner.
func canAccess(owner *uint, callerID uint) bool {
	return owner == nil || *owner == callerID
}

// fetchOwned loads a todo and applies the ownership rule for the caller.
func (s *TodoService) fetchOwned(ctx context.Context, todoID, callerID uint) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if !canAccess(todo.UserID, callerID) {
		return nil, ErrAccessDenied
	}
	return todo, nil
}

// Create validates and persists a new todo owned by the caller.
func (s *TodoService) Create(ctx context.Context, ownerID uint, input CreateTodoInput) (*CreateTodoResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	desc := strings.TrimSpace(input.Desc)
	if desc == "" {
		return nil, ErrEmptyDescription
	}

	todo := model.Todo{
		Title:       title,
		Description: desc,
		Done:        input.Done,
		UserID:      &ownerID,
	}
	if err := s.todos.Create(ctx, &todo); err != nil {
		return nil, err
	}

	return &CreateTodoResult{
		Message: "Todo created successfully",
		Todo:    projectTodo(&todo),
	}, nil
}

// Get returns a single todo visible to the caller.
func (s *TodoService) Get(ctx context.Context, todoID, callerID uint) (*GetTodoResult, error) {
	todo, err := s.fetchOwned(ctx, todoID, callerID)
	if err != nil {
		return nil, err
	}
	return &GetTodoResult{Todo: projectTodo(todo)}, nil
}

// ListForOwner returns the caller's todos with optional status filter
// plus aggregate counts.
func (s *TodoService) ListForOwner(ctx context.Context, ownerID uint, status string) (*ListTodosResult, error) {
	todos, err := s.todos.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	stats, err := s.todos.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ListTodosResult{Todos: projectTodoItems(todos), Stats: stats}, nil
}

// ListAll returns every todo with global counts. Reachable by any
// authenticated caller; intended as an admin view but no role check
// exists.
func (s *TodoService) ListAll(ctx context.Context) (*ListAllTodosResult, error) {
	todos, err := s.todos.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.todos.CountByStatus(ctx, 0)
	if err != nil {
		return nil, err
	}

	views := make([]TodoView, 0, len(todos))
	for i := range todos {
		views = append(views, projectTodo(&todos[i]))
	}
	return &ListAllTodosResult{Todos: views, Stats: stats}, nil
}

// Update applies a partial update to a todo the caller may modify.
func (s *TodoService) Update(ctx context.Context, todoID, callerID uint, input UpdateTodoInput) (*UpdateTodoResult, error) {
	if _, err := s.fetchOwned(ctx, todoID, callerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		fields["title"] = title
	}
	if input.Desc != nil {
		desc := strings.TrimSpace(*input.Desc)
		if desc == "" {
			return nil, ErrEmptyDescription
		}
		fields["description"] = desc
	}
	if input.Done != nil {
		fields["done"] = *input.Done
	}

	updated, err := s.todos.Update(ctx, todoID, fields)
	if err != nil {
		return nil, err
	}

	return &UpdateTodoResult{
		Message: "Todo updated successfully",
		Todo: UpdatedTodoView{
			ID:        updated.ID,
			Title:     updated.Title,
			Desc:      updated.Description,
			Done:      updated.Done,
			UserID:    updated.UserID,
			UpdatedAt: updated.UpdatedAt,
		},
	}, nil
}

// Delete removes a todo and echoes it as it stood before deletion.
func (s *TodoService) Delete(ctx context.Context, todoID, callerID uint) (*DeleteTodoResult, error) {
	todo, err := s.fetchOwned(ctx, todoID, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.todos.Delete(ctx, todoID); err != nil {
		return nil, err
	}

	return &DeleteTodoResult{
		Message: "Todo deleted successfully",
		DeletedTodo: DeletedTodoView{
			ID:    todo.ID,
			Title: todo.Title,
			Desc:  todo.Description,
			Done:  todo.Done,
		},
	}, nil
}

// Toggle flips the completion flag.
func (s *TodoService) Toggle(ctx context.Context, todoID, callerID uint) (*ToggleTodoResult, error) {
	todo, err := s.fetchOwned(ctx, todoID, callerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.todos.Update(ctx, todoID, map[string]interface{}{"done": !todo.Done})
	if err != nil {
		return nil, err
	}

	message := "Todo marked as pending"
	if updated.Done {
		message = "Todo marked as completed"
	}
	return &ToggleTodoResult{
		Message: message,
		Todo: ToggledTodoView{
			ID:        updated.ID,
			Title:     updated.Title,
			Desc:      updated.Description,
			Done:      updated.Done,
			UpdatedAt: updated.UpdatedAt,
		},
	}, nil
}

// Search finds the caller's todos whose title or description contains
// the term, then filters by status in memory.
func (s *TodoService) Search(ctx context.Context, callerID uint, term, status string) (*SearchTodosResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearchTerm
	}

	todos, err := s.todos.Search(ctx, callerID, term)
	if err != nil {
		return nil, err
	}

	switch status {
	case repository.StatusCompleted:
		todos = filterByDone(todos, true)
	case repository.StatusPending:
		todos = filterByDone(todos, false)
	default:
		status = "all"
	}

	items := projectTodoItems(todos)
	return &SearchTodosResult{
		SearchTerm: term,
		Status:     status,
		Todos:      items,
		Count:      len(items),
	}, nil
}

// Stats returns the caller's counts plus a completion percentage.
func (s *TodoService) Stats(ctx context.Context, ownerID uint) (*TodoStatsResult, error) {
	counts, err := s.todos.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rate := 0
	if counts.Total > 0 {
		rate = int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
	}
	return &TodoStatsResult{
		Stats: TodoStats{
			Total:          counts.Total,
			Completed:      counts.Completed,
			Pending:        counts.Pending,
			CompletionRate: rate,
		},
	}, nil
}

func filterByDone(todos []model.Todo, done bool) []model.Todo {
	filtered := todos[:0]
	for _, t := range todos {
		if t.Done == done {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
