package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func newTodoEnv(t *testing.T) (*TodoService, *repository.TodoRepository) {
	t.Helper()
	repo := repository.NewTodoRepository(newTestDB(t))
	return NewTodoService(repo), repo
}

func seedTodo(t *testing.T, repo *repository.TodoRepository, owner *uint, title, desc string, done bool) *model.Todo {
	t.Helper()
	todo := model.Todo{Title: title, Description: desc, Done: done, UserID: owner}
	require.NoError(t, repo.Create(context.Background(), &todo))
	return &todo
}

func ptr(v uint) *uint { return &v }

func ptrStr(v string) *string { return &v }

func TestCreateTrimsAndPersists(t *testing.T) {
	svc, _ := newTodoEnv(t)

	result, err := svc.Create(context.Background(), 1, CreateTodoInput{Title: "  Buy milk  ", Desc: "  2%  "})
	require.NoError(t, err)

	assert.Equal(t, "Todo created successfully", result.Message)
	assert.Equal(t, "Buy milk", result.Todo.Title)
	assert.Equal(t, "2%", result.Todo.Desc)
	assert.False(t, result.Todo.Done)
	require.NotNil(t, result.Todo.UserID)
	assert.Equal(t, uint(1), *result.Todo.UserID)
	assert.NotZero(t, result.Todo.ID)
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc, _ := newTodoEnv(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateTodoInput{Title: "   ", Desc: "x"})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, 1, CreateTodoInput{Title: "x", Desc: "   "})
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestOwnedTodoDeniedForOtherCallers(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, ptr(1), "mine", "secret", false)

	title := "x"
	ops := map[string]func() error{
		"get":    func() error { _, err := svc.Get(ctx, todo.ID, 2); return err },
		"update": func() error { _, err := svc.Update(ctx, todo.ID, 2, UpdateTodoInput{Title: &title}); return err },
		"delete": func() error { _, err := svc.Delete(ctx, todo.ID, 2); return err },
		"toggle": func() error { _, err := svc.Toggle(ctx, todo.ID, 2); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrAccessDenied)
		})
	}
}

func TestUnownedTodoOpenToAnyCaller(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, nil, "legacy", "no owner", false)

	_, err := svc.Get(ctx, todo.ID, 99)
	require.NoError(t, err)

	title := "renamed"
	_, err = svc.Update(ctx, todo.ID, 99, UpdateTodoInput{Title: &title})
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, todo.ID, 99)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, todo.ID, 99)
	require.NoError(t, err)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTodoEnv(t)

	_, err := svc.Get(context.Background(), 12345, 1)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, ptr(1), "old title", "old desc", false)

	title := "  new title  "
	result, err := svc.Update(ctx, todo.ID, 1, UpdateTodoInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "new title", result.Todo.Title)
	assert.Equal(t, "old desc", result.Todo.Desc)
	assert.False(t, result.Todo.Done)
}

func TestUpdateRejectsBlankProvidedFields(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, ptr(1), "title", "desc", false)

	blank := "   "
	_, err := svc.Update(ctx, todo.ID, 1, UpdateTodoInput{Title: &blank})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Update(ctx, todo.ID, 1, UpdateTodoInput{Desc: &blank})
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, ptr(1), "Buy milk", "2%", false)

	first, err := svc.Toggle(ctx, todo.ID, 1)
	require.NoError(t, err)
	assert.True(t, first.Todo.Done)
	assert.Equal(t, "Todo marked as completed", first.Message)

	// The toggle projection reports the record without its owner.
	payload, err := json.Marshal(first.Todo)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "userId")

	second, err := svc.Toggle(ctx, todo.ID, 1)
	require.NoError(t, err)
	assert.False(t, second.Todo.Done)
	assert.Equal(t, "Todo marked as pending", second.Message)
}

func TestDeleteEchoesPriorState(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	todo := seedTodo(t, repo, ptr(1), "gone soon", "bye", true)

	result, err := svc.Delete(ctx, todo.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Todo deleted successfully", result.Message)
	assert.Equal(t, todo.ID, result.DeletedTodo.ID)
	assert.Equal(t, "gone soon", result.DeletedTodo.Title)
	assert.True(t, result.DeletedTodo.Done)

	_, err = svc.Get(ctx, todo.ID, 1)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestListForOwnerFiltersAndCounts(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	seedTodo(t, repo, ptr(1), "a", "d", false)
	seedTodo(t, repo, ptr(1), "b", "d", true)
	seedTodo(t, repo, ptr(1), "c", "d", true)
	seedTodo(t, repo, ptr(2), "other", "d", false)

	all, err := svc.ListForOwner(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all.Todos, 3)
	assert.Equal(t, int64(3), all.Stats.Total)
	assert.Equal(t, int64(2), all.Stats.Completed)
	assert.Equal(t, int64(1), all.Stats.Pending)

	completed, err := svc.ListForOwner(ctx, 1, "completed")
	require.NoError(t, err)
	require.Len(t, completed.Todos, 2)
	for _, item := range completed.Todos {
		assert.True(t, item.Done)
	}

	pending, err := svc.ListForOwner(ctx, 1, "pending")
	require.NoError(t, err)
	require.Len(t, pending.Todos, 1)
	assert.Equal(t, "a", pending.Todos[0].Title)
}

func TestListForOwnerOrdersNewestFirst(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	older := model.Todo{Title: "older", Description: "d", UserID: ptr(1), CreatedAt: base, UpdatedAt: base}
	require.NoError(t, repo.Create(ctx, &older))
	newer := model.Todo{Title: "newer", Description: "d", UserID: ptr(1), CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, &newer))

	result, err := svc.ListForOwner(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, result.Todos, 2)
	assert.Equal(t, "newer", result.Todos[0].Title)
	assert.Equal(t, "older", result.Todos[1].Title)
}

func TestListForOwnerCompletedOrdersByUpdateTime(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	first := model.Todo{Title: "first created", Description: "d", Done: true, UserID: ptr(1), CreatedAt: base, UpdatedAt: base}
	require.NoError(t, repo.Create(ctx, &first))
	second := model.Todo{Title: "second created", Description: "d", Done: true, UserID: ptr(1), CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, &second))

	// Touch the older record so its update time becomes the newest.
	_, err := svc.Update(ctx, first.ID, 1, UpdateTodoInput{Desc: ptrStr("touched")})
	require.NoError(t, err)

	completed, err := svc.ListForOwner(ctx, 1, "completed")
	require.NoError(t, err)
	require.Len(t, completed.Todos, 2)
	assert.Equal(t, "first created", completed.Todos[0].Title)
	assert.Equal(t, "second created", completed.Todos[1].Title)

	// The unfiltered listing still follows creation order.
	all, err := svc.ListForOwner(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, all.Todos, 2)
	assert.Equal(t, "second created", all.Todos[0].Title)
}

func TestListAllIgnoresOwnership(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	seedTodo(t, repo, ptr(1), "a", "d", true)
	seedTodo(t, repo, ptr(2), "b", "d", false)
	seedTodo(t, repo, nil, "c", "d", false)

	result, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Todos, 3)
	assert.Equal(t, int64(3), result.Stats.Total)
	assert.Equal(t, int64(1), result.Stats.Completed)
	assert.Equal(t, int64(2), result.Stats.Pending)
}

func TestSearchScopesToOwnerAndStatus(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	seedTodo(t, repo, ptr(1), "foo done", "d", true)
	seedTodo(t, repo, ptr(1), "foo open", "d", false)
	seedTodo(t, repo, ptr(1), "bar", "contains foo inside", false)
	seedTodo(t, repo, ptr(2), "foo other owner", "d", true)

	result, err := svc.Search(ctx, 1, "foo", "completed")
	require.NoError(t, err)
	assert.Equal(t, "foo", result.SearchTerm)
	assert.Equal(t, "completed", result.Status)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "foo done", result.Todos[0].Title)
}

func TestSearchMatchesTitleOrDescription(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	seedTodo(t, repo, ptr(1), "groceries", "buy milk", false)
	seedTodo(t, repo, ptr(1), "milk run", "quick errand", false)
	seedTodo(t, repo, ptr(1), "unrelated", "nothing here", false)

	result, err := svc.Search(ctx, 1, "milk", "")
	require.NoError(t, err)
	assert.Equal(t, "all", result.Status)
	assert.Equal(t, 2, result.Count)
}

func TestSearchRejectsBlankTerm(t *testing.T) {
	svc, _ := newTodoEnv(t)

	_, err := svc.Search(context.Background(), 1, "   ", "")
	assert.ErrorIs(t, err, ErrEmptySearchTerm)
}

func TestStats(t *testing.T) {
	svc, repo := newTodoEnv(t)
	ctx := context.Background()
	seedTodo(t, repo, ptr(1), "a", "d", true)
	seedTodo(t, repo, ptr(1), "b", "d", true)
	seedTodo(t, repo, ptr(1), "c", "d", false)

	result, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Stats.Total)
	assert.Equal(t, int64(2), result.Stats.Completed)
	assert.Equal(t, int64(1), result.Stats.Pending)
	assert.Equal(t, result.Stats.Total, result.Stats.Completed+result.Stats.Pending)
	assert.Equal(t, 67, result.Stats.CompletionRate)
}

func TestStatsEmpty(t *testing.T) {
	svc, _ := newTodoEnv(t)

	result, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Stats.Total)
	assert.Equal(t, 0, result.Stats.CompletionRate)
}
