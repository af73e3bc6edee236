package service

import (
	"time"

	"todoapi/internal/model"
)

// Projections are strict allow-lists: a view struct names every field a
// caller may see, so adding a column to a model never leaks it by
// accident. The password hash in particular has no view field anywhere.

// TodoView is the full todo projection, owner included.
type TodoView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Done      bool      `json:"done"`
	UserID    *uint     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TodoItemView is the projection used in per-owner listings, where the
// owner column would be redundant.
type TodoItemView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeletedTodoView echoes the record as it stood before deletion.
type DeletedTodoView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Done  bool   `json:"done"`
}

// UpdatedTodoView is the post-update projection; creation time is not
// re-reported.
type UpdatedTodoView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Done      bool      `json:"done"`
	UserID    *uint     `json:"userId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToggledTodoView is the post-toggle projection; neither timestamp of
// creation nor the owner is re-reported.
type ToggledTodoView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Done      bool      `json:"done"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserView is the public user projection.
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWithTodosView is UserView plus the owned todo list.
type UserWithTodosView struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Todos     []TodoItemView `json:"todos"`
}

func projectTodo(t *model.Todo) TodoView {
	return TodoView{
		ID:        t.ID,
		Title:     t.Title,
		Desc:      t.Description,
		Done:      t.Done,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func projectTodoItem(t *model.Todo) TodoItemView {
	return TodoItemView{
		ID:        t.ID,
		Title:     t.Title,
		Desc:      t.Description,
		Done:      t.Done,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func projectTodoItems(todos []model.Todo) []TodoItemView {
	items := make([]TodoItemView, 0, len(todos))
	for i := range todos {
		items = append(items, projectTodoItem(&todos[i]))
	}
	return items
}

func projectUser(u *model.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
