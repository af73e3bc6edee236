package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"todoapi/internal/service"
)

func (s *Server) createTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.todos.Create(c.UserContext(), callerClaims(c).UserID, service.CreateTodoInput{
		Title: req.Title,
		Desc:  req.Desc,
		Done:  req.Done,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (s *Server) listTodos(c *fiber.Ctx) error {
	status := c.Query("status")
	if !validStatus(status) {
		return badRequest(c, "status must be one of: all, completed, pending")
	}

	result, err := s.todos.ListForOwner(c.UserContext(), callerClaims(c).UserID, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) listAllTodos(c *fiber.Ctx) error {
	result, err := s.todos.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) getTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "Todo ID must be a positive number")
	}

	result, err := s.todos.Get(c.UserContext(), id, callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) updateTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "Todo ID must be a positive number")
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.todos.Update(c.UserContext(), id, callerClaims(c).UserID, service.UpdateTodoInput{
		Title: req.Title,
		Desc:  req.Desc,
		Done:  req.Done,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) deleteTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "Todo ID must be a positive number")
	}

	result, err := s.todos.Delete(c.UserContext(), id, callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) toggleTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "Todo ID must be a positive number")
	}

	result, err := s.todos.Toggle(c.UserContext(), id, callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) searchTodos(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) > 255 {
		return badRequest(c, "search query must not exceed 255 characters")
	}
	status := c.Query("status")
	if !validStatus(status) {
		return badRequest(c, "status must be one of: all, completed, pending")
	}

	result, err := s.todos.Search(c.UserContext(), callerClaims(c).UserID, query, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) todoStats(c *fiber.Ctx) error {
	result, err := s.todos.Stats(c.UserContext(), callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func todoID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
