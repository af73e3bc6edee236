package httpapi

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"todoapi/internal/auth"
	"todoapi/internal/service"
)

// Server is the HTTP boundary over the account and todo services. It
// owns routing, payload shaping and the failure-to-status mapping; all
// business rules live in the services.
type Server struct {
	app      *fiber.App
	accounts *service.AccountService
	todos    *service.TodoService
}

func NewServer(accounts *service.AccountService, todos *service.TodoService, tokens *auth.TokenManager, revoked RevocationChecker) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		accounts: accounts,
		todos:    todos,
	}

	requireAuth := AuthMiddleware(tokens, revoked)
	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)
	authGroup.Get("/profile", requireAuth, s.profile)
	authGroup.Get("/profile/todos", requireAuth, s.profileWithTodos)
	authGroup.Put("/profile", requireAuth, s.updateProfile)
	authGroup.Post("/logout", requireAuth, s.logout)
	authGroup.Delete("/account", requireAuth, s.deleteAccount)
	// Admin view; no role check is enforced.
	authGroup.Get("/users", requireAuth, s.listUsers)

	todoGroup := api.Group("/todos", requireAuth)
	todoGroup.Get("/", s.listTodos)
	todoGroup.Post("/", s.createTodo)
	todoGroup.Get("/search", s.searchTodos)
	todoGroup.Get("/stats", s.todoStats)
	// Admin view; no role check is enforced.
	todoGroup.Get("/admin/all", s.listAllTodos)
	todoGroup.Get("/:id", s.getTodo)
	todoGroup.Put("/:id", s.updateTodo)
	todoGroup.Delete("/:id", s.deleteTodo)
	todoGroup.Patch("/:id/toggle", s.toggleTodo)

	return s
}

// Listen blocks serving requests on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// respondError maps a service failure to a transport status. Unknown
// errors are logged and hidden behind a generic message.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTodoNotFound) || errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrEmptyTitle) ||
		errors.Is(err, service.ErrEmptyDescription) ||
		errors.Is(err, service.ErrEmptySearchTerm) ||
		errors.Is(err, service.ErrDuplicateEmail):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: message})
}
