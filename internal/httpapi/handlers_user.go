package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"todoapi/internal/service"
)

func (s *Server) register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.accounts.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) profile(c *fiber.Ctx) error {
	result, err := s.accounts.Profile(c.UserContext(), callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) profileWithTodos(c *fiber.Ctx) error {
	result, err := s.accounts.ProfileWithTodos(c.UserContext(), callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.accounts.UpdateProfile(c.UserContext(), callerClaims(c).UserID, service.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	result, err := s.accounts.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) deleteAccount(c *fiber.Ctx) error {
	result, err := s.accounts.DeleteAccount(c.UserContext(), callerClaims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) logout(c *fiber.Ctx) error {
	claims := callerClaims(c)
	result, err := s.accounts.Logout(c.UserContext(), claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
