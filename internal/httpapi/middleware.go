package httpapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"todoapi/internal/auth"
)

// claimsKey is the fiber.Ctx Locals key holding the verified claims.
const claimsKey = "claims"

// RevocationChecker answers whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware verifies the bearer token, rejects revoked sessions
// and stores the claims for handlers.
func AuthMiddleware(tokens *auth.TokenManager, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return unauthorized(c)
		}

		isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: "An internal error occurred",
			})
		}
		if isRevoked {
			return unauthorized(c)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Message: "Authentication required",
	})
}

// callerClaims returns the claims stored by AuthMiddleware.
func callerClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
