package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terminaltitans/skillchain/internal/model"
)

const userLocalsKey = "user"

// TokenValidator verifies a bearer token and returns the user it belongs to.
// Declared here so the middleware does not import the JWT service directly.
type TokenValidator interface {
	ValidateToken(token string) (*model.User, error)
}

// Auth rejects requests without a valid bearer token. Operations that mint
// or analyze require an authenticated actor; the employer lookup does not.
func Auth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required. Please log in to continue.",
			})
		}
		user, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired session. Please log in again.",
			})
		}
		c.Locals(userLocalsKey, *user)
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user set by Auth.
func UserFromCtx(c *fiber.Ctx) (model.User, bool) {
	user, ok := c.Locals(userLocalsKey).(model.User)
	return user, ok
}
