package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is the single authentication choke point: bearer token
// out of the Authorization header, signature/expiry check, account
// load, user bound to the request context. Every failure mode is the
// same uniform 401.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return unauthorized(c)
	}

	rawToken := authHeader
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		rawToken = strings.TrimSpace(authHeader[7:])
	}

	userID, err := handler.tokens.Validate(rawToken)
	if err != nil {
		return unauthorized(c)
	}

	user, err := handler.repos.Users.FindByID(userID)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
