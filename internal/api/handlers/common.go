package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// getUserID returns the acting user id as placed in the context by the auth
// middleware. Handlers never trust user ids from request bodies or params.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// pathUserMismatch reports whether a :userId path segment names a different
// user than the authenticated one. The path segment exists for API-shape
// compatibility; the token is the source of truth.
func pathUserMismatch(c *fiber.Ctx, userID uuid.UUID) bool {
	pathUser := c.Params("userId")
	return pathUser != "" && pathUser != userID.String()
}
