package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathUserMismatch(t *testing.T) {
	userID := uuid.New()

	app := fiber.New()
	app.Get("/u/:userId", func(c *fiber.Ctx) error {
		if pathUserMismatch(c, userID) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/u/"+userID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/u/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		c.Locals("userID", userID.String())
		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		_, err := getUserID(c)
		assert.Error(t, err)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
}
