package usercontext

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserContextAnonymousDefault(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := GetUserContext(c)
		assert.False(t, ctx.IsLoggedIn)
		assert.False(t, ctx.IsAdmin)
		assert.Zero(t, ctx.UserID)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSetAndGetUserContext(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		Set(c, UserContext{UserID: 7, Username: "pat", IsLoggedIn: true, Plan: "premium"})

		got := GetUserContext(c)
		assert.Equal(t, uint(7), got.UserID)
		assert.Equal(t, "pat", got.Username)
		assert.True(t, got.IsLoggedIn)
		assert.False(t, got.IsAdmin)
		assert.Equal(t, "premium", got.Plan)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
