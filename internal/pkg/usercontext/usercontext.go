package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext carries the authenticated account through a request, whether
// it came in over a session cookie or an API key.
type UserContext struct {
	UserID     uint
	Username   string
	IsLoggedIn bool
	IsAdmin    bool
	Plan       string
}

// Set stores the context in the request's Locals.
func Set(c *fiber.Ctx, ctx UserContext) {
	c.Locals(ContextKey, ctx)
}

// GetUserContext returns the request's user context, anonymous when none of
// the auth middlewares set one.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(ContextKey).(UserContext); ok {
		return ctx
	}
	return UserContext{}
}
