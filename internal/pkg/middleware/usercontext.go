package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/session"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	// Get user ID from session
	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous(c)
	}

	// User is logged in - get additional data
	username := session.GetSessionValue(c, usercontext.KeyUsername)
	isAdmin := sess.Get(usercontext.KeyIsAdmin)

	// Determine plan with session-first strategy
	plan := session.GetSessionValue(c, usercontext.KeyPlan)
	if plan == "" {
		plan = "free"
		if db := database.GetDB(); db != nil {
			if cs, err := models.GetOrCreateCompanySettings(db, userID.(uint)); err == nil && cs != nil && cs.Plan != "" {
				plan = cs.Plan
			}
		}
		// cache in session for subsequent requests
		_ = session.SetSessionValue(c, usercontext.KeyPlan, plan)
	}

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin != nil && isAdmin.(bool),
		Plan:       plan,
	}
	usercontext.Set(c, userCtx)

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyUserID, userID.(uint))
	c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

	// Store username in user's individual session (multi-user safe)
	session.SetSessionValue(c, usercontext.KeyUsername, username)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	usercontext.Set(c, usercontext.UserContext{})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
	return c.Next()
}
