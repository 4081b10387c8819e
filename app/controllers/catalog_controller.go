package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/catalog"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// HandleListGlobalItems returns the shared catalog with per-user lock and
// favorite annotations. Premium entries are visible but locked on free plans.
func HandleListGlobalItems(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)

	svc := catalog.NewService(database.GetDB())
	items, err := svc.ListVisibleItems(c.Context(), userCtx.UserID, plan)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load global catalog"})
	}
	return c.JSON(fiber.Map{"items": items, "plan": string(plan)})
}

// HandleCopyGlobalItem copies a shared catalog entry into the account's
// private catalog, enforcing tier access and the monthly copy allowance.
func HandleCopyGlobalItem(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	plan := entitlements.Normalize(userCtx.Plan)
	svc := catalog.NewService(database.GetDB())
	item, err := svc.CopyGlobalItem(c.Context(), userCtx.UserID, plan, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Global item not found"})
		case errors.Is(err, catalog.ErrItemAccessDenied):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "tier_locked", "message": "This item requires a premium plan"})
		case errors.Is(err, usage.ErrLimitReached):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly copy limit reached for your plan"})
		default:
			log.Errorf("global item copy failed for user %d: %v", userCtx.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Copy failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleFavoriteGlobalItem toggles the favorite flag on a shared catalog
// entry for this account.
func HandleFavoriteGlobalItem(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	svc := catalog.NewService(database.GetDB())
	if err := svc.FavoriteGlobalItem(c.Context(), userCtx.UserID, uint(id), req.Favorite); err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Global item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Favorite update failed"})
	}
	return c.JSON(fiber.Map{"ok": true, "favorite": req.Favorite})
}
