package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

var usageFeatures = []string{
	models.FeatureQuotesCreated,
	models.FeatureAssessmentsQuoted,
	models.FeatureGlobalItemsCopied,
	models.FeatureDocumentsGenerated,
}

// HandleGetUsage returns the account's current-month counters next to the
// plan's limits.
func HandleGetUsage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)

	svc := usage.NewService(database.GetDB())
	out := fiber.Map{}
	for _, feature := range usageFeatures {
		count, err := svc.CurrentCount(userCtx.UserID, feature)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load usage"})
		}
		out[feature] = fiber.Map{
			"used":  count,
			"limit": entitlements.MonthlyLimit(plan, feature),
		}
	}

	return c.JSON(fiber.Map{"plan": string(plan), "usage": out})
}
