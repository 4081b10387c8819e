package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/onboarding"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type onboardingStepRequest struct {
	Step  string `json:"step"`
	Final bool   `json:"final"`
}

// HandleGetOnboardingProgress returns the caller's progress for one tour.
func HandleGetOnboardingProgress(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tourKey := c.Params("tourKey")
	if tourKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing tour key"})
	}

	svc := onboarding.NewService(database.GetDB())
	progress, err := svc.GetOrCreateProgress(c.Context(), userCtx.UserID, tourKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load progress"})
	}
	return c.JSON(progress)
}

// HandleCompleteOnboardingStep records a finished tour step.
func HandleCompleteOnboardingStep(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tourKey := c.Params("tourKey")
	if tourKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing tour key"})
	}

	var req onboardingStepRequest
	if err := c.BodyParser(&req); err != nil || req.Step == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Step missing"})
	}

	svc := onboarding.NewService(database.GetDB())
	progress, err := svc.CompleteStep(c.Context(), userCtx.UserID, tourKey, req.Step, req.Final)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to record step"})
	}
	return c.JSON(progress)
}

// HandleSkipOnboardingTour dismisses a tour without completing it.
func HandleSkipOnboardingTour(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tourKey := c.Params("tourKey")
	if tourKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing tour key"})
	}

	svc := onboarding.NewService(database.GetDB())
	progress, err := svc.SkipTour(c.Context(), userCtx.UserID, tourKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to skip tour"})
	}
	return c.JSON(progress)
}
