package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/pricing"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type quoteRequest struct {
	ClientID   uint               `json:"client_id"`
	PropertyID *uint              `json:"property_id"`
	Title      string             `json:"title"`
	Notes      string             `json:"notes"`
	TaxRate    *float64           `json:"tax_rate"`
	MarkupRate *float64           `json:"markup_rate"`
	ValidDays  int                `json:"valid_days"`
	Lines      []models.QuoteLine `json:"lines"`
}

type quoteTransitionRequest struct {
	Status string `json:"status"`
}

// HandleListQuotes returns the account's quotes, optionally by status or
// client.
func HandleListQuotes(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetQuoteRepository()

	if status := c.Query("status"); status != "" {
		quotes, err := repo.GetByStatus(userCtx.UserID, status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quotes"})
		}
		return c.JSON(fiber.Map{"quotes": quotes})
	}
	if clientID := c.QueryInt("client_id", 0); clientID > 0 {
		quotes, err := repo.GetByClientID(userCtx.UserID, uint(clientID))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quotes"})
		}
		return c.JSON(fiber.Map{"quotes": quotes})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	quotes, err := repo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quotes"})
	}
	total, err := repo.CountByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count quotes"})
	}
	return c.JSON(fiber.Map{"quotes": quotes, "total": total, "offset": offset, "limit": limit})
}

// HandleCreateQuote creates a draft quote. The monthly quote allowance of the
// account's plan is enforced before anything is written.
func HandleCreateQuote(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.ClientID == 0 || len(req.Lines) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "client_id and at least one line are required"})
	}

	db := database.GetDB()
	plan := entitlements.Normalize(userCtx.Plan)
	usageSvc := usage.NewService(db)
	if err := usageSvc.CheckLimit(userCtx.UserID, plan, models.FeatureQuotesCreated); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly quote limit reached for your plan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Usage check failed"})
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetClientRepository().GetByID(userCtx.UserID, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load client"})
	}

	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}

	quote := &models.Quote{
		UserID:      userCtx.UserID,
		ClientID:    req.ClientID,
		PropertyID:  req.PropertyID,
		QuoteNumber: pricing.NewQuoteNumber(),
		Title:       req.Title,
		Notes:       req.Notes,
		Status:      models.QuoteStatusDraft,
		TaxRate:     settings.TaxRateOrDefault(),
		MarkupRate:  settings.MarkupRateOrDefault(),
	}
	if req.TaxRate != nil {
		quote.TaxRate = *req.TaxRate
	}
	if req.MarkupRate != nil {
		quote.MarkupRate = *req.MarkupRate
	}
	if req.ValidDays > 0 {
		until := time.Now().AddDate(0, 0, req.ValidDays)
		quote.ValidUntil = &until
	}
	if err := quote.SetLines(req.Lines); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Invalid line payload"})
	}

	if err := factory.GetQuoteRepository().Create(quote); err != nil {
		log.Errorf("quote create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create quote"})
	}
	if err := usageSvc.Increment(userCtx.UserID, models.FeatureQuotesCreated); err != nil {
		log.Errorf("usage increment failed for user %d: %v", userCtx.UserID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(quote)
}

// HandleGetQuote returns one quote with its decoded line payload.
func HandleGetQuote(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	quote, err := repository.GetGlobalFactory().GetQuoteRepository().GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Quote not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quote"})
	}

	lines, err := quote.Lines()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Stored line payload is corrupt"})
	}

	return c.JSON(fiber.Map{"quote": quote, "lines": lines})
}

// HandleUpdateQuote replaces the line payload or metadata of an open quote.
// Totals are recomputed from the new payload.
func HandleUpdateQuote(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	repo := repository.GetGlobalFactory().GetQuoteRepository()
	quote, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Quote not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quote"})
	}
	if quote.Status != models.QuoteStatusDraft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Only draft quotes can be edited"})
	}

	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Title != "" {
		quote.Title = req.Title
	}
	quote.Notes = req.Notes
	if req.TaxRate != nil {
		quote.TaxRate = *req.TaxRate
	}
	if req.MarkupRate != nil {
		quote.MarkupRate = *req.MarkupRate
	}
	if len(req.Lines) > 0 {
		if err := quote.SetLines(req.Lines); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Invalid line payload"})
		}
	} else if req.TaxRate != nil || req.MarkupRate != nil {
		// Rates changed without a new payload; recompute from stored lines.
		lines, err := quote.Lines()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Stored line payload is corrupt"})
		}
		if err := quote.SetLines(lines); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to recompute totals"})
		}
	}

	if err := repo.Update(quote); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update quote"})
	}
	return c.JSON(quote)
}

// HandleQuoteTransition moves a quote through its lifecycle.
func HandleQuoteTransition(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	var req quoteTransitionRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Target status missing"})
	}

	repo := repository.GetGlobalFactory().GetQuoteRepository()
	quote, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Quote not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quote"})
	}

	if err := quote.Transition(req.Status); err != nil {
		if errors.Is(err, models.ErrInvalidQuoteTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "invalid_transition", "message": "Transition not allowed from status " + quote.Status})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Transition failed"})
	}
	if err := repo.Update(quote); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save quote"})
	}

	return c.JSON(quote)
}

// HandleDeleteQuote removes a quote.
func HandleDeleteQuote(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	if err := repository.GetGlobalFactory().GetQuoteRepository().Delete(userCtx.UserID, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete quote"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
