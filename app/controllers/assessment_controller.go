package controllers

import (
	"errors"

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

type assessmentRequest struct {
	ClientID         uint    `json:"client_id"`
	PropertyID       *uint   `json:"property_id"`
	PropertySizeSqFt float64 `json:"property_size_sq_ft"`
	LawnCondition    string  `json:"lawn_condition"`
	SoilCondition    string  `json:"soil_condition"`
	Notes            string  `json:"notes"`
	Status           string  `json:"status"`
}

type generateQuoteRequest struct {
	Title      string   `json:"title"`
	TaxRate    *float64 `json:"tax_rate"`
	MarkupRate *float64 `json:"markup_rate"`
	ValidDays  int      `json:"valid_days"`
}

// HandleListAssessments returns the account's assessments, optionally by
// status.
func HandleListAssessments(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetAssessmentRepository()

	if status := c.Query("status"); status != "" {
		assessments, err := repo.GetByStatus(userCtx.UserID, status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load assessments"})
		}
		return c.JSON(fiber.Map{"assessments": assessments})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	assessments, err := repo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load assessments"})
	}
	return c.JSON(fiber.Map{"assessments": assessments, "offset": offset, "limit": limit})
}

// HandleCreateAssessment records a property condition assessment.
func HandleCreateAssessment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req assessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetClientRepository().GetByID(userCtx.UserID, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load client"})
	}

	assessment := &models.Assessment{
		UserID:           userCtx.UserID,
		ClientID:         req.ClientID,
		PropertyID:       req.PropertyID,
		PropertySizeSqFt: req.PropertySizeSqFt,
		LawnCondition:    req.LawnCondition,
		SoilCondition:    req.SoilCondition,
		Notes:            req.Notes,
		Status:           models.AssessmentStatusPending,
	}
	if err := assessment.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := factory.GetAssessmentRepository().Create(assessment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create assessment"})
	}

	return c.Status(fiber.StatusCreated).JSON(assessment)
}

// HandleUpdateAssessment updates an assessment that has not been quoted yet.
func HandleUpdateAssessment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid assessment id"})
	}

	repo := repository.GetGlobalFactory().GetAssessmentRepository()
	assessment, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Assessment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load assessment"})
	}
	if assessment.Status == models.AssessmentStatusQuoted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Quoted assessments are read-only"})
	}

	var req assessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.PropertySizeSqFt > 0 {
		assessment.PropertySizeSqFt = req.PropertySizeSqFt
	}
	if req.LawnCondition != "" {
		assessment.LawnCondition = req.LawnCondition
	}
	if req.SoilCondition != "" {
		assessment.SoilCondition = req.SoilCondition
	}
	if req.Status != "" {
		if !models.IsEditableAssessmentStatus(req.Status) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Status must be pending, reviewed or dismissed"})
		}
		assessment.Status = req.Status
	}
	assessment.Notes = req.Notes

	if err := assessment.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repo.Update(assessment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update assessment"})
	}
	return c.JSON(assessment)
}

// HandleGenerateQuoteFromAssessment runs the pricing rules against an
// assessment and produces a draft quote in one transaction.
func HandleGenerateQuoteFromAssessment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid assessment id"})
	}

	var req generateQuoteRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	db := database.GetDB()
	plan := entitlements.Normalize(userCtx.Plan)
	if err := usage.NewService(db).CheckLimit(userCtx.UserID, plan, models.FeatureAssessmentsQuoted); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly assessment quoting limit reached for your plan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Usage check failed"})
	}

	svc := pricing.NewService(db)
	quote, breakdown, err := svc.GenerateQuoteFromAssessment(c.Context(), userCtx.UserID, uint(id), pricing.GenerateOptions{
		Title:      req.Title,
		TaxRate:    req.TaxRate,
		MarkupRate: req.MarkupRate,
		ValidDays:  req.ValidDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrAssessmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Assessment not found"})
		case errors.Is(err, pricing.ErrAlreadyQuoted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Assessment already quoted"})
		case errors.Is(err, pricing.ErrUnknownCondition):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Assessment has an unknown condition rating"})
		default:
			log.Errorf("quote generation failed for assessment %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Quote generation failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"quote": quote, "pricing": breakdown})
}

// HandleDeleteAssessment removes an assessment.
func HandleDeleteAssessment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid assessment id"})
	}

	if err := repository.GetGlobalFactory().GetAssessmentRepository().Delete(userCtx.UserID, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete assessment"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
