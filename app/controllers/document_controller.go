package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/documents"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/jobqueue"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type documentOutcomeRequest struct {
	QuoteID     uint   `json:"quote_id"`
	Success     bool   `json:"success"`
	StoragePath string `json:"storage_path"`
	SizeBytes   int64  `json:"size_bytes"`
	DurationMS  int64  `json:"duration_ms"`
	ErrorMsg    string `json:"error_msg"`
}

// HandleQueueDocumentRender queues an asynchronous document render for one of
// the account's quotes.
func HandleQueueDocumentRender(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	quoteID, err := c.ParamsInt("id")
	if err != nil || quoteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	db := database.GetDB()
	plan := entitlements.Normalize(userCtx.Plan)
	if err := usage.NewService(db).CheckLimit(userCtx.UserID, plan, models.FeatureDocumentsGenerated); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly document limit reached for your plan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Usage check failed"})
	}

	svc := documents.NewService(db, nil)
	dl, err := svc.QueueRender(c.Context(), userCtx.UserID, uint(quoteID))
	if err != nil {
		if errors.Is(err, documents.ErrQuoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Quote not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to queue render"})
	}

	job, err := jobqueue.EnqueueDocumentRender(dl.ID)
	if err != nil {
		log.Errorf("document render enqueue failed for log %d: %v", dl.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to enqueue render"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"document_log": dl, "job_id": job.ID})
}

// HandleListDocumentLogs returns the generation history for a quote.
func HandleListDocumentLogs(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	quoteID, err := c.ParamsInt("id")
	if err != nil || quoteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid quote id"})
	}

	logs, err := repository.GetGlobalFactory().GetDocumentLogRepository().GetByQuoteID(userCtx.UserID, uint(quoteID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load document logs"})
	}
	return c.JSON(fiber.Map{"document_logs": logs})
}

// HandleRecordDocumentOutcome lets the external PDF layer report its render
// result for a quote.
func HandleRecordDocumentOutcome(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req documentOutcomeRequest
	if err := c.BodyParser(&req); err != nil || req.QuoteID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	db := database.GetDB()
	svc := documents.NewService(db, nil)
	dl, err := svc.RecordOutcome(c.Context(), userCtx.UserID, req.QuoteID, req.Success, req.StoragePath, req.SizeBytes, req.DurationMS, req.ErrorMsg)
	if err != nil {
		if errors.Is(err, documents.ErrQuoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Quote not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to record outcome"})
	}

	if req.Success {
		if err := usage.NewService(db).Increment(userCtx.UserID, models.FeatureDocumentsGenerated); err != nil {
			log.Errorf("usage increment failed for user %d: %v", userCtx.UserID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dl)
}
