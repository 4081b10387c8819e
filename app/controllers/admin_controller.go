package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/jobqueue"
)

// HandleAdminJobStats reports job queue depth and lifetime counters.
func HandleAdminJobStats(c *fiber.Ctx) error {
	queue := jobqueue.GetManager().GetQueue()

	stats, err := queue.GetJobStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load job stats"})
	}
	pending, err := queue.GetQueueSize(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load queue size"})
	}
	processing, err := queue.GetProcessingSize(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load processing size"})
	}

	return c.JSON(fiber.Map{
		"running":    jobqueue.GetManager().IsRunning(),
		"pending":    pending,
		"processing": processing,
		"stats":      stats,
	})
}

// HandleAdminListQueueKeys lists Redis keys matching the given pattern,
// defaulting to the job namespace.
func HandleAdminListQueueKeys(c *fiber.Ctx) error {
	pattern := c.Query("pattern", jobqueue.JobKeyPrefix+"*")

	keys, err := repository.GetGlobalFactory().GetQueueRepository().FindKeysByPatterns([]string{pattern})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to list keys"})
	}
	return c.JSON(fiber.Map{"pattern": pattern, "keys": keys})
}

// HandleAdminGetQueueKey returns the raw value and TTL for one Redis key.
func HandleAdminGetQueueKey(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing key"})
	}

	repo := repository.GetGlobalFactory().GetQueueRepository()
	value, err := repo.GetValue(key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Key not found"})
	}
	ttl, err := repo.GetTTL(key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load TTL"})
	}

	return c.JSON(fiber.Map{"key": key, "value": value, "ttl_seconds": int64(ttl.Seconds())})
}

// HandleAdminDeleteQueueKey removes a Redis key, e.g. a poisoned job payload.
func HandleAdminDeleteQueueKey(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing key"})
	}

	deleted, err := repository.GetGlobalFactory().GetQueueRepository().DeleteKey(key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete key"})
	}
	return c.JSON(fiber.Map{"key": key, "deleted": deleted})
}

type globalItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	UnitPrice   float64 `json:"unit_price"`
	AccessTier  string  `json:"access_tier"`
	IsActive    *bool   `json:"is_active"`
}

// HandleAdminCreateGlobalItem adds an entry to the shared catalog.
func HandleAdminCreateGlobalItem(c *fiber.Ctx) error {
	var req globalItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	item := &models.GlobalItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        defaultString(req.Unit, "each"),
		UnitCost:    req.UnitCost,
		UnitPrice:   req.UnitPrice,
		AccessTier:  models.NormalizeItemTier(req.AccessTier),
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := item.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := repository.GetGlobalFactory().GetGlobalItemRepository().Create(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create catalog item"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleAdminUpdateGlobalItem edits a shared catalog entry. Setting
// is_active to false retires it from every account's catalog view.
func HandleAdminUpdateGlobalItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	repo := repository.GetGlobalFactory().GetGlobalItemRepository()
	item, err := repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Catalog item not found"})
	}

	var req globalItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	item.Description = req.Description
	item.Category = req.Category
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.UnitCost >= 0 {
		item.UnitCost = req.UnitCost
	}
	if req.UnitPrice >= 0 {
		item.UnitPrice = req.UnitPrice
	}
	if req.AccessTier != "" {
		item.AccessTier = models.NormalizeItemTier(req.AccessTier)
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := item.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := repo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update catalog item"})
	}
	return c.JSON(item)
}

// HandleAdminDeleteGlobalItem removes a shared catalog entry. Copies already
// made by accounts keep living in their private catalogs.
func HandleAdminDeleteGlobalItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	if err := repository.GetGlobalFactory().GetGlobalItemRepository().Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete catalog item"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
