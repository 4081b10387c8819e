package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type lineItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	UnitPrice   float64 `json:"unit_price"`
	IsActive    *bool   `json:"is_active"`
}

// HandleListLineItems returns the account's private catalog.
func HandleListLineItems(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	activeOnly := c.QueryBool("active_only", false)

	items, err := repository.GetGlobalFactory().GetLineItemRepository().GetByUserID(userCtx.UserID, activeOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load catalog"})
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleCreateLineItem adds an entry to the account's private catalog.
func HandleCreateLineItem(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req lineItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	item := &models.LineItem{
		UserID:      userCtx.UserID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        defaultString(req.Unit, "each"),
		UnitCost:    req.UnitCost,
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
	}
	if err := item.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repository.GetGlobalFactory().GetLineItemRepository().Create(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create item"})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateLineItem updates a private catalog entry.
func HandleUpdateLineItem(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	repo := repository.GetGlobalFactory().GetLineItemRepository()
	item, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load item"})
	}

	var req lineItemRequest
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
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := item.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update item"})
	}
	return c.JSON(item)
}

// HandleDeleteLineItem removes a private catalog entry.
func HandleDeleteLineItem(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid item id"})
	}

	if err := repository.GetGlobalFactory().GetLineItemRepository().Delete(userCtx.UserID, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete item"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
