package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type propertyRequest struct {
	ClientID   uint           `json:"client_id"`
	Label      string         `json:"label"`
	Address    string         `json:"address"`
	SizeSqFt   float64        `json:"size_sq_ft"`
	Attributes map[string]any `json:"attributes"`
}

// HandleListProperties returns all properties of one client.
func HandleListProperties(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	clientID, err := c.ParamsInt("clientID")
	if err != nil || clientID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid client id"})
	}

	properties, err := repository.GetGlobalFactory().GetPropertyRepository().GetByClientID(userCtx.UserID, uint(clientID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load properties"})
	}
	return c.JSON(fiber.Map{"properties": properties})
}

// HandleCreateProperty creates a property under one of the account's clients.
func HandleCreateProperty(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.ClientID == 0 || req.Label == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "client_id and label are required"})
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetClientRepository().GetByID(userCtx.UserID, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load client"})
	}

	property := &models.Property{
		ClientID: req.ClientID,
		UserID:   userCtx.UserID,
		Label:    req.Label,
		Address:  req.Address,
		SizeSqFt: req.SizeSqFt,
	}
	if err := property.SetAttributes(req.Attributes); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Invalid attributes payload"})
	}
	if err := factory.GetPropertyRepository().Create(property); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create property"})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandleUpdateProperty updates an existing property.
func HandleUpdateProperty(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid property id"})
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Property not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load property"})
	}

	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Label != "" {
		property.Label = req.Label
	}
	property.Address = req.Address
	if req.SizeSqFt > 0 {
		property.SizeSqFt = req.SizeSqFt
	}
	if req.Attributes != nil {
		if err := property.SetAttributes(req.Attributes); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Invalid attributes payload"})
		}
	}

	if err := repo.Update(property); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update property"})
	}
	return c.JSON(property)
}

// HandleDeleteProperty removes a property.
func HandleDeleteProperty(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid property id"})
	}

	if err := repository.GetGlobalFactory().GetPropertyRepository().Delete(userCtx.UserID, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete property"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
