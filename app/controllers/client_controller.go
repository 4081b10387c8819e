package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type clientRequest struct {
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// HandleListClients returns the account's clients, optionally filtered by a
// search query.
func HandleListClients(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetClientRepository()

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		clients, err := repo.Search(userCtx.UserID, q)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to search clients"})
		}
		return c.JSON(fiber.Map{"clients": clients})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	clients, err := repo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clients"})
	}
	total, err := repo.CountByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count clients"})
	}

	return c.JSON(fiber.Map{"clients": clients, "total": total, "offset": offset, "limit": limit})
}

// HandleCreateClient creates a new client for the account.
func HandleCreateClient(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	client := &models.Client{
		UserID:      userCtx.UserID,
		Kind:        defaultString(req.Kind, models.ClientKindResidential),
		Status:      defaultString(req.Status, models.ClientStatusLead),
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if err := client.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := repository.GetGlobalFactory().GetClientRepository().Create(client); err != nil {
		log.Errorf("client create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create client"})
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// HandleGetClient returns one client including its properties.
func HandleGetClient(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid client id"})
	}

	factory := repository.GetGlobalFactory()
	client, err := factory.GetClientRepository().GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load client"})
	}

	properties, err := factory.GetPropertyRepository().GetByClientID(userCtx.UserID, client.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load properties"})
	}
	client.Properties = properties

	return c.JSON(client)
}

// HandleUpdateClient updates an existing client.
func HandleUpdateClient(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid client id"})
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	client, err := repo.GetByID(userCtx.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load client"})
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Kind != "" {
		client.Kind = req.Kind
	}
	if req.Status != "" {
		client.Status = req.Status
	}
	if req.Name != "" {
		client.Name = req.Name
	}
	client.CompanyName = req.CompanyName
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.Notes = req.Notes

	if err := client.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repo.Update(client); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update client"})
	}

	return c.JSON(client)
}

// HandleDeleteClient removes a client and all dependent records.
func HandleDeleteClient(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid client id"})
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	if err := repo.Delete(userCtx.UserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Client not found"})
		}
		log.Errorf("client delete failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete client"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
