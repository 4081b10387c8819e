package controllers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/storage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

const maxLogoBytes = 2 * 1024 * 1024

type companySettingsRequest struct {
	CompanyName       string   `json:"company_name"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	ReplyToEmail      string   `json:"reply_to_email"`
	DefaultTaxRate    *float64 `json:"default_tax_rate"`
	DefaultMarkup     *float64 `json:"default_markup_rate"`
	QuoteTemplateHTML *string  `json:"quote_template_html"`
	QuoteTemplateCSS  *string  `json:"quote_template_css"`
}

// HandleGetCompanySettings returns the account's company profile and quote
// defaults.
func HandleGetCompanySettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	settings, err := models.GetOrCreateCompanySettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}
	return c.JSON(settings)
}

// HandleUpdateCompanySettings updates the company profile. Plan and API key
// fields are managed elsewhere and ignored here.
func HandleUpdateCompanySettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}

	var req companySettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	settings.CompanyName = req.CompanyName
	settings.Address = req.Address
	settings.Phone = req.Phone
	settings.ReplyToEmail = req.ReplyToEmail
	if req.DefaultTaxRate != nil && *req.DefaultTaxRate >= 0 {
		settings.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.DefaultMarkup != nil && *req.DefaultMarkup >= 0 {
		settings.DefaultMarkup = *req.DefaultMarkup
	}
	if req.QuoteTemplateHTML != nil {
		settings.QuoteTemplateHTML = *req.QuoteTemplateHTML
	}
	if req.QuoteTemplateCSS != nil {
		settings.QuoteTemplateCSS = *req.QuoteTemplateCSS
	}

	if err := db.Save(settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save company settings"})
	}
	return c.JSON(settings)
}

// HandleUploadCompanyLogo stores the company logo in object storage under the
// account's folder and records its path.
func HandleUploadCompanyLogo(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing logo file"})
	}
	if fileHeader.Size > maxLogoBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "too_large", "message": "Logo exceeds 2 MB"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "Unsupported logo format"})
	}

	cfg, err := storage.LoadConfig()
	if err != nil || !cfg.IsEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage_disabled", "message": "Object storage is not configured"})
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		log.Errorf("storage client init failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Object storage unavailable"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}
	defer f.Close()
	payload, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}

	key := storage.LogoKey(userCtx.UserID, ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	result, err := client.UploadBytes(c.Context(), key, payload, contentType)
	if err != nil {
		log.Errorf("logo upload failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Upload failed"})
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}
	settings.LogoPath = result.ObjectKey
	if err := db.Save(settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save logo path"})
	}

	return c.JSON(fiber.Map{
		"logo_path": result.ObjectKey,
		"size":      result.Size,
		"bucket":    result.BucketName,
	})
}

// HandleIssueAPIKey issues a fresh API key. The raw secret is returned once
// and only its hash is stored.
func HandleIssueAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Key generation failed"})
	}
	if err := db.Save(settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store key"})
	}

	return c.JSON(fiber.Map{
		"api_key":    rawKey,
		"prefix":     settings.APIKeyPrefix,
		"created_at": settings.APIKeyCreatedAt,
		"notice":     fmt.Sprintf("Store this key now; only the prefix %s stays visible.", settings.APIKeyPrefix),
	})
}

// HandleRevokeAPIKey revokes the account's current API key.
func HandleRevokeAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}
	if !settings.HasActiveAPIKey() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "No active API key"})
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to revoke key"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
