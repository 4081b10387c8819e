package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/app/repository"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/billing"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/session"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates a new account with an activation token, its
// company settings row and a free-tier subscription.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := user.GenerateActivationToken(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to prepare activation"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Email already registered"})
	}
	// The unique index on email is authoritative; concurrent registers that
	// pass the lookup above land here.
	if err := repo.Create(user); err != nil {
		if database.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Email already registered"})
		}
		log.Errorf("user create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create user"})
	}

	db := database.GetDB()
	if _, err := models.GetOrCreateCompanySettings(db, user.ID); err != nil {
		log.Errorf("company settings bootstrap failed for user %d: %v", user.ID, err)
	}
	svc := billing.NewServiceFromDB(db)
	if _, err := svc.EnsureFreeSubscription(c.Context(), user.ID, models.BillingProviderStripe); err != nil {
		log.Errorf("free subscription bootstrap failed for user %d: %v", user.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":               user.ID,
		"email":            user.Email,
		"status":           user.Status,
		"activation_token": user.ActivationToken,
	})
}

// HandleAuthActivate flips an account to active via its activation token.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing activation token"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Invalid activation token"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Activation failed"})
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	user.ActivationSentAt = nil
	if err := repo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Activation failed"})
	}

	return c.JSON(fiber.Map{"id": user.ID, "status": user.Status})
}

// HandleAuthLogin verifies credentials and establishes a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "There is a problem with the login process"})
	}
	if !models.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "There is a problem with the login process"})
	}
	if !user.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Account not activated"})
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Session unavailable"})
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Session save failed"})
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())
	ipv4, _ := GetClientIP(c)
	log.Infof("login user=%d ip=%s", user.ID, ipv4)

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Name,
		"is_admin": user.Role == models.ROLE_ADMIN,
	})
}

// HandleAuthLogout destroys the session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	c.Locals(usercontext.KeyFromProtected, false)
	return c.JSON(fiber.Map{"ok": true})
}

// HandleGetUserAccount returns account information for the authenticated user
// (API key or session).
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	account, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateCompanySettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load company settings"})
	}

	plan := entitlements.Normalize(settings.Plan)

	return c.JSON(fiber.Map{
		"id":                   account.ID,
		"username":             account.Name,
		"email":                account.Email,
		"status":               account.Status,
		"plan":                 string(plan),
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"company": fiber.Map{
			"name":                settings.CompanyName,
			"default_tax_rate":    settings.TaxRateOrDefault(),
			"default_markup_rate": settings.MarkupRateOrDefault(),
		},
		"limits": fiber.Map{
			"quotes_per_month":      entitlements.MonthlyLimit(plan, models.FeatureQuotesCreated),
			"assessments_per_month": entitlements.MonthlyLimit(plan, models.FeatureAssessmentsQuoted),
			"item_copies_per_month": entitlements.MonthlyLimit(plan, models.FeatureGlobalItemsCopied),
			"documents_per_month":   entitlements.MonthlyLimit(plan, models.FeatureDocumentsGenerated),
		},
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
