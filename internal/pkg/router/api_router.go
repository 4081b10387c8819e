package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/QuoteKitHQ/QuoteKit/app/controllers"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
	}), cors.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "QuoteKit API",
		})
	})

	v1 := api.Group("/v1")
	h.registerPublicAPIRoutes(v1)
	h.registerSessionAPIRoutes(v1)
	h.registerKeyAPIRoutes(v1)
	h.registerAdminAPIRoutes(v1)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

// registerPublicAPIRoutes wires endpoints that need no authentication: account
// bootstrap and the billing processor's webhook callback.
func (h ApiRouter) registerPublicAPIRoutes(v1 fiber.Router) {
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleAuthRegister)
	auth.Get("/activate", controllers.HandleAuthActivate)
	auth.Post("/login", controllers.HandleAuthLogin)

	v1.Post("/webhooks/billing", controllers.HandleBillingWebhook)
}

// registerSessionAPIRoutes wires the browser-session surface. Everything here
// runs behind RequireAPISessionAuth.
func (h ApiRouter) registerSessionAPIRoutes(v1 fiber.Router) {
	v1.Post("/auth/logout", middleware.RequireAPISessionAuth, controllers.HandleAuthLogout)

	account := v1.Group("/account", middleware.RequireAPISessionAuth)
	account.Get("/", controllers.HandleGetUserAccount)
	account.Get("/usage", controllers.HandleGetUsage)

	company := v1.Group("/company", middleware.RequireAPISessionAuth)
	company.Get("/settings", controllers.HandleGetCompanySettings)
	company.Put("/settings", controllers.HandleUpdateCompanySettings)
	company.Post("/logo", controllers.HandleUploadCompanyLogo)
	company.Post("/api-key", controllers.HandleIssueAPIKey)
	company.Delete("/api-key", controllers.HandleRevokeAPIKey)

	clients := v1.Group("/clients", middleware.RequireAPISessionAuth)
	clients.Get("/", controllers.HandleListClients)
	clients.Post("/", controllers.HandleCreateClient)
	clients.Get("/:id", controllers.HandleGetClient)
	clients.Put("/:id", controllers.HandleUpdateClient)
	clients.Delete("/:id", controllers.HandleDeleteClient)
	clients.Get("/:clientID/properties", controllers.HandleListProperties)

	properties := v1.Group("/properties", middleware.RequireAPISessionAuth)
	properties.Post("/", controllers.HandleCreateProperty)
	properties.Put("/:id", controllers.HandleUpdateProperty)
	properties.Delete("/:id", controllers.HandleDeleteProperty)

	quotes := v1.Group("/quotes", middleware.RequireAPISessionAuth)
	quotes.Get("/", controllers.HandleListQuotes)
	quotes.Post("/", controllers.HandleCreateQuote)
	quotes.Get("/:id", controllers.HandleGetQuote)
	quotes.Put("/:id", controllers.HandleUpdateQuote)
	quotes.Delete("/:id", controllers.HandleDeleteQuote)
	quotes.Post("/:id/transition", controllers.HandleQuoteTransition)
	quotes.Post("/:id/documents", controllers.HandleQueueDocumentRender)
	quotes.Get("/:id/documents", controllers.HandleListDocumentLogs)

	v1.Post("/documents/outcome", middleware.RequireAPISessionAuth, controllers.HandleRecordDocumentOutcome)

	lineItems := v1.Group("/line-items", middleware.RequireAPISessionAuth)
	lineItems.Get("/", controllers.HandleListLineItems)
	lineItems.Post("/", controllers.HandleCreateLineItem)
	lineItems.Put("/:id", controllers.HandleUpdateLineItem)
	lineItems.Delete("/:id", controllers.HandleDeleteLineItem)

	catalog := v1.Group("/global-items", middleware.RequireAPISessionAuth)
	catalog.Get("/", controllers.HandleListGlobalItems)
	catalog.Post("/:id/copy", controllers.HandleCopyGlobalItem)
	catalog.Post("/:id/favorite", controllers.HandleFavoriteGlobalItem)

	assessments := v1.Group("/assessments", middleware.RequireAPISessionAuth)
	assessments.Get("/", controllers.HandleListAssessments)
	assessments.Post("/", controllers.HandleCreateAssessment)
	assessments.Put("/:id", controllers.HandleUpdateAssessment)
	assessments.Delete("/:id", controllers.HandleDeleteAssessment)
	assessments.Post("/:id/generate-quote", controllers.HandleGenerateQuoteFromAssessment)

	billing := v1.Group("/billing", middleware.RequireAPISessionAuth)
	billing.Post("/resync", controllers.HandleBillingResync)
	billing.Get("/subscriptions", controllers.HandleListBillingSubscriptions)

	onboarding := v1.Group("/onboarding", middleware.RequireAPISessionAuth)
	onboarding.Get("/:tourKey", controllers.HandleGetOnboardingProgress)
	onboarding.Post("/:tourKey/steps", controllers.HandleCompleteOnboardingStep)
	onboarding.Post("/:tourKey/skip", controllers.HandleSkipOnboardingTour)
}

// registerKeyAPIRoutes wires the server-to-server surface authenticated by
// API key instead of a browser session.
func (h ApiRouter) registerKeyAPIRoutes(v1 fiber.Router) {
	ext := v1.Group("/ext", middleware.APIKeyAuthMiddleware())
	ext.Get("/account", controllers.HandleGetUserAccount)
	ext.Get("/account/usage", controllers.HandleGetUsage)
	ext.Get("/quotes", controllers.HandleListQuotes)
	ext.Post("/quotes", controllers.HandleCreateQuote)
	ext.Get("/quotes/:id", controllers.HandleGetQuote)
	ext.Post("/quotes/:id/transition", controllers.HandleQuoteTransition)
	ext.Post("/documents/outcome", controllers.HandleRecordDocumentOutcome)
}

func (h ApiRouter) registerAdminAPIRoutes(v1 fiber.Router) {
	admin := v1.Group("/admin", middleware.RequireAPISessionAuth, middleware.RequireAdmin)
	admin.Get("/jobs/stats", controllers.HandleAdminJobStats)
	admin.Get("/queue/keys", controllers.HandleAdminListQueueKeys)
	admin.Get("/queue/key", controllers.HandleAdminGetQueueKey)
	admin.Delete("/queue/key", controllers.HandleAdminDeleteQueueKey)

	admin.Post("/global-items", controllers.HandleAdminCreateGlobalItem)
	admin.Put("/global-items/:id", controllers.HandleAdminUpdateGlobalItem)
	admin.Delete("/global-items/:id", controllers.HandleAdminDeleteGlobalItem)
}
