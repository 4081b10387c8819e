package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/billing"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/env"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/jobqueue"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/session"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usercontext"
)

// HandleBillingWebhook ingests billing processor webhooks. Every delivery is
// persisted before processing; duplicates ack without re-processing.
func HandleBillingWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("X-Webhook-Signature"))
	secret := env.GetEnv("BILLING_WEBHOOK_SECRET", "")

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	eventID, eventType := billing.PeekEventHeader(rawBody)
	signatureValid := billing.VerifyWebhookSignature(rawBody, signature, secret)
	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	switch {
	case billing.IsSubscriptionEvent(eventType):
		return handleSubscriptionWebhook(c, ctx, svc, stored.ID, rawBody)
	case billing.IsInvoiceEvent(eventType):
		return handleInvoiceWebhook(c, ctx, svc, stored.ID, rawBody)
	default:
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}
}

func handleSubscriptionWebhook(c *fiber.Ctx, ctx context.Context, svc *billing.Service, storedID uint, rawBody []byte) error {
	event, err := billing.ParseSubscriptionEvent(rawBody)
	if err != nil {
		_ = svc.MarkWebhookProcessed(ctx, storedID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	customer, err := svc.GetCustomerByProviderCustomerID(ctx, models.BillingProviderStripe, event.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = svc.MarkWebhookProcessed(ctx, storedID, errors.New("no local account for processor customer"))
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		_ = svc.MarkWebhookProcessed(ctx, storedID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "customer_lookup_failed"})
	}

	_, _, syncErr := svc.SyncSubscription(ctx, billing.NormalizedSubscription{
		UserID:                 customer.UserID,
		Provider:               models.BillingProviderStripe,
		ProviderSubscriptionID: event.SubscriptionID,
		ProviderPriceRef:       event.PriceRef,
		BillingInterval:        event.Interval,
		Status:                 event.Status,
		CurrentPeriodStart:     event.CurrentPeriodStart,
		CurrentPeriodEnd:       event.CurrentPeriodEnd,
		CancelAtPeriodEnd:      event.CancelAtPeriodEnd,
		RawPayloadJSON:         string(rawBody),
	})
	_ = svc.MarkWebhookProcessed(ctx, storedID, syncErr)
	if syncErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_sync_failed"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

func handleInvoiceWebhook(c *fiber.Ctx, ctx context.Context, svc *billing.Service, storedID uint, rawBody []byte) error {
	event, err := billing.ParseInvoiceEvent(rawBody)
	if err != nil {
		_ = svc.MarkWebhookProcessed(ctx, storedID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	customer, err := svc.GetCustomerByProviderCustomerID(ctx, models.BillingProviderStripe, event.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = svc.MarkWebhookProcessed(ctx, storedID, errors.New("no local account for processor customer"))
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		_ = svc.MarkWebhookProcessed(ctx, storedID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "customer_lookup_failed"})
	}

	_, syncErr := svc.SyncInvoice(ctx, billing.NormalizedInvoice{
		UserID:             customer.UserID,
		Provider:           models.BillingProviderStripe,
		ProviderInvoiceID:  event.InvoiceID,
		ProviderCustomerID: event.CustomerID,
		AmountDueCents:     event.AmountDueCents,
		AmountPaidCents:    event.AmountPaidCents,
		Currency:           event.Currency,
		Status:             event.Status,
		HostedInvoiceURL:   event.HostedInvoiceURL,
		IssuedAt:           event.IssuedAt,
		PaidAt:             event.PaidAt,
		RawPayloadJSON:     string(rawBody),
	})
	_ = svc.MarkWebhookProcessed(ctx, storedID, syncErr)
	if syncErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "invoice_sync_failed"})
	}

	// Paid or failed invoices move entitlement state before the matching
	// subscription event arrives; reconcile off the request path.
	if _, err := jobqueue.EnqueueBillingReconcile(customer.UserID); err != nil {
		log.Warnf("billing reconcile enqueue failed for user %d: %v", customer.UserID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandleBillingResync recomputes the account's effective plan from its stored
// subscriptions.
func HandleBillingResync(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	effectivePlan, err := svc.ReconcileAccountPlan(ctx, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Plan resync failed"})
	}

	_ = session.SetSessionValue(c, usercontext.KeyPlan, effectivePlan)
	return c.JSON(fiber.Map{"plan": effectivePlan})
}

// HandleListBillingSubscriptions returns the account's mirrored subscription
// rows.
func HandleListBillingSubscriptions(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	subs, err := svc.ListSubscriptionsByUser(c.Context(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load subscriptions"})
	}
	return c.JSON(fiber.Map{"subscriptions": subs})
}
