package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
)

// Service provides processor-neutral billing synchronization and
// reconciliation.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// UpsertCustomer creates or updates the linked processor customer identity
// for a user.
func (s *Service) UpsertCustomer(ctx context.Context, userID uint, provider, providerCustomerID, email string) (*models.BillingCustomer, error) {
	_ = ctx
	p := strings.ToLower(strings.TrimSpace(provider))
	pcID := strings.TrimSpace(providerCustomerID)
	if userID == 0 || p == "" || pcID == "" {
		return nil, errors.New("user_id, provider and provider_customer_id are required")
	}

	customer := &models.BillingCustomer{
		UserID:             userID,
		Provider:           p,
		ProviderCustomerID: pcID,
		Email:              strings.TrimSpace(email),
	}
	if err := s.repo.UpsertCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomerByProviderCustomerID resolves a processor customer id to the
// local account linkage.
func (s *Service) GetCustomerByProviderCustomerID(ctx context.Context, provider, providerCustomerID string) (*models.BillingCustomer, error) {
	_ = ctx
	p := strings.ToLower(strings.TrimSpace(provider))
	pcID := strings.TrimSpace(providerCustomerID)
	if p == "" || pcID == "" {
		return nil, errors.New("provider and provider_customer_id are required")
	}
	return s.repo.GetCustomerByProviderCustomerID(p, pcID)
}

// ResolveMappedPlan resolves a processor price reference to an internal plan.
func (s *Service) ResolveMappedPlan(ctx context.Context, provider, providerPriceRef, interval string) (string, error) {
	_ = ctx
	p := strings.ToLower(strings.TrimSpace(provider))
	ref := strings.TrimSpace(providerPriceRef)
	i := normalizeInterval(interval)
	if p == "" || ref == "" {
		return string(entitlements.PlanFree), errors.New("provider and provider price ref are required")
	}

	// Prefer exact interval match.
	m, err := s.repo.FindActivePlanMapping(p, ref, i)
	if err == nil {
		return normalizePlan(m.InternalPlan), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// Fallback for mappings that intentionally use "unknown".
	m, err = s.repo.FindActivePlanMapping(p, ref, "unknown")
	if err == nil {
		return normalizePlan(m.InternalPlan), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return string(entitlements.PlanFree), gorm.ErrRecordNotFound
	}
	return "", err
}

// SyncSubscription upserts processor subscription data and reconciles the
// user's effective plan.
func (s *Service) SyncSubscription(ctx context.Context, in NormalizedSubscription) (*models.BillingSubscription, string, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	subID := strings.TrimSpace(in.ProviderSubscriptionID)
	if in.UserID == 0 || provider == "" || subID == "" {
		return nil, "", errors.New("user_id, provider and provider_subscription_id are required")
	}

	interval := normalizeInterval(in.BillingInterval)
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.BillingStatusActive
	}

	internalPlan, err := s.ResolveMappedPlan(ctx, provider, in.ProviderPriceRef, interval)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if internalPlan == "" {
		internalPlan = string(entitlements.PlanFree)
	}

	sub := &models.BillingSubscription{
		UserID:                 in.UserID,
		Provider:               provider,
		ProviderSubscriptionID: &subID,
		ProviderPriceRef:       strings.TrimSpace(in.ProviderPriceRef),
		InternalPlan:           internalPlan,
		BillingInterval:        interval,
		Status:                 status,
		CurrentPeriodStart:     in.CurrentPeriodStart,
		CurrentPeriodEnd:       in.CurrentPeriodEnd,
		CancelAtPeriodEnd:      in.CancelAtPeriodEnd,
		RawPayloadJSON:         in.RawPayloadJSON,
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return nil, "", err
	}

	effectivePlan, err := s.ReconcileAccountPlan(ctx, in.UserID)
	if err != nil {
		return sub, "", err
	}
	return sub, effectivePlan, nil
}

// EnsureFreeSubscription creates a local free-tier row for a user with no
// processor subscription. Rows like this carry no provider reference, so
// several of them may exist without violating the unique key.
func (s *Service) EnsureFreeSubscription(ctx context.Context, userID uint, provider string) (*models.BillingSubscription, error) {
	_ = ctx
	if userID == 0 {
		return nil, errors.New("user_id is required")
	}
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" {
		p = models.BillingProviderStripe
	}

	subs, err := s.repo.ListSubscriptionsByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if !subs[i].HasProviderRef() && subs[i].InternalPlan == string(entitlements.PlanFree) {
			return &subs[i], nil
		}
	}

	sub := &models.BillingSubscription{
		UserID:       userID,
		Provider:     p,
		InternalPlan: string(entitlements.PlanFree),
		Status:       models.BillingStatusActive,
	}
	if err := s.repo.CreateFreeSubscription(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubscriptionsByUser returns all mirrored subscription rows of a user.
func (s *Service) ListSubscriptionsByUser(ctx context.Context, userID uint) ([]models.BillingSubscription, error) {
	_ = ctx
	if userID == 0 {
		return nil, errors.New("user_id is required")
	}
	return s.repo.ListSubscriptionsByUser(userID)
}

// SyncInvoice upserts a mirrored processor invoice.
func (s *Service) SyncInvoice(ctx context.Context, in NormalizedInvoice) (*models.BillingInvoice, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	invID := strings.TrimSpace(in.ProviderInvoiceID)
	if in.UserID == 0 || provider == "" || invID == "" {
		return nil, errors.New("user_id, provider and provider_invoice_id are required")
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "usd"
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.InvoiceStatusDraft
	}

	inv := &models.BillingInvoice{
		UserID:             in.UserID,
		Provider:           provider,
		ProviderInvoiceID:  invID,
		ProviderCustomerID: strings.TrimSpace(in.ProviderCustomerID),
		AmountDueCents:     in.AmountDueCents,
		AmountPaidCents:    in.AmountPaidCents,
		Currency:           currency,
		Status:             status,
		HostedInvoiceURL:   strings.TrimSpace(in.HostedInvoiceURL),
		IssuedAt:           in.IssuedAt,
		PaidAt:             in.PaidAt,
		RawPayloadJSON:     in.RawPayloadJSON,
	}
	if err := s.repo.UpsertInvoice(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ReconcileAccountPlan computes and writes the best effective plan for a user.
func (s *Service) ReconcileAccountPlan(ctx context.Context, userID uint) (string, error) {
	_ = ctx
	if userID == 0 {
		return "", errors.New("user_id is required")
	}

	subs, err := s.repo.ListSubscriptionsByUser(userID)
	if err != nil {
		return "", err
	}

	best := string(entitlements.PlanFree)
	for _, sub := range subs {
		if !isEntitlingStatus(sub.Status) {
			continue
		}
		candidate := normalizePlan(sub.InternalPlan)
		if planRank(candidate) > planRank(best) {
			best = candidate
		}
	}

	cs, err := s.repo.GetOrCreateCompanySettings(userID)
	if err != nil {
		return "", err
	}
	if normalizePlan(cs.Plan) == best {
		return best, nil
	}
	cs.Plan = best
	if err := s.repo.SaveCompanySettings(cs); err != nil {
		return "", err
	}
	return best, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
