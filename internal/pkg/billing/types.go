package billing

import "time"

// NormalizedSubscription is the processor-agnostic shape used by the billing
// service when syncing external subscription state into local tables.
type NormalizedSubscription struct {
	UserID                 uint
	Provider               string
	ProviderSubscriptionID string
	ProviderPriceRef       string
	BillingInterval        string
	Status                 string
	CurrentPeriodStart     *time.Time
	CurrentPeriodEnd       *time.Time
	CancelAtPeriodEnd      bool
	RawPayloadJSON         string
}

// NormalizedInvoice is the processor-agnostic shape for invoice mirroring.
type NormalizedInvoice struct {
	UserID             uint
	Provider           string
	ProviderInvoiceID  string
	ProviderCustomerID string
	AmountDueCents     int64
	AmountPaidCents    int64
	Currency           string
	Status             string
	HostedInvoiceURL   string
	IssuedAt           *time.Time
	PaidAt             *time.Time
	RawPayloadJSON     string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
