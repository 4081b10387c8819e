package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

// VerifyWebhookSignature checks the processor's webhook signature header, a
// hex-encoded HMAC-SHA256 of the raw request body.
func VerifyWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// SubscriptionEvent is the parsed shape of a processor subscription webhook.
type SubscriptionEvent struct {
	EventID            string
	EventType          string
	SubscriptionID     string
	CustomerID         string
	PriceRef           string
	Interval           string
	Status             string
	CancelAtPeriodEnd  bool
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
}

// InvoiceEvent is the parsed shape of a processor invoice webhook.
type InvoiceEvent struct {
	EventID          string
	EventType        string
	InvoiceID        string
	CustomerID       string
	AmountDueCents   int64
	AmountPaidCents  int64
	Currency         string
	Status           string
	HostedInvoiceURL string
	IssuedAt         *time.Time
	PaidAt           *time.Time
}

type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type subscriptionObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	Items              struct {
		Data []struct {
			Price struct {
				ID        string `json:"id"`
				Recurring struct {
					Interval string `json:"interval"`
				} `json:"recurring"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type invoiceObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	AmountDue         int64  `json:"amount_due"`
	AmountPaid        int64  `json:"amount_paid"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	HostedInvoiceURL  string `json:"hosted_invoice_url"`
	Created           int64  `json:"created"`
	StatusTransitions struct {
		PaidAt int64 `json:"paid_at"`
	} `json:"status_transitions"`
}

// PeekEventHeader extracts the event id and type without decoding the full
// payload. Malformed payloads yield empty strings; persistence falls back to
// a payload hash for the event id.
func PeekEventHeader(raw []byte) (eventID, eventType string) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", ""
	}
	return env.ID, env.Type
}

// IsSubscriptionEvent reports whether the event type carries a subscription
// object.
func IsSubscriptionEvent(eventType string) bool {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		return true
	default:
		return false
	}
}

// IsInvoiceEvent reports whether the event type carries an invoice object.
func IsInvoiceEvent(eventType string) bool {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "invoice.finalized", "invoice.paid", "invoice.payment_failed", "invoice.voided":
		return true
	default:
		return false
	}
}

// ParseSubscriptionEvent decodes a subscription webhook payload.
func ParseSubscriptionEvent(raw []byte) (*SubscriptionEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	var obj subscriptionObject
	if err := json.Unmarshal(env.Data.Object, &obj); err != nil {
		return nil, fmt.Errorf("invalid subscription object: %w", err)
	}
	if obj.ID == "" || obj.Customer == "" {
		return nil, fmt.Errorf("subscription payload missing id or customer")
	}

	ev := &SubscriptionEvent{
		EventID:           env.ID,
		EventType:         env.Type,
		SubscriptionID:    obj.ID,
		CustomerID:        obj.Customer,
		Status:            obj.Status,
		CancelAtPeriodEnd: obj.CancelAtPeriodEnd,
	}
	if len(obj.Items.Data) > 0 {
		ev.PriceRef = obj.Items.Data[0].Price.ID
		ev.Interval = obj.Items.Data[0].Price.Recurring.Interval
	}
	if obj.CurrentPeriodStart > 0 {
		t := time.Unix(obj.CurrentPeriodStart, 0).UTC()
		ev.CurrentPeriodStart = &t
	}
	if obj.CurrentPeriodEnd > 0 {
		t := time.Unix(obj.CurrentPeriodEnd, 0).UTC()
		ev.CurrentPeriodEnd = &t
	}
	// Deletion events land as canceled regardless of the embedded status.
	if strings.EqualFold(env.Type, "customer.subscription.deleted") {
		ev.Status = models.BillingStatusCanceled
	}
	return ev, nil
}

// ParseInvoiceEvent decodes an invoice webhook payload.
func ParseInvoiceEvent(raw []byte) (*InvoiceEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	var obj invoiceObject
	if err := json.Unmarshal(env.Data.Object, &obj); err != nil {
		return nil, fmt.Errorf("invalid invoice object: %w", err)
	}
	if obj.ID == "" || obj.Customer == "" {
		return nil, fmt.Errorf("invoice payload missing id or customer")
	}

	ev := &InvoiceEvent{
		EventID:          env.ID,
		EventType:        env.Type,
		InvoiceID:        obj.ID,
		CustomerID:       obj.Customer,
		AmountDueCents:   obj.AmountDue,
		AmountPaidCents:  obj.AmountPaid,
		Currency:         obj.Currency,
		Status:           obj.Status,
		HostedInvoiceURL: obj.HostedInvoiceURL,
	}
	if obj.Created > 0 {
		t := time.Unix(obj.Created, 0).UTC()
		ev.IssuedAt = &t
	}
	if obj.StatusTransitions.PaidAt > 0 {
		t := time.Unix(obj.StatusTransitions.PaidAt, 0).UTC()
		ev.PaidAt = &t
	}
	return ev, nil
}
