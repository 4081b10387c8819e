package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)
	secret := "whsec_test"
	sig := signPayload(payload, secret)

	assert.True(t, VerifyWebhookSignature(payload, sig, secret))
	// case-insensitive hex and surrounding whitespace are tolerated
	assert.True(t, VerifyWebhookSignature(payload, "  "+sig+"  ", secret))

	assert.False(t, VerifyWebhookSignature(payload, sig, "whsec_other"))
	assert.False(t, VerifyWebhookSignature([]byte(`{"id":"evt_2"}`), sig, secret))
	assert.False(t, VerifyWebhookSignature(payload, "", secret))
	assert.False(t, VerifyWebhookSignature(payload, sig, ""))
	assert.False(t, VerifyWebhookSignature(payload, "not-hex!", secret))
}

func TestPeekEventHeader(t *testing.T) {
	id, typ := PeekEventHeader([]byte(`{"id":"evt_42","type":"customer.subscription.updated","data":{"object":{}}}`))
	assert.Equal(t, "evt_42", id)
	assert.Equal(t, "customer.subscription.updated", typ)

	id, typ = PeekEventHeader([]byte(`{broken`))
	assert.Equal(t, "", id)
	assert.Equal(t, "", typ)
}

func TestEventTypeClassification(t *testing.T) {
	for _, typ := range []string{
		"customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted",
	} {
		assert.True(t, IsSubscriptionEvent(typ), typ)
		assert.False(t, IsInvoiceEvent(typ), typ)
	}

	for _, typ := range []string{"invoice.finalized", "invoice.paid", "invoice.payment_failed", "invoice.voided"} {
		assert.True(t, IsInvoiceEvent(typ), typ)
		assert.False(t, IsSubscriptionEvent(typ), typ)
	}

	assert.False(t, IsSubscriptionEvent("charge.succeeded"))
	assert.False(t, IsInvoiceEvent("charge.succeeded"))
}

func TestParseSubscriptionEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_sub_1",
		"type": "customer.subscription.updated",
		"data": {
			"object": {
				"id": "sub_123",
				"customer": "cus_456",
				"status": "active",
				"cancel_at_period_end": true,
				"current_period_start": 1735689600,
				"current_period_end": 1738368000,
				"items": {
					"data": [
						{"price": {"id": "price_premium_month", "recurring": {"interval": "month"}}}
					]
				}
			}
		}
	}`)

	ev, err := ParseSubscriptionEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "evt_sub_1", ev.EventID)
	assert.Equal(t, "sub_123", ev.SubscriptionID)
	assert.Equal(t, "cus_456", ev.CustomerID)
	assert.Equal(t, "price_premium_month", ev.PriceRef)
	assert.Equal(t, "month", ev.Interval)
	assert.Equal(t, "active", ev.Status)
	assert.True(t, ev.CancelAtPeriodEnd)
	require.NotNil(t, ev.CurrentPeriodStart)
	assert.Equal(t, time.Unix(1735689600, 0).UTC(), *ev.CurrentPeriodStart)
	require.NotNil(t, ev.CurrentPeriodEnd)
}

func TestParseSubscriptionEventDeletedForcesCanceled(t *testing.T) {
	payload := []byte(`{
		"id": "evt_sub_2",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_123", "customer": "cus_456", "status": "active"}}
	}`)

	ev, err := ParseSubscriptionEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, models.BillingStatusCanceled, ev.Status)
}

func TestParseSubscriptionEventRejectsIncompleteObject(t *testing.T) {
	_, err := ParseSubscriptionEvent([]byte(`{"id":"evt_x","type":"customer.subscription.created","data":{"object":{"id":"sub_1"}}}`))
	assert.Error(t, err)

	_, err = ParseSubscriptionEvent([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseInvoiceEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_inv_1",
		"type": "invoice.paid",
		"data": {
			"object": {
				"id": "in_789",
				"customer": "cus_456",
				"amount_due": 2900,
				"amount_paid": 2900,
				"currency": "usd",
				"status": "paid",
				"hosted_invoice_url": "https://billing.example.com/in_789",
				"created": 1735689600,
				"status_transitions": {"paid_at": 1735693200}
			}
		}
	}`)

	ev, err := ParseInvoiceEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "evt_inv_1", ev.EventID)
	assert.Equal(t, "in_789", ev.InvoiceID)
	assert.Equal(t, "cus_456", ev.CustomerID)
	assert.Equal(t, int64(2900), ev.AmountDueCents)
	assert.Equal(t, int64(2900), ev.AmountPaidCents)
	assert.Equal(t, "usd", ev.Currency)
	assert.Equal(t, "paid", ev.Status)
	require.NotNil(t, ev.IssuedAt)
	require.NotNil(t, ev.PaidAt)
	assert.Equal(t, time.Unix(1735693200, 0).UTC(), *ev.PaidAt)
}

func TestParseInvoiceEventRejectsIncompleteObject(t *testing.T) {
	_, err := ParseInvoiceEvent([]byte(`{"id":"evt_x","type":"invoice.paid","data":{"object":{"customer":"cus_1"}}}`))
	assert.Error(t, err)
}
