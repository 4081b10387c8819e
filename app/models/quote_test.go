package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSetLinesComputesTotals(t *testing.T) {
	q := &Quote{MarkupRate: 25.0, TaxRate: 8.25}

	err := q.SetLines([]QuoteLine{
		{Name: "Lawn Mowing", Quantity: 5000, UnitPrice: 0.02},
		{Name: "Fertilizer Application", Quantity: 2, UnitPrice: 60.00},
	})
	require.NoError(t, err)

	assert.Equal(t, 220.00, q.Subtotal)
	assert.Equal(t, 55.00, q.MarkupAmount)
	assert.Equal(t, 22.69, q.TaxAmount)
	assert.Equal(t, 297.69, q.Total)

	lines, err := q.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 100.00, lines[0].Total)
	assert.Equal(t, 120.00, lines[1].Total)
}

func TestQuoteSetLinesEmptyPayload(t *testing.T) {
	q := &Quote{MarkupRate: 25.0, TaxRate: 8.25}
	require.NoError(t, q.SetLines(nil))

	assert.Equal(t, 0.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Total)
	assert.NotEmpty(t, q.LineItemsJSON)
}

func TestQuoteLinesMalformedPayload(t *testing.T) {
	q := &Quote{LineItemsJSON: "{not json"}
	_, err := q.Lines()
	assert.Error(t, err)
}

func TestQuoteTransitionLifecycle(t *testing.T) {
	q := &Quote{Status: QuoteStatusDraft}

	require.NoError(t, q.Transition(QuoteStatusSent))
	assert.Equal(t, QuoteStatusSent, q.Status)
	assert.NotNil(t, q.SentAt)

	require.NoError(t, q.Transition(QuoteStatusAccepted))
	assert.Equal(t, QuoteStatusAccepted, q.Status)
	assert.NotNil(t, q.DecidedAt)

	require.NoError(t, q.Transition(QuoteStatusConverted))
	assert.Equal(t, QuoteStatusConverted, q.Status)
}

func TestQuoteTransitionRejectsInvalidMoves(t *testing.T) {
	tests := []struct {
		from   string
		target string
	}{
		{from: QuoteStatusDraft, target: QuoteStatusAccepted},
		{from: QuoteStatusDraft, target: QuoteStatusConverted},
		{from: QuoteStatusSent, target: QuoteStatusDraft},
		{from: QuoteStatusSent, target: QuoteStatusConverted},
		{from: QuoteStatusDeclined, target: QuoteStatusAccepted},
		{from: QuoteStatusExpired, target: QuoteStatusSent},
		{from: QuoteStatusConverted, target: QuoteStatusSent},
	}

	for _, tt := range tests {
		q := &Quote{Status: tt.from}
		err := q.Transition(tt.target)
		assert.ErrorIs(t, err, ErrInvalidQuoteTransition, "%s -> %s", tt.from, tt.target)
		assert.Equal(t, tt.from, q.Status)
	}
}

func TestQuoteIsOpen(t *testing.T) {
	assert.True(t, (&Quote{Status: QuoteStatusDraft}).IsOpen())
	assert.True(t, (&Quote{Status: QuoteStatusSent}).IsOpen())
	assert.False(t, (&Quote{Status: QuoteStatusAccepted}).IsOpen())
	assert.False(t, (&Quote{Status: QuoteStatusConverted}).IsOpen())
}
