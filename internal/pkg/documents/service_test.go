package documents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

func testQuote(t *testing.T) *models.Quote {
	t.Helper()
	q := &models.Quote{
		QuoteNumber: "Q-2025-ABCD1234",
		MarkupRate:  25.0,
		TaxRate:     8.25,
	}
	require.NoError(t, q.SetLines([]models.QuoteLine{
		{Name: "Lawn Renovation", Quantity: 1, UnitPrice: 1312.50},
	}))
	return q
}

func TestRenderQuoteHTMLDefaultTemplate(t *testing.T) {
	cs := &models.CompanySettings{CompanyName: "GreenEdge Lawncare"}

	out, err := RenderQuoteHTML(cs, testQuote(t))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "GreenEdge Lawncare")
	assert.Contains(t, html, "Q-2025-ABCD1234")
	assert.Contains(t, html, "Lawn Renovation")
	assert.Contains(t, html, "1312.50")
}

func TestRenderQuoteHTMLCustomTemplate(t *testing.T) {
	cs := &models.CompanySettings{
		CompanyName:       "GreenEdge Lawncare",
		QuoteTemplateHTML: `<p>{{.Company.CompanyName}} / {{.Quote.QuoteNumber}} / {{printf "%.2f" .Quote.Total}}</p>`,
	}

	out, err := RenderQuoteHTML(cs, testQuote(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<p>GreenEdge Lawncare / Q-2025-ABCD1234 /"))
}

func TestRenderQuoteHTMLEscapesUserContent(t *testing.T) {
	cs := &models.CompanySettings{CompanyName: `<script>alert("x")</script>`}

	out, err := RenderQuoteHTML(cs, testQuote(t))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestRenderQuoteHTMLBadTemplate(t *testing.T) {
	cs := &models.CompanySettings{QuoteTemplateHTML: "{{.Broken"}

	_, err := RenderQuoteHTML(cs, testQuote(t))
	assert.Error(t, err)
}
