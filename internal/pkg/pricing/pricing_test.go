package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

func TestCalculateWorstCaseConditions(t *testing.T) {
	// 5000 sq ft at 0.15 = 750.00 base; poor lawn (1.40) on compacted
	// soil (1.25) lifts it to 1312.50.
	b, err := Calculate(5000, models.LawnConditionPoor, models.SoilConditionCompacted)
	require.NoError(t, err)

	assert.Equal(t, 750.00, b.BasePrice)
	assert.Equal(t, 1.40, b.LawnMultiplier)
	assert.Equal(t, 1.25, b.SoilMultiplier)
	assert.Equal(t, 1312.50, b.AdjustedPrice)
}

func TestCalculateBaselineConditions(t *testing.T) {
	b, err := Calculate(1000, models.LawnConditionGood, models.SoilConditionLoamy)
	require.NoError(t, err)

	assert.Equal(t, 150.00, b.BasePrice)
	assert.Equal(t, 150.00, b.AdjustedPrice)
}

func TestCalculateRounding(t *testing.T) {
	// 333 sq ft -> 49.95 base; excellent lawn discounts below base.
	b, err := Calculate(333, models.LawnConditionExcellent, models.SoilConditionSandy)
	require.NoError(t, err)

	assert.Equal(t, 49.95, b.BasePrice)
	assert.Equal(t, 49.45, b.AdjustedPrice)
}

func TestCalculateRejectsNonPositiveSize(t *testing.T) {
	_, err := Calculate(0, models.LawnConditionGood, models.SoilConditionLoamy)
	assert.Error(t, err)

	_, err = Calculate(-50, models.LawnConditionGood, models.SoilConditionLoamy)
	assert.Error(t, err)
}

func TestCalculateRejectsUnknownConditions(t *testing.T) {
	_, err := Calculate(1000, "immaculate", models.SoilConditionLoamy)
	assert.ErrorIs(t, err, ErrUnknownCondition)

	_, err = Calculate(1000, models.LawnConditionGood, "rocky")
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestLawnMultiplierTable(t *testing.T) {
	tests := []struct {
		condition string
		want      float64
	}{
		{condition: models.LawnConditionExcellent, want: 0.90},
		{condition: models.LawnConditionGood, want: 1.00},
		{condition: models.LawnConditionFair, want: 1.20},
		{condition: models.LawnConditionPoor, want: 1.40},
	}

	for _, tt := range tests {
		got, err := LawnMultiplier(tt.condition)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "lawn %q", tt.condition)
	}
}

func TestSoilMultiplierTable(t *testing.T) {
	tests := []struct {
		condition string
		want      float64
	}{
		{condition: models.SoilConditionLoamy, want: 1.00},
		{condition: models.SoilConditionSandy, want: 1.10},
		{condition: models.SoilConditionClay, want: 1.15},
		{condition: models.SoilConditionCompacted, want: 1.25},
	}

	for _, tt := range tests {
		got, err := SoilMultiplier(tt.condition)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "soil %q", tt.condition)
	}
}

func TestNewQuoteNumberFormat(t *testing.T) {
	a := NewQuoteNumber()
	b := NewQuoteNumber()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "Q-")
}
