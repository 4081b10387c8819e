package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "premium", want: PlanPremium},
		{in: " PREMIUM ", want: PlanPremium},
		{in: "enterprise", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "plan %q", tt.in)
	}
}

func TestRank(t *testing.T) {
	assert.Less(t, Rank(PlanFree), Rank(PlanPremium))
}

func TestCanAccessItem(t *testing.T) {
	assert.True(t, CanAccessItem(models.ItemTierFree, PlanFree))
	assert.True(t, CanAccessItem(models.ItemTierFree, PlanPremium))
	assert.False(t, CanAccessItem(models.ItemTierPremium, PlanFree))
	assert.True(t, CanAccessItem(models.ItemTierPremium, PlanPremium))
	// legacy tier name folds to premium
	assert.False(t, CanAccessItem("paid", PlanFree))
}

func TestMonthlyLimitFreePlan(t *testing.T) {
	tests := []struct {
		feature string
		want    int
	}{
		{feature: models.FeatureQuotesCreated, want: 20},
		{feature: models.FeatureAssessmentsQuoted, want: 10},
		{feature: models.FeatureGlobalItemsCopied, want: 25},
		{feature: models.FeatureDocumentsGenerated, want: 10},
		{feature: "untracked_feature", want: Unlimited},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthlyLimit(PlanFree, tt.feature), "feature %q", tt.feature)
	}
}

func TestMonthlyLimitPremiumIsUnlimited(t *testing.T) {
	for _, feature := range []string{
		models.FeatureQuotesCreated,
		models.FeatureAssessmentsQuoted,
		models.FeatureGlobalItemsCopied,
		models.FeatureDocumentsGenerated,
	} {
		assert.Equal(t, Unlimited, MonthlyLimit(PlanPremium, feature), "feature %q", feature)
	}
}
