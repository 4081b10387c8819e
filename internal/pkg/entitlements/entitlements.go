package entitlements

import (
	"strings"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// Unlimited marks a feature without a monthly cap.
const Unlimited = -1

// Normalize folds arbitrary plan strings into the closed plan set.
func Normalize(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPremium):
		return PlanPremium
	default:
		return PlanFree
	}
}

// Rank orders plans from least to most entitled.
func Rank(plan Plan) int {
	if plan == PlanPremium {
		return 1
	}
	return 0
}

// CanAccessItem reports whether a caller on the given plan may use a catalog
// item of the given access tier. Free items are open to everyone.
func CanAccessItem(itemTier string, plan Plan) bool {
	if models.NormalizeItemTier(itemTier) == models.ItemTierFree {
		return true
	}
	return plan == PlanPremium
}

// MonthlyLimit returns the per-month cap for a tracked feature on the given
// plan, or Unlimited.
func MonthlyLimit(plan Plan, feature string) int {
	if plan == PlanPremium {
		return Unlimited
	}
	switch feature {
	case models.FeatureQuotesCreated:
		return 20
	case models.FeatureAssessmentsQuoted:
		return 10
	case models.FeatureGlobalItemsCopied:
		return 25
	case models.FeatureDocumentsGenerated:
		return 10
	default:
		return Unlimited
	}
}
