package pricing

import (
	"errors"
	"math"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

// BaseRatePerSqFt is the flat service rate applied to property size before
// condition adjustment.
const BaseRatePerSqFt = 0.15

var ErrUnknownCondition = errors.New("unknown condition rating")

// Condition multipliers. Ratings outside these tables are rejected, not
// defaulted, so a typo can never silently change a price.
var lawnMultipliers = map[string]float64{
	models.LawnConditionExcellent: 0.90,
	models.LawnConditionGood:      1.00,
	models.LawnConditionFair:      1.20,
	models.LawnConditionPoor:      1.40,
}

var soilMultipliers = map[string]float64{
	models.SoilConditionLoamy:     1.00,
	models.SoilConditionSandy:     1.10,
	models.SoilConditionClay:      1.15,
	models.SoilConditionCompacted: 1.25,
}

// Breakdown is the result of a condition-adjusted price calculation.
type Breakdown struct {
	PropertySizeSqFt float64 `json:"property_size_sq_ft"`
	BaseRate         float64 `json:"base_rate"`
	BasePrice        float64 `json:"base_price"`
	LawnCondition    string  `json:"lawn_condition"`
	LawnMultiplier   float64 `json:"lawn_multiplier"`
	SoilCondition    string  `json:"soil_condition"`
	SoilMultiplier   float64 `json:"soil_multiplier"`
	AdjustedPrice    float64 `json:"adjusted_price"`
}

// LawnMultiplier returns the price multiplier for a lawn condition rating.
func LawnMultiplier(condition string) (float64, error) {
	m, ok := lawnMultipliers[condition]
	if !ok {
		return 0, ErrUnknownCondition
	}
	return m, nil
}

// SoilMultiplier returns the price multiplier for a soil condition rating.
func SoilMultiplier(condition string) (float64, error) {
	m, ok := soilMultipliers[condition]
	if !ok {
		return 0, ErrUnknownCondition
	}
	return m, nil
}

// Calculate computes the condition-adjusted service price:
// base = size * rate, adjusted = base * lawn * soil.
func Calculate(sizeSqFt float64, lawnCondition, soilCondition string) (*Breakdown, error) {
	if sizeSqFt <= 0 {
		return nil, errors.New("property size must be positive")
	}
	lawn, err := LawnMultiplier(lawnCondition)
	if err != nil {
		return nil, err
	}
	soil, err := SoilMultiplier(soilCondition)
	if err != nil {
		return nil, err
	}

	base := round2(sizeSqFt * BaseRatePerSqFt)
	adjusted := round2(base * lawn * soil)

	return &Breakdown{
		PropertySizeSqFt: sizeSqFt,
		BaseRate:         BaseRatePerSqFt,
		BasePrice:        base,
		LawnCondition:    lawnCondition,
		LawnMultiplier:   lawn,
		SoilCondition:    soilCondition,
		SoilMultiplier:   soil,
		AdjustedPrice:    adjusted,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
