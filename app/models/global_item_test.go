package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItemTier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "free", want: ItemTierFree},
		{in: "premium", want: ItemTierPremium},
		{in: "PREMIUM", want: ItemTierPremium},
		{in: " paid ", want: ItemTierPremium},
		{in: "gold", want: ItemTierFree},
		{in: "", want: ItemTierFree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeItemTier(tt.in), "tier %q", tt.in)
	}
}

func TestGlobalItemValidate(t *testing.T) {
	item := &GlobalItem{Name: "Core Aeration", Unit: "sq ft", UnitPrice: 0.05, AccessTier: ItemTierFree}
	assert.NoError(t, item.Validate())

	missingName := &GlobalItem{Unit: "each", AccessTier: ItemTierFree}
	assert.Error(t, missingName.Validate())

	badTier := &GlobalItem{Name: "Overseeding", Unit: "sq ft", AccessTier: "gold"}
	assert.Error(t, badTier.Validate())
}
