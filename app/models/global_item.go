package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Access tiers for the system catalog. The set is closed: a legacy "paid"
// tier existed historically and is folded into premium on write.
const (
	ItemTierFree    = "free"
	ItemTierPremium = "premium"
)

// GlobalItem is a system catalog entry visible to all accounts and gated by
// access tier. Users never edit these directly; they copy them into their
// own LineItem catalog.
type GlobalItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=1,max=200"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"type:varchar(100);default:'';index" json:"category" validate:"max=100"`
	Unit        string         `gorm:"type:varchar(30);default:'each'" json:"unit" validate:"max=30"`
	UnitCost    float64        `gorm:"type:decimal(12,2);default:0" json:"unit_cost" validate:"gte=0"`
	UnitPrice   float64        `gorm:"type:decimal(12,2);default:0" json:"unit_price" validate:"gte=0"`
	AccessTier  string         `gorm:"type:varchar(20);not null;default:'free';index" json:"access_tier" validate:"oneof=free premium"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (gi *GlobalItem) Validate() error {
	v := validator.New()

	return v.Struct(gi)
}

// BeforeSave keeps the tier column inside the closed set. Legacy "paid" rows
// map to premium; anything unrecognized falls back to free.
func (gi *GlobalItem) BeforeSave(tx *gorm.DB) error {
	gi.AccessTier = NormalizeItemTier(gi.AccessTier)
	return nil
}

// NormalizeItemTier folds tier names into the closed {free, premium} set.
func NormalizeItemTier(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case ItemTierPremium, "paid":
		return ItemTierPremium
	default:
		return ItemTierFree
	}
}
