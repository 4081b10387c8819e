package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// LineItem is a user-owned catalog entry. Items copied from the global
// catalog keep a reference to their source.
type LineItem struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	Name             string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=1,max=200"`
	Description      string         `gorm:"type:text" json:"description"`
	Category         string         `gorm:"type:varchar(100);default:'';index" json:"category" validate:"max=100"`
	Unit             string         `gorm:"type:varchar(30);default:'each'" json:"unit" validate:"max=30"`
	UnitCost         float64        `gorm:"type:decimal(12,2);default:0" json:"unit_cost" validate:"gte=0"`
	UnitPrice        float64        `gorm:"type:decimal(12,2);default:0" json:"unit_price" validate:"gte=0"`
	SourceGlobalItem *uint          `gorm:"index" json:"source_global_item_id,omitempty"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (li *LineItem) Validate() error {
	v := validator.New()

	return v.Struct(li)
}
