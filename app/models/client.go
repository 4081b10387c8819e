package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ClientKindResidential = "residential"
	ClientKindCommercial  = "commercial"
)

const (
	ClientStatusLead     = "lead"
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusArchived = "archived"
)

// Client is a customer record owned by a single account. Properties, quotes
// and assessments hang off it and are removed with it.
type Client struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Kind        string         `gorm:"type:varchar(20);not null;default:'residential';index" json:"kind" validate:"oneof=residential commercial"`
	Status      string         `gorm:"type:varchar(20);not null;default:'lead';index" json:"status" validate:"oneof=lead active inactive archived"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	CompanyName string         `gorm:"type:varchar(200);default:''" json:"company_name" validate:"max=200"`
	Email       string         `gorm:"type:varchar(200);default:'';index" json:"email" validate:"omitempty,email,max=200"`
	Phone       string         `gorm:"type:varchar(50);default:''" json:"phone" validate:"max=50"`
	Address     string         `gorm:"type:text" json:"address"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Properties []Property `gorm:"constraint:OnDelete:CASCADE" json:"properties,omitempty"`
	Quotes     []Quote    `gorm:"constraint:OnDelete:CASCADE" json:"quotes,omitempty"`
}

func (c *Client) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// IsCommercial reports whether the client is a commercial account
func (c *Client) IsCommercial() bool {
	return c.Kind == ClientKindCommercial
}
