package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Property is a serviceable site belonging to a client. Service-planning
// attributes are free-form and stored as JSON.
type Property struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ClientID       uint           `gorm:"not null;index" json:"client_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Label          string         `gorm:"type:varchar(200);not null" json:"label"`
	Address        string         `gorm:"type:text" json:"address"`
	SizeSqFt       float64        `gorm:"type:decimal(12,2);default:0" json:"size_sq_ft"`
	AttributesJSON string         `gorm:"type:longtext" json:"attributes_json"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attributes decodes the free-form planning attributes. A missing or empty
// payload decodes to an empty map.
func (p *Property) Attributes() (map[string]any, error) {
	attrs := map[string]any{}
	if p.AttributesJSON == "" {
		return attrs, nil
	}
	if err := json.Unmarshal([]byte(p.AttributesJSON), &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// SetAttributes encodes and stores the planning attributes.
func (p *Property) SetAttributes(attrs map[string]any) error {
	if attrs == nil {
		p.AttributesJSON = ""
		return nil
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	p.AttributesJSON = string(raw)
	return nil
}
