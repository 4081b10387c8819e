package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	AssessmentStatusPending   = "pending"
	AssessmentStatusReviewed  = "reviewed"
	AssessmentStatusQuoted    = "quoted"
	AssessmentStatusDismissed = "dismissed"
)

// Lawn condition ratings collected during a site survey.
const (
	LawnConditionExcellent = "excellent"
	LawnConditionGood      = "good"
	LawnConditionFair      = "fair"
	LawnConditionPoor      = "poor"
)

// Soil condition ratings collected during a site survey.
const (
	SoilConditionLoamy     = "loamy"
	SoilConditionSandy     = "sandy"
	SoilConditionClay      = "clay"
	SoilConditionCompacted = "compacted"
)

// Assessment is a property condition survey feeding the automated price
// calculation.
type Assessment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	ClientID         uint           `gorm:"not null;index" json:"client_id"`
	PropertyID       *uint          `gorm:"index" json:"property_id,omitempty"`
	PropertySizeSqFt float64        `gorm:"type:decimal(12,2);not null" json:"property_size_sq_ft" validate:"gt=0"`
	LawnCondition    string         `gorm:"type:varchar(20);not null" json:"lawn_condition" validate:"oneof=excellent good fair poor"`
	SoilCondition    string         `gorm:"type:varchar(20);not null" json:"soil_condition" validate:"oneof=loamy sandy clay compacted"`
	Notes            string         `gorm:"type:text" json:"notes"`
	Status           string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" validate:"oneof=pending reviewed quoted dismissed"`
	QuotedAt         *time.Time     `gorm:"type:timestamp;default:null" json:"quoted_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Assessment) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// IsEditableAssessmentStatus reports whether a status may be set through a
// plain update. Quoted is only reachable via quote generation, which also
// stamps QuotedAt and counts the automation usage.
func IsEditableAssessmentStatus(status string) bool {
	switch status {
	case AssessmentStatusPending, AssessmentStatusReviewed, AssessmentStatusDismissed:
		return true
	}
	return false
}

// MarkQuoted records that a quote was generated from this survey.
func (a *Assessment) MarkQuoted() {
	now := time.Now()
	a.Status = AssessmentStatusQuoted
	a.QuotedAt = &now
}
