package models

import (
	"encoding/json"
	"time"
)

// Known onboarding tour keys.
const (
	TourGettingStarted = "getting_started"
	TourFirstQuote     = "first_quote"
	TourCatalog        = "catalog"
)

// OnboardingProgress tracks a user's position in a product tour. One row per
// (user, tour key).
type OnboardingProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index:ux_onboarding_user_tour,unique,priority:1" json:"user_id"`
	TourKey     string     `gorm:"type:varchar(50);not null;index:ux_onboarding_user_tour,unique,priority:2" json:"tour_key"`
	StepsJSON   string     `gorm:"type:text" json:"steps_json"`
	CompletedAt *time.Time `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	SkippedAt   *time.Time `gorm:"type:timestamp;default:null" json:"skipped_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Steps decodes the completed step keys.
func (op *OnboardingProgress) Steps() ([]string, error) {
	var steps []string
	if op.StepsJSON == "" {
		return steps, nil
	}
	if err := json.Unmarshal([]byte(op.StepsJSON), &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// AddStep records a completed step once; repeats are no-ops.
func (op *OnboardingProgress) AddStep(step string) error {
	steps, err := op.Steps()
	if err != nil {
		return err
	}
	for _, s := range steps {
		if s == step {
			return nil
		}
	}
	steps = append(steps, step)
	raw, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	op.StepsJSON = string(raw)
	return nil
}

// IsDone reports whether the tour is finished or skipped.
func (op *OnboardingProgress) IsDone() bool {
	return op.CompletedAt != nil || op.SkippedAt != nil
}
