package models

import "time"

// Features tracked by the monthly usage counters.
const (
	FeatureQuotesCreated      = "quotes_created"
	FeatureAssessmentsQuoted  = "assessments_quoted"
	FeatureGlobalItemsCopied  = "global_items_copied"
	FeatureDocumentsGenerated = "documents_generated"
)

// UsageCounter is a monthly per-feature counter used for plan enforcement.
// One row per (user, feature, month bucket); increments are atomic upserts.
type UsageCounter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:ux_usage_counters_user_feature_period,unique,priority:1" json:"user_id"`
	Feature     string    `gorm:"type:varchar(50);not null;index:ux_usage_counters_user_feature_period,unique,priority:2" json:"feature"`
	PeriodStart time.Time `gorm:"type:date;not null;index:ux_usage_counters_user_feature_period,unique,priority:3;index" json:"period_start"`
	Count       uint      `gorm:"not null;default:0" json:"count"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// MonthBucket truncates a timestamp to the first day of its month in UTC,
// the canonical period key for usage counters.
func MonthBucket(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
