package models

import "time"

// GlobalItemUsage tracks per-user interaction with a system catalog entry.
// One row per (user, item); repeated copies bump the counter instead of
// inserting duplicates.
type GlobalItemUsage struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index:ux_global_item_usage_user_item,unique,priority:1" json:"user_id"`
	GlobalItemID uint       `gorm:"not null;index:ux_global_item_usage_user_item,unique,priority:2;index" json:"global_item_id"`
	TimesUsed    uint       `gorm:"not null;default:0" json:"times_used"`
	IsFavorite   bool       `gorm:"default:false;index" json:"is_favorite"`
	LastUsedAt   *time.Time `gorm:"type:timestamp;default:null" json:"last_used_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
