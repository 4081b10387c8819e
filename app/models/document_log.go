package models

import "time"

const (
	DocumentStatusQueued     = "queued"
	DocumentStatusProcessing = "processing"
	DocumentStatusCompleted  = "completed"
	DocumentStatusFailed     = "failed"
)

// DocumentLog records the outcome of a quote document generation run. The
// renderer itself is external; this row tracks status, timing, size and the
// storage path of the produced artifact.
type DocumentLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	QuoteID     uint       `gorm:"not null;index" json:"quote_id"`
	Status      string     `gorm:"type:varchar(20);not null;default:'queued';index" json:"status"`
	StoragePath string     `gorm:"type:varchar(500);default:''" json:"storage_path"`
	SizeBytes   int64      `gorm:"default:0" json:"size_bytes"`
	DurationMS  int64      `gorm:"default:0" json:"duration_ms"`
	ErrorMsg    string     `gorm:"type:text" json:"error_msg"`
	StartedAt   *time.Time `gorm:"type:timestamp;default:null" json:"started_at,omitempty"`
	FinishedAt  *time.Time `gorm:"type:timestamp;default:null" json:"finished_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// MarkStarted flips the log into processing state.
func (dl *DocumentLog) MarkStarted() {
	now := time.Now()
	dl.Status = DocumentStatusProcessing
	dl.StartedAt = &now
}

// MarkCompleted records a successful generation outcome.
func (dl *DocumentLog) MarkCompleted(path string, sizeBytes, durationMS int64) {
	now := time.Now()
	dl.Status = DocumentStatusCompleted
	dl.StoragePath = path
	dl.SizeBytes = sizeBytes
	dl.DurationMS = durationMS
	dl.FinishedAt = &now
}

// MarkFailed records a failed generation outcome.
func (dl *DocumentLog) MarkFailed(errMsg string, durationMS int64) {
	now := time.Now()
	dl.Status = DocumentStatusFailed
	dl.ErrorMsg = errMsg
	dl.DurationMS = durationMS
	dl.FinishedAt = &now
}
