package jobqueue

import "time"

// JobType defines the type of job
type JobType string

const (
	JobTypeDocumentRender   JobType = "document_render"
	JobTypeBillingReconcile JobType = "billing_reconcile"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// MarkAsProcessing flips the job into processing state
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted flips the job into completed state
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed records a failure
func (j *Job) MarkAsFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errMsg
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying bumps the retry counter
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.RetryCount++
	j.UpdatedAt = time.Now()
}

// IsRetryable reports whether the job has retries left
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// UintPayload reads an unsigned integer payload field. JSON round-tripping
// stores numbers as float64.
func (j *Job) UintPayload(key string) (uint, bool) {
	v, ok := j.Payload[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}
