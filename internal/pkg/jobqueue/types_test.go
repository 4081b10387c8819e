package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobLifecycleMarks(t *testing.T) {
	job := &Job{ID: "j1", Type: JobTypeDocumentRender, Status: JobStatusPending, MaxRetries: DefaultMaxRetries}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
}

func TestJobRetryAccounting(t *testing.T) {
	job := &Job{ID: "j2", MaxRetries: 2}

	job.MarkAsFailed("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.ErrorMsg)
	assert.True(t, job.IsRetryable())

	job.MarkAsRetrying()
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsRetrying()
	assert.Equal(t, 2, job.RetryCount)
	assert.False(t, job.IsRetryable())
}

func TestJobUintPayload(t *testing.T) {
	// JSON decoding stores numbers as float64
	job := &Job{Payload: map[string]interface{}{
		"document_log_id": float64(42),
		"name":            "not a number",
		"negative":        float64(-1),
	}}

	v, ok := job.UintPayload("document_log_id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), v)

	_, ok = job.UintPayload("name")
	assert.False(t, ok)

	_, ok = job.UintPayload("negative")
	assert.False(t, ok)

	_, ok = job.UintPayload("missing")
	assert.False(t, ok)
}
