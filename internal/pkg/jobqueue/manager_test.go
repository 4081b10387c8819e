package jobqueue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerRegistersHandlers(t *testing.T) {
	m := GetManager()

	assert.True(t, m.GetQueue().HasHandler(JobTypeDocumentRender))
	assert.True(t, m.GetQueue().HasHandler(JobTypeBillingReconcile))
	assert.False(t, m.GetQueue().HasHandler(JobType("unknown")))
	assert.False(t, m.IsRunning())
}

func TestQueueStatsHonorContext(t *testing.T) {
	q := NewQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.GetJobStats(ctx)
	assert.Error(t, err)
	_, err = q.GetQueueSize(ctx)
	assert.Error(t, err)
	_, err = q.GetProcessingSize(ctx)
	assert.Error(t, err)
}
