package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingProgressAddStep(t *testing.T) {
	op := &OnboardingProgress{UserID: 1, TourKey: TourGettingStarted}

	require.NoError(t, op.AddStep("create_client"))
	require.NoError(t, op.AddStep("create_quote"))
	// duplicates are no-ops
	require.NoError(t, op.AddStep("create_client"))

	steps, err := op.Steps()
	require.NoError(t, err)
	assert.Equal(t, []string{"create_client", "create_quote"}, steps)
}

func TestOnboardingProgressStepsEmpty(t *testing.T) {
	op := &OnboardingProgress{}
	steps, err := op.Steps()
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestOnboardingProgressIsDone(t *testing.T) {
	now := time.Now()

	assert.False(t, (&OnboardingProgress{}).IsDone())
	assert.True(t, (&OnboardingProgress{CompletedAt: &now}).IsDone())
	assert.True(t, (&OnboardingProgress{SkippedAt: &now}).IsDone())
}
