package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEditableAssessmentStatus(t *testing.T) {
	tests := []struct {
		status   string
		editable bool
	}{
		{AssessmentStatusPending, true},
		{AssessmentStatusReviewed, true},
		{AssessmentStatusDismissed, true},
		{AssessmentStatusQuoted, false},
		{"", false},
		{"converted", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.editable, IsEditableAssessmentStatus(tc.status), "status %q", tc.status)
	}
}

func TestAssessmentMarkQuoted(t *testing.T) {
	a := &Assessment{Status: AssessmentStatusReviewed}
	require.Nil(t, a.QuotedAt)

	a.MarkQuoted()

	assert.Equal(t, AssessmentStatusQuoted, a.Status)
	require.NotNil(t, a.QuotedAt)
}

func TestAssessmentValidateConditionSets(t *testing.T) {
	a := &Assessment{
		UserID:           1,
		ClientID:         1,
		PropertySizeSqFt: 5000,
		LawnCondition:    LawnConditionPoor,
		SoilCondition:    SoilConditionCompacted,
		Status:           AssessmentStatusPending,
	}
	assert.NoError(t, a.Validate())

	a.LawnCondition = "lush"
	assert.Error(t, a.Validate())

	a.LawnCondition = LawnConditionGood
	a.SoilCondition = "rocky"
	assert.Error(t, a.Validate())
}
