package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthBucket(t *testing.T) {
	in := time.Date(2025, time.March, 17, 22, 41, 9, 123, time.FixedZone("PST", -8*3600))
	got := MonthBucket(in)

	// 22:41 PST on the 17th is already the 18th in UTC; the bucket stays in March.
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)

	endOfMonth := time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), MonthBucket(endOfMonth))

	firstInstant := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, firstInstant, MonthBucket(firstInstant))
}
