package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailability_AnchorTo(t *testing.T) {
	// Окно хранится с произвольной датой - значимо только время суток
	av := &Availability{
		StartTime: time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2020, 1, 1, 17, 30, 0, 0, time.UTC),
	}

	day := time.Date(2026, 3, 5, 13, 45, 0, 0, time.UTC)
	start, end := av.AnchorTo(day)

	assert.Equal(t, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 5, 17, 30, 0, 0, time.UTC), end)
}

func TestAvailability_AnchorTo_KeepsDayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	av := &Availability{
		StartTime: time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2020, 1, 1, 17, 0, 0, 0, time.UTC),
	}

	day := time.Date(2026, 3, 5, 0, 0, 0, 0, loc)
	start, end := av.AnchorTo(day)

	assert.Equal(t, loc, start.Location())
	assert.Equal(t, loc, end.Location())
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 17, end.Hour())
}
