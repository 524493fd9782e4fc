package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromotionActiveOn(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	promotion := Promotion{StartDate: start, EndDate: end}

	// Both window boundaries are inclusive
	assert.True(t, promotion.ActiveOn(start))
	assert.True(t, promotion.ActiveOn(end))
	assert.True(t, promotion.ActiveOn(start.AddDate(0, 0, 3)))

	assert.False(t, promotion.ActiveOn(start.AddDate(0, 0, -1)))
	assert.False(t, promotion.ActiveOn(end.AddDate(0, 0, 1)))

	// The time of day within a boundary day does not matter
	assert.True(t, promotion.ActiveOn(end.Add(23*time.Hour+59*time.Minute)))
}

func TestPromotionSingleDayWindow(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	promotion := Promotion{StartDate: day, EndDate: day}

	assert.True(t, promotion.ActiveOn(day))
	assert.False(t, promotion.ActiveOn(day.AddDate(0, 0, 1)))
	assert.False(t, promotion.ActiveOn(day.AddDate(0, 0, -1)))
}
