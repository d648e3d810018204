package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUsage(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		percent  float64
		daysLeft int
		send     bool
		status   string
	}{
		{"safe", 60, 20, false, ""},
		{"just under threshold", 74.9, 20, false, ""},
		{"warning", 80, 20, true, "Warning"},
		{"critical", 95, 10, true, "CRITICAL PREDICTION"},
		{"high but month almost over", 95, 3, true, "Warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := classifyUsage(tt.percent, tt.daysLeft, now)

			assert.Equal(t, tt.send, level.Send)
			if tt.send {
				assert.Equal(t, tt.status, level.Status)
			}
		})
	}
}

func TestClassifyUsage_RunOutDateRollsOverMonth(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	level := classifyUsage(95, 10, now)

	assert.True(t, level.Send)
	assert.Contains(t, level.Advice, "Sep 2")
}

func TestClassifyUsage_RunOutDateMidMonth(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	level := classifyUsage(95, 10, now)

	assert.Contains(t, level.Advice, "Aug 12")
}

func TestAlertHTML(t *testing.T) {
	level := classifyUsage(95, 10, time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))

	html := alertHTML("Asha", level, 95, 9500, 10000)

	assert.Contains(t, html, "Asha")
	assert.Contains(t, html, "95.0%")
	assert.Contains(t, html, "₹9500 of ₹10000")
	assert.Contains(t, html, "CRITICAL PREDICTION")
}
