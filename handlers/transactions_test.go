package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal-go-be/models"
)

func TestBuildChartData_ZeroFills(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	points := buildChartData(nil, since)

	require.Len(t, points, 8)
	assert.Equal(t, "08-01", points[0].Name)
	assert.Equal(t, "08-08", points[7].Name)
	for _, p := range points {
		assert.Equal(t, 0.0, p.Amount)
	}
}

func TestBuildChartData_BucketsByDay(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Amount: 100, Date: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
		{Amount: 250, Date: time.Date(2026, 8, 2, 21, 0, 0, 0, time.UTC)},
		{Amount: 40, Date: time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)},
	}

	points := buildChartData(txns, since)

	require.Len(t, points, 8)
	assert.Equal(t, 350.0, points[1].Amount)
	assert.Equal(t, 40.0, points[4].Amount)
	assert.Equal(t, 0.0, points[0].Amount)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, stripFences(tt.in))
		})
	}
}

func TestRenderAuditSummary(t *testing.T) {
	txns := []models.Transaction{
		{Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Description: "Filter coffee", Amount: 50, Category: "Food & Dining"},
	}

	out := renderAuditSummary(txns)

	assert.Equal(t, "- 2026-08-10: Filter coffee - ₹50 (Food & Dining)", out)
}
