package Schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatAll(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

func TestExpandDatesWeekly(t *testing.T) {
	tests := []struct {
		name     string
		periods  map[string]interface{}
		expected []string
	}{
		{
			name: "single week with empty sibling",
			periods: map[string]interface{}{
				"January": map[string]interface{}{
					"Week1": "2025-01-06",
					"Week2": "",
				},
			},
			expected: []string{"2025-01-06"},
		},
		{
			name: "multiple months sorted across input order",
			periods: map[string]interface{}{
				"March": map[string]interface{}{
					"Week1": "2025-03-03",
					"Week3": "2025-03-17",
				},
				"January": map[string]interface{}{
					"Week1": "2025-01-06",
				},
			},
			expected: []string{"2025-01-06", "2025-03-03", "2025-03-17"},
		},
		{
			name: "unparseable and malformed values skipped",
			periods: map[string]interface{}{
				"January": map[string]interface{}{
					"Week1": "2025-01-06",
					"Week2": "not-a-date",
					"Week3": "2025-02-30",
					"Week4": 12345,
				},
				"February": "flat string where a map belongs",
			},
			expected: []string{"2025-01-06"},
		},
		{
			name: "duplicate dates collapse",
			periods: map[string]interface{}{
				"January": map[string]interface{}{
					"Week1": "2025-01-06",
					"Week2": "2025-01-06",
				},
			},
			expected: []string{"2025-01-06"},
		},
		{
			name:     "empty recurrence",
			periods:  map[string]interface{}{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandDates(tt.periods, FrequencyWeekly, 2025)
			assert.Equal(t, tt.expected, formatAll(got))
		})
	}
}

func TestExpandDatesMonthly(t *testing.T) {
	periods := map[string]interface{}{
		"January":  "2025-01-15",
		"February": "2025-02-15",
		"March":    "",
		"April":    "bad",
	}
	got := ExpandDates(periods, FrequencyMonthly, 2025)
	assert.Equal(t, []string{"2025-01-15", "2025-02-15"}, formatAll(got))
}

func TestExpandDatesQuarterlyFullDate(t *testing.T) {
	periods := map[string]interface{}{
		"Q1 (Jan-Mar)": "2025-02-10",
		"Q2 (Apr-Jun)": "2025-05-12",
		"Q3 (Jul-Sep)": "",
	}
	got := ExpandDates(periods, FrequencyQuarterly, 2025)
	assert.Equal(t, []string{"2025-02-10", "2025-05-12"}, formatAll(got))
}

func TestExpandDatesQuarterlyDayOfMonth(t *testing.T) {
	// Legacy shape: quarter -> month -> bare day. Expands into the reference
	// year and the next so a rolling schedule crosses the year boundary.
	periods := map[string]interface{}{
		"Q1 (Jan-Mar)": map[string]interface{}{
			"January": "15",
		},
	}
	got := ExpandDates(periods, FrequencyQuarterly, 2025)
	assert.Equal(t, []string{"2025-01-15", "2026-01-15"}, formatAll(got))
}

func TestExpandDatesQuarterlyDayOfMonthVariants(t *testing.T) {
	tests := []struct {
		name     string
		periods  map[string]interface{}
		expected []string
	}{
		{
			name: "numeric day from decoded JSON",
			periods: map[string]interface{}{
				"Q2 (Apr-Jun)": map[string]interface{}{
					"April": float64(1),
				},
			},
			expected: []string{"2025-04-01", "2026-04-01"},
		},
		{
			name: "mixed with full-date quarters",
			periods: map[string]interface{}{
				"Q1 (Jan-Mar)": "2025-03-01",
				"Q4 (Oct-Dec)": map[string]interface{}{
					"October": "20",
				},
			},
			expected: []string{"2025-03-01", "2025-10-20", "2026-10-20"},
		},
		{
			name: "day out of range for month dropped",
			periods: map[string]interface{}{
				"Q1 (Jan-Mar)": map[string]interface{}{
					"February": "31",
				},
			},
			expected: []string{},
		},
		{
			name: "unknown month name dropped",
			periods: map[string]interface{}{
				"Q1 (Jan-Mar)": map[string]interface{}{
					"Januar": "15",
				},
			},
			expected: []string{},
		},
		{
			name: "day zero dropped",
			periods: map[string]interface{}{
				"Q1 (Jan-Mar)": map[string]interface{}{
					"January": "0",
				},
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandDates(tt.periods, FrequencyQuarterly, 2025)
			assert.Equal(t, tt.expected, formatAll(got))
		})
	}
}

func TestExpandDatesUnsupportedFrequency(t *testing.T) {
	periods := map[string]interface{}{
		"January": "2025-01-15",
	}
	for _, frequency := range []string{"", "Daily", "Yearly", "weekly"} {
		assert.Empty(t, ExpandDates(periods, frequency, 2025), "frequency %q", frequency)
	}
}

func TestExpandDatesIdempotent(t *testing.T) {
	periods := map[string]interface{}{
		"January": map[string]interface{}{
			"Week1": "2025-01-06",
			"Week2": "2025-01-13",
			"Week3": "2025-01-20",
		},
		"June": map[string]interface{}{
			"Week1": "2025-06-02",
		},
	}
	first := ExpandDates(periods, FrequencyWeekly, 2025)
	second := ExpandDates(periods, FrequencyWeekly, 2025)
	require.Equal(t, first, second)
}

func TestExpandDatesSortedAndDeduplicated(t *testing.T) {
	periods := map[string]interface{}{
		"December": "2025-12-01",
		"January":  "2025-01-05",
		"July":     "2025-07-09",
		"August":   "2025-01-05", // same day listed under a second key
	}
	got := ExpandDates(periods, FrequencyMonthly, 2025)

	require.Equal(t, []string{"2025-01-05", "2025-07-09", "2025-12-01"}, formatAll(got))
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]), "dates must be strictly increasing")
	}
}

func TestNextUpcoming(t *testing.T) {
	dates := []time.Time{
		day(2025, time.January, 6),
		day(2025, time.June, 2),
		day(2025, time.December, 1),
	}

	tests := []struct {
		name     string
		dates    []time.Time
		today    time.Time
		expected time.Time
		ok       bool
	}{
		{"first date in the future", dates, day(2025, time.January, 1), day(2025, time.January, 6), true},
		{"between dates", dates, day(2025, time.March, 1), day(2025, time.June, 2), true},
		{"same day counts as upcoming", dates, day(2025, time.June, 2), day(2025, time.June, 2), true},
		{"time of day ignored", dates, time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC), day(2025, time.June, 2), true},
		{"all past falls back to last", dates, day(2026, time.January, 1), day(2025, time.December, 1), true},
		{"empty slice", nil, day(2025, time.January, 1), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextUpcoming(tt.dates, tt.today)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
