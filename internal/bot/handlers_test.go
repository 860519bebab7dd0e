package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/internal/lastfm"
)

func TestPeriodOrDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		present  bool
		fallback lastfm.Period
		expected lastfm.Period
	}{
		{"valid period wins", "year", true, lastfm.PeriodWeek, lastfm.PeriodYear},
		{"absent uses fallback", "", false, lastfm.PeriodWeek, lastfm.PeriodWeek},
		{"absent uses all-time fallback", "", false, lastfm.PeriodAllTime, lastfm.PeriodAllTime},
		{"unknown value uses fallback", "fortnight", true, lastfm.PeriodAllTime, lastfm.PeriodAllTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, periodOrDefault(tt.raw, tt.present, tt.fallback))
		})
	}
}

func TestTasteDefaultsToAllTime(t *testing.T) {
	t.Parallel()

	// Taste compares whole libraries; a weekly default would shrink the
	// compared maps and skew the overlap percentage.
	assert.Equal(t, lastfm.PeriodAllTime, tasteDefaultPeriod)
}
