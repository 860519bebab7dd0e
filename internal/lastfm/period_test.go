package lastfm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scrobblyx/crowned/internal/lastfm"
)

func TestPeriodAPIValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		period   lastfm.Period
		expected string
	}{
		{lastfm.PeriodWeek, "7day"},
		{lastfm.Period1Month, "1month"},
		{lastfm.Period3Month, "3month"},
		{lastfm.Period6Month, "6month"},
		{lastfm.PeriodYear, "12month"},
		{lastfm.PeriodAllTime, "overall"},
		{lastfm.Period("bogus"), "7day"},
		{lastfm.Period(""), "7day"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.period.APIValue())
		})
	}
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	for _, period := range lastfm.Periods() {
		parsed, ok := lastfm.ParsePeriod(string(period))
		assert.True(t, ok)
		assert.Equal(t, period, parsed)
	}

	_, ok := lastfm.ParsePeriod("fortnight")
	assert.False(t, ok)
}
