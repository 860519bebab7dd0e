package lastfm

// Period selects the time window for top-list and play-count queries.
// The zero value is not valid; commands without a period option use
// DefaultPeriod, or OverallDefault for whole-library comparisons.
type Period string

const (
	PeriodWeek     Period = "week"
	Period1Month   Period = "month"
	Period3Month   Period = "3month"
	Period6Month   Period = "6month"
	PeriodYear     Period = "year"
	PeriodAllTime  Period = "all"
	DefaultPeriod         = PeriodWeek
	OverallDefault        = PeriodAllTime
)

// apiValues maps the user-facing period names to the values the Last.fm API expects.
var apiValues = map[Period]string{
	PeriodWeek:    "7day",
	Period1Month:  "1month",
	Period3Month:  "3month",
	Period6Month:  "6month",
	PeriodYear:    "12month",
	PeriodAllTime: "overall",
}

// APIValue returns the Last.fm wire value for the period.
// Unknown periods fall back to the weekly window, matching the lenient
// handling of free-form period arguments in commands.
func (p Period) APIValue() string {
	if v, ok := apiValues[p]; ok {
		return v
	}
	return apiValues[PeriodWeek]
}

// ParsePeriod validates a user-supplied period name.
func ParsePeriod(s string) (Period, bool) {
	p := Period(s)
	_, ok := apiValues[p]
	return p, ok
}

// Periods lists all valid periods in display order, for command option choices.
func Periods() []Period {
	return []Period{PeriodWeek, Period1Month, Period3Month, Period6Month, PeriodYear, PeriodAllTime}
}
