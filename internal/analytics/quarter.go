package analytics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the provider's reporting-period date format.
const DateLayout = "2006-01-02"

// ErrInvalidQuarter is returned for labels not shaped like "Q1 2024".
var ErrInvalidQuarter = errors.New(`invalid quarter format. Use format like "Q1 2024"`)

// DateRange is an inclusive reporting period.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartString formats Start for provider filters.
func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }

// EndString formats End for provider filters.
func (r DateRange) EndString() string { return r.End.Format(DateLayout) }

// QuarterRange maps a label like "Q3 2024" to its first and last calendar day.
func QuarterRange(label string) (DateRange, error) {
	fields := strings.Fields(strings.ToUpper(label))
	if len(fields) != 2 || len(fields[0]) != 2 || fields[0][0] != 'Q' {
		return DateRange{}, ErrInvalidQuarter
	}
	q := int(fields[0][1] - '0')
	if q < 1 || q > 4 {
		return DateRange{}, ErrInvalidQuarter
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil || year <= 0 {
		return DateRange{}, fmt.Errorf("%w: year %q", ErrInvalidQuarter, fields[1])
	}
	start := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return DateRange{Start: start, End: end}, nil
}

// TrailingRanges returns the current window ending at now and the window of equal length before it.
// Both windows share the boundary day.
func TrailingRanges(now time.Time, days int) (previous, current DateRange) {
	if days <= 0 {
		days = 90
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	mid := end.AddDate(0, 0, -days)
	start := mid.AddDate(0, 0, -days)
	return DateRange{Start: start, End: mid}, DateRange{Start: mid, End: end}
}

// EngagementRate is (likes+comments+shares)/impressions*100 rounded to two decimals, 0 without impressions.
func EngagementRate(likes, comments, shares, impressions float64) float64 {
	if impressions <= 0 {
		return 0
	}
	rate := (likes + comments + shares) / impressions * 100
	return math.Round(rate*100) / 100
}
