package analytics

import (
	"encoding/json"
	"fmt"
	"math"
)

// DailyRecord is one day of provider metrics.
type DailyRecord struct {
	Metrics map[string]any `json:"metrics"`
}

// Periods holds the daily records of the baseline (Q1) and the compared (Q2) period.
type Periods struct {
	Q1 []DailyRecord `json:"Q1"`
	Q2 []DailyRecord `json:"Q2"`
}

// Totals are summed metrics for one period.
type Totals struct {
	Likes       float64 `json:"likes"`
	Comments    float64 `json:"comments"`
	Shares      float64 `json:"shares"`
	Impressions float64 `json:"impressions"`
}

// Percent is a percent change that may be undefined.
type Percent struct {
	Value   float64
	Defined bool
}

// PercentChange returns (after-before)/before*100, undefined when before is not positive.
func PercentChange(before, after float64) Percent {
	if before <= 0 {
		return Percent{}
	}
	v := (after - before) / before * 100
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Percent{}
	}
	return Percent{Value: v, Defined: true}
}

// String renders one decimal with a percent sign, or "N/A".
func (p Percent) String() string {
	if !p.Defined {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", p.Value)
}

// Abs returns the percent with a non-negative value.
func (p Percent) Abs() Percent {
	return Percent{Value: math.Abs(p.Value), Defined: p.Defined}
}

// MarshalJSON renders the formatted string form.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// MetricChange is one metric across both periods.
type MetricChange struct {
	Q1     float64 `json:"q1"`
	Q2     float64 `json:"q2"`
	Change Percent `json:"change"`
}

// Declined reports whether the metric went down.
func (m MetricChange) Declined() bool {
	return m.Q2 < m.Q1
}

// Report is the aggregated comparison of two periods.
type Report struct {
	Likes       MetricChange `json:"likes"`
	Comments    MetricChange `json:"comments"`
	Shares      MetricChange `json:"shares"`
	Impressions MetricChange `json:"impressions"`
}

// Metric field names in provider daily records.
const (
	FieldLikes       = "likes"
	FieldComments    = "comments_count"
	FieldShares      = "shares_count"
	FieldImpressions = "impressions"
)

// Sum totals the daily records. Missing or non-numeric fields count as zero.
func Sum(days []DailyRecord) Totals {
	var t Totals
	for _, day := range days {
		t.Likes += metricValue(day.Metrics, FieldLikes)
		t.Comments += metricValue(day.Metrics, FieldComments)
		t.Shares += metricValue(day.Metrics, FieldShares)
		t.Impressions += metricValue(day.Metrics, FieldImpressions)
	}
	return t
}

// Aggregate sums both periods and computes per-metric percent changes.
func Aggregate(p Periods) Report {
	q1 := Sum(p.Q1)
	q2 := Sum(p.Q2)
	return Report{
		Likes:       metricChange(q1.Likes, q2.Likes),
		Comments:    metricChange(q1.Comments, q2.Comments),
		Shares:      metricChange(q1.Shares, q2.Shares),
		Impressions: metricChange(q1.Impressions, q2.Impressions),
	}
}

func metricChange(before, after float64) MetricChange {
	return MetricChange{Q1: before, Q2: after, Change: PercentChange(before, after)}
}

func metricValue(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	v, ok := toFloat(m[key])
	if !ok {
		return 0
	}
	return v
}
