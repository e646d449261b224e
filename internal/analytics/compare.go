package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NotAvailable marks a change that could not be computed.
const NotAvailable = "N/A"

// ComparisonEntry is the before/after view of one stat key.
type ComparisonEntry struct {
	Q1     any `json:"Q1"`
	Q2     any `json:"Q2"`
	Change any `json:"Change"`
}

// CompareQuarters compares two flat stat maps key by key.
//
// Only keys of q1 are visited; keys present only in q2 are not reported.
// When both values coerce to numbers, Change is q2-q1 as float64. Otherwise the
// original values are kept and Change is "N/A".
func CompareQuarters(q1, q2 map[string]any) map[string]ComparisonEntry {
	out := make(map[string]ComparisonEntry, len(q1))
	for key, before := range q1 {
		after, ok := q2[key]
		if !ok {
			out[key] = ComparisonEntry{Q1: before, Q2: nil, Change: NotAvailable}
			continue
		}
		b, okB := toFloat(before)
		a, okA := toFloat(after)
		if !okB || !okA {
			out[key] = ComparisonEntry{Q1: before, Q2: after, Change: NotAvailable}
			continue
		}
		out[key] = ComparisonEntry{Q1: b, Q2: a, Change: a - b}
	}
	return out
}

// toFloat coerces numeric strings and numbers. Other types are not numeric.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
