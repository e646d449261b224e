package strategies

import (
	"encoding/json"
	"errors"

	"socialmetrics-backend/internal/analytics"
)

// SetSize is the number of strategies in every result set.
const SetSize = 5

// Strategy is one recommendation.
type Strategy struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Priority           string   `json:"priority"`
	ImplementationTime string   `json:"implementation_time"`
	ExpectedImpact     string   `json:"expected_impact"`
	ActionItems        []string `json:"action_items"`
	MetricsToTrack     []string `json:"metrics_to_track"`
}

// Set is the response envelope for a result set.
type Set struct {
	Strategies []Strategy `json:"strategies"`
}

// Categories in the order used for heuristic assignment.
var Categories = []string{"Content", "Engagement", "Growth", "Analytics", "Community"}

// Priority labels.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Implementation time labels.
const (
	TimeOneToTwoWeeks   = "1-2 weeks"
	TimeTwoToFourWeeks  = "2-4 weeks"
	TimeOneToTwoMonths  = "1-2 months"
	TimeThreePlusMonths = "3+ months"
)

// ReportData is the caller input for strategy generation.
type ReportData struct {
	CustomPrompt string             `json:"custom_prompt,omitempty"`
	OKR          string             `json:"okr,omitempty"`
	Profiles     json.RawMessage    `json:"profiles,omitempty"`
	Data         *analytics.Periods `json:"data,omitempty"`
}

// ErrInvalidRequest wraps malformed generation input.
var ErrInvalidRequest = errors.New("invalid strategy request")

// Source names the path that produced a result set.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
	SourceFallback  Source = "fallback"
)

// Kind classifies an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindDegraded
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindDegraded:
		return "degraded"
	default:
		return "invalid"
	}
}

// Degradation reasons.
const (
	ReasonUnstructuredReply = "unstructured_reply"
	ReasonQuotaExhausted    = "quota_exhausted"
	ReasonModelUnavailable  = "model_unavailable"
)

// Outcome is the typed pipeline result. Strategies always holds SetSize items
// unless Kind is KindInvalid.
type Outcome struct {
	Kind       Kind
	Source     Source
	Strategies []Strategy
	Reason     string
	Err        error
	Attempts   int
}

// Normalize returns exactly SetSize strategies numbered 1..SetSize.
// Missing entries are taken from pad by position; extras are dropped from the end.
// Category, priority and implementation time outside their label sets are
// replaced with the padding entry's value at the same position.
func Normalize(in []Strategy, pad []Strategy) []Strategy {
	out := make([]Strategy, 0, SetSize)
	for _, s := range in {
		if len(out) == SetSize {
			break
		}
		out = append(out, s)
	}
	for len(out) < SetSize {
		out = append(out, padEntry(pad, len(out)))
	}
	for i := range out {
		out[i].ID = i + 1
		out[i] = fillDefaults(out[i], padEntry(pad, i))
	}
	return out
}

func padEntry(pad []Strategy, idx int) Strategy {
	if idx < len(pad) {
		return pad[idx]
	}
	return placeholder(idx + 1)
}

func fillDefaults(s, ref Strategy) Strategy {
	if !oneOf(s.Category, Categories...) {
		s.Category = ref.Category
	}
	if !oneOf(s.Priority, PriorityHigh, PriorityMedium, PriorityLow) {
		s.Priority = ref.Priority
	}
	if !oneOf(s.ImplementationTime, TimeOneToTwoWeeks, TimeTwoToFourWeeks, TimeOneToTwoMonths, TimeThreePlusMonths) {
		s.ImplementationTime = ref.ImplementationTime
	}
	if len(s.ActionItems) == 0 {
		s.ActionItems = append([]string(nil), placeholderActions...)
	}
	if len(s.MetricsToTrack) == 0 {
		s.MetricsToTrack = append([]string(nil), placeholderMetrics...)
	}
	return s
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func cloneStrategies(in []Strategy) []Strategy {
	out := make([]Strategy, len(in))
	for i, s := range in {
		s.ActionItems = append([]string(nil), s.ActionItems...)
		s.MetricsToTrack = append([]string(nil), s.MetricsToTrack...)
		out[i] = s
	}
	return out
}
