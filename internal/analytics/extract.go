package analytics

import (
	"encoding/json"
	"fmt"
)

// ProviderPayload is the subset of an analytics response read here.
type ProviderPayload struct {
	Data    []map[string]any `json:"data"`
	Metrics map[string]any   `json:"metrics"`
	Flat    map[string]any   `json:"-"`
}

// DecodePayload parses a provider analytics response.
func DecodePayload(raw json.RawMessage) (ProviderPayload, error) {
	var p ProviderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ProviderPayload{}, fmt.Errorf("decode analytics payload: %w", err)
	}
	if err := json.Unmarshal(raw, &p.Flat); err != nil {
		return ProviderPayload{}, fmt.Errorf("decode analytics payload: %w", err)
	}
	return p, nil
}

// Days converts the payload's data rows into daily records. Rows without a
// nested metrics object are treated as the metrics themselves.
func (p ProviderPayload) Days() []DailyRecord {
	out := make([]DailyRecord, 0, len(p.Data))
	for _, row := range p.Data {
		if nested, ok := row["metrics"].(map[string]any); ok {
			out = append(out, DailyRecord{Metrics: nested})
			continue
		}
		out = append(out, DailyRecord{Metrics: row})
	}
	return out
}

// Totals sums the payload. Row data wins, then a top-level metrics object, then top-level fields.
func (p ProviderPayload) Totals() Totals {
	if len(p.Data) > 0 {
		return Sum(p.Days())
	}
	if p.Metrics != nil {
		return Sum([]DailyRecord{{Metrics: p.Metrics}})
	}
	return Sum([]DailyRecord{{Metrics: p.Flat}})
}

// StatsMap flattens totals into the key set used by CompareQuarters.
func (t Totals) StatsMap() map[string]any {
	return map[string]any{
		FieldImpressions: t.Impressions,
		FieldLikes:       t.Likes,
		FieldComments:    t.Comments,
		FieldShares:      t.Shares,
	}
}

// QuarterStats is the per-quarter summary served to dashboards.
type QuarterStats struct {
	Quarter        string  `json:"quarter"`
	Impressions    float64 `json:"impressions"`
	Likes          float64 `json:"likes"`
	Comments       float64 `json:"comments"`
	Shares         float64 `json:"shares"`
	EngagementRate float64 `json:"engagement_rate"`
}

// NewQuarterStats builds the summary for a quarter label.
func NewQuarterStats(quarter string, t Totals) QuarterStats {
	return QuarterStats{
		Quarter:        quarter,
		Impressions:    t.Impressions,
		Likes:          t.Likes,
		Comments:       t.Comments,
		Shares:         t.Shares,
		EngagementRate: EngagementRate(t.Likes, t.Comments, t.Shares, t.Impressions),
	}
}
