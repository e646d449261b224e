package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Provider fetches raw analytics from the upstream API.
type Provider interface {
	CustomerID(ctx context.Context) (string, error)
	Profiles(ctx context.Context) (json.RawMessage, error)
	ProfileStats(ctx context.Context, profileID, start, end string) (json.RawMessage, error)
}

// ErrProviderNotConfigured is returned when no provider credential is available.
var ErrProviderNotConfigured = errors.New("analytics provider not configured: SPROUT_API_KEY is required")

// Service wraps the provider with aggregation helpers.
type Service struct {
	Provider Provider
	Now      func() time.Time
}

// NewService constructs a Service. A nil provider makes every call fail with ErrProviderNotConfigured.
func NewService(p Provider) *Service {
	return &Service{Provider: p, Now: time.Now}
}

func (s *Service) provider() (Provider, error) {
	if s == nil || s.Provider == nil {
		return nil, ErrProviderNotConfigured
	}
	return s.Provider, nil
}

// CustomerID resolves the account's customer id.
func (s *Service) CustomerID(ctx context.Context) (string, error) {
	p, err := s.provider()
	if err != nil {
		return "", err
	}
	return p.CustomerID(ctx)
}

// Profiles lists profiles known to the provider.
func (s *Service) Profiles(ctx context.Context) (json.RawMessage, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	return p.Profiles(ctx)
}

// ProfileStats returns the raw provider payload for a date range.
func (s *Service) ProfileStats(ctx context.Context, profileID, start, end string) (json.RawMessage, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	return p.ProfileStats(ctx, profileID, start, end)
}

// RangeTotals fetches a date range and sums its metrics.
func (s *Service) RangeTotals(ctx context.Context, profileID string, r DateRange) (ProviderPayload, error) {
	raw, err := s.ProfileStats(ctx, profileID, r.StartString(), r.EndString())
	if err != nil {
		return ProviderPayload{}, err
	}
	return DecodePayload(raw)
}

// QuarterStats fetches one calendar quarter and summarises it.
func (s *Service) QuarterStats(ctx context.Context, profileID, quarter string) (QuarterStats, error) {
	r, err := QuarterRange(quarter)
	if err != nil {
		return QuarterStats{}, err
	}
	payload, err := s.RangeTotals(ctx, profileID, r)
	if err != nil {
		return QuarterStats{}, err
	}
	return NewQuarterStats(quarter, payload.Totals()), nil
}

// TrailingComparison is the previous-vs-current window report.
type TrailingComparison struct {
	Previous   DateRange                  `json:"-"`
	Current    DateRange                  `json:"-"`
	Comparison map[string]ComparisonEntry `json:"comparison"`
	Periods    Periods                    `json:"periods"`
}

// CompareTrailing fetches the previous and current windows of the given length and compares them.
func (s *Service) CompareTrailing(ctx context.Context, profileID string, days int) (TrailingComparison, error) {
	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}
	prevRange, curRange := TrailingRanges(now(), days)
	prev, err := s.RangeTotals(ctx, profileID, prevRange)
	if err != nil {
		return TrailingComparison{}, err
	}
	cur, err := s.RangeTotals(ctx, profileID, curRange)
	if err != nil {
		return TrailingComparison{}, err
	}
	return TrailingComparison{
		Previous:   prevRange,
		Current:    curRange,
		Comparison: CompareQuarters(prev.Totals().StatsMap(), cur.Totals().StatsMap()),
		Periods:    Periods{Q1: prev.Days(), Q2: cur.Days()},
	}, nil
}
