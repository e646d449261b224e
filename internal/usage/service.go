package usage

import (
	"context"
	"fmt"
	"time"

	"socialmetrics-backend/internal/shared/telemetry"
)

// Store persists per-date token totals.
type Store interface {
	Add(ctx context.Context, date string, tokens int) (int, error)
	Get(ctx context.Context, date string) (int, error)
}

// Service tracks daily token consumption via an underlying store.
type Service struct {
	store  Store
	warnAt int
	Now    func() time.Time
}

// NewService constructs a Service. A nil store uses memory; warnAt <= 0 uses DefaultWarnTokens.
func NewService(store Store, warnAt int) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	if warnAt <= 0 {
		warnAt = DefaultWarnTokens
	}
	return &Service{store: store, warnAt: warnAt, Now: time.Now}
}

func (s *Service) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Local().Format(DateLayout)
}

// Track adds tokens to today's total and returns the new total.
func (s *Service) Track(ctx context.Context, tokens int) (int, error) {
	if tokens < 0 {
		return 0, ErrNegativeTokens
	}
	date := s.today()
	total, err := s.store.Add(ctx, date, tokens)
	if err != nil {
		return 0, fmt.Errorf("usage track %s: %w", date, err)
	}
	telemetry.Info("usage.daily", map[string]any{"date": date, "tokens": total})
	if total > s.warnAt {
		telemetry.Warn("usage.daily_limit_warning", map[string]any{
			"date":           date,
			"tokens":         total,
			"warn_threshold": s.warnAt,
		})
	}
	return total, nil
}

// Today returns today's total.
func (s *Service) Today(ctx context.Context) (Daily, error) {
	date := s.today()
	total, err := s.store.Get(ctx, date)
	if err != nil {
		return Daily{}, fmt.Errorf("usage get %s: %w", date, err)
	}
	return Daily{Date: date, Tokens: total, WarnThreshold: s.warnAt}, nil
}

// WarnThreshold returns the configured warning threshold.
func (s *Service) WarnThreshold() int {
	return s.warnAt
}
