package usage

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store over the token_usage table.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Add(ctx context.Context, date string, tokens int) (int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx, `
INSERT INTO token_usage (usage_date, tokens, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (usage_date) DO UPDATE SET tokens = token_usage.tokens + EXCLUDED.tokens, updated_at = NOW()
RETURNING tokens`, date, tokens).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *pgStore) Get(ctx context.Context, date string) (int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx, `SELECT tokens FROM token_usage WHERE usage_date = $1`, date).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}
