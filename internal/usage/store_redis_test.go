package usage

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"socialmetrics-backend/internal/shared/telemetry"
)

func newRedisStore(t *testing.T) (*redisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreIncrementsWithTTL(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	store, mr := newRedisStore(t)
	svc := NewService(store, 0)
	svc.Now = fixedNow

	ctx := context.Background()
	if _, err := svc.Track(ctx, 10); err != nil {
		t.Fatalf("Track: %v", err)
	}
	total, err := svc.Track(ctx, 15)
	if err != nil || total != 25 {
		t.Fatalf("Track = %d, %v", total, err)
	}

	got, err := mr.Get("token_usage:2024-05-10")
	if err != nil || got != "25" {
		t.Fatalf("unexpected redis value %q, %v", got, err)
	}
	if mr.TTL("token_usage:2024-05-10") != redisKeyTTL {
		t.Fatalf("expected ttl %s, got %s", redisKeyTTL, mr.TTL("token_usage:2024-05-10"))
	}

	daily, err := svc.Today(ctx)
	if err != nil || daily.Tokens != 25 {
		t.Fatalf("Today = %+v, %v", daily, err)
	}
}

func TestRedisStoreMissingKeyIsZero(t *testing.T) {
	store, _ := newRedisStore(t)
	total, err := store.Get(context.Background(), "2024-01-01")
	if err != nil || total != 0 {
		t.Fatalf("Get = %d, %v", total, err)
	}
}
