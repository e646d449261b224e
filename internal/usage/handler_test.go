package usage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/shared/telemetry"
)

type failingStore struct{}

func (failingStore) Add(ctx context.Context, date string, tokens int) (int, error) {
	return 0, errors.New("down")
}

func (failingStore) Get(ctx context.Context, date string) (int, error) {
	return 0, errors.New("down")
}

func serveUsage(svc *Service) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/usage", nil))
	return resp
}

func TestGetUsage(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	svc := NewService(NewMemoryStore(), 500)
	svc.Now = fixedNow
	if _, err := svc.Track(context.Background(), 12); err != nil {
		t.Fatalf("Track: %v", err)
	}

	resp := serveUsage(svc)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var daily Daily
	if err := json.Unmarshal(resp.Body.Bytes(), &daily); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if daily != (Daily{Date: "2024-05-10", Tokens: 12, WarnThreshold: 500}) {
		t.Fatalf("unexpected body %+v", daily)
	}
}

func TestGetUsageStoreFailure(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	resp := serveUsage(NewService(failingStore{}, 0))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
