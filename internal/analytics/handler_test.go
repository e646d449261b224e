package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/shared/telemetry"
)

type fakeProvider struct {
	customerID string
	err        error
	stats      map[string]string
	calls      []string
}

func (f *fakeProvider) CustomerID(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "customer")
	return f.customerID, f.err
}

func (f *fakeProvider) Profiles(ctx context.Context) (json.RawMessage, error) {
	f.calls = append(f.calls, "profiles")
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"profiles":[{"id":"1","name":"Acme"}]}`), nil
}

func (f *fakeProvider) ProfileStats(ctx context.Context, profileID, start, end string) (json.RawMessage, error) {
	f.calls = append(f.calls, "stats "+profileID+" "+start+" "+end)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.stats[start]), nil
}

func newTestRouter(p Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(p)).RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCustomerEndpoint(t *testing.T) {
	r := newTestRouter(&fakeProvider{customerID: "cust-9"})
	resp := doJSON(r, http.MethodGet, "/customer", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != `{"customer_id":"cust-9"}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestProviderErrorsAreBadRequests(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	r := newTestRouter(&fakeProvider{err: errors.New("API Error: 401 - nope")})
	for _, path := range []string{"/customer", "/profiles"} {
		resp := doJSON(r, http.MethodGet, path, "")
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.Code)
		}
		var payload map[string]any
		_ = json.Unmarshal(resp.Body.Bytes(), &payload)
		if payload["detail"] != "API Error: 401 - nope" {
			t.Fatalf("%s: unexpected detail %v", path, payload["detail"])
		}
	}
}

func TestMissingProviderIsBadRequest(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	r := newTestRouter(nil)
	resp := doJSON(r, http.MethodGet, "/profiles", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProfileStatsPassesThroughPayload(t *testing.T) {
	p := &fakeProvider{stats: map[string]string{"2024-01-01": `{"data":[{"metrics":{"likes":1}}]}`}}
	r := newTestRouter(p)
	resp := doJSON(r, http.MethodPost, "/profile_stats", `{"profile_id":"42","start_date":"2024-01-01","end_date":"2024-03-31"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Body.String() != `{"data":[{"metrics":{"likes":1}}]}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if len(p.calls) != 1 || p.calls[0] != "stats 42 2024-01-01 2024-03-31" {
		t.Fatalf("unexpected calls %v", p.calls)
	}
}

func TestProfileStatsValidatesBody(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	p := &fakeProvider{}
	r := newTestRouter(p)
	for _, body := range []string{`{`, `{"profile_id":"42"}`} {
		resp := doJSON(r, http.MethodPost, "/profile_stats", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
	}
	if len(p.calls) != 0 {
		t.Fatalf("expected no provider calls, got %v", p.calls)
	}
}

func TestQuarterStatsEndpoint(t *testing.T) {
	p := &fakeProvider{stats: map[string]string{
		"2024-04-01": `{"data":[{"metrics":{"likes":10,"comments_count":5,"shares_count":5,"impressions":400}}]}`,
	}}
	r := newTestRouter(p)
	resp := doJSON(r, http.MethodPost, "/quarter_stats", `{"profile_id":"42","quarter":"Q2 2024"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var stats QuarterStats
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Quarter != "Q2 2024" || stats.Likes != 10 || stats.EngagementRate != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCompareQuartersEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	resp := doJSON(r, http.MethodPost, "/compare_quarters", `{"stats_q1":{"likes":"100","name":"a"},"stats_q2":{"likes":150,"name":"b"}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got map[string]map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["likes"]["Change"] != float64(50) || got["likes"]["Q1"] != float64(100) {
		t.Fatalf("unexpected likes entry %v", got["likes"])
	}
	if got["name"]["Change"] != "N/A" || got["name"]["Q2"] != "b" {
		t.Fatalf("unexpected name entry %v", got["name"])
	}
}

func TestCompareQuartersEndpointRequiresBothMaps(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	r := newTestRouter(nil)
	resp := doJSON(r, http.MethodPost, "/compare_quarters", `{"stats_q1":{"likes":1}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
