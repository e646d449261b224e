package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"socialmetrics-backend/internal/llm"
)

func TestTextFromResponseJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"strategies":`), genai.Text(`[]}`)}},
		}},
	}
	got, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("textFromResponse: %v", err)
	}
	if got != `{"strategies":[]}` {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextFromResponseRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil", resp: nil},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{name: "blank text", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := textFromResponse(tt.resp); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestClassifyErrorQuota(t *testing.T) {
	err := classifyError(&googleapi.Error{Code: http.StatusTooManyRequests, Message: "Resource has been exhausted"})
	if !errors.Is(err, llm.ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}

	err = classifyError(errors.New("rpc error: code = ResourceExhausted desc = quota"))
	if !errors.Is(err, llm.ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted for status string, got %v", err)
	}
}

func TestClassifyErrorOther(t *testing.T) {
	err := classifyError(&googleapi.Error{Code: http.StatusBadRequest, Message: "API key not valid"})
	if errors.Is(err, llm.ErrQuotaExhausted) {
		t.Fatalf("did not expect quota classification for %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
