package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contentgen/internal/models"
	"contentgen/internal/services"
)

type stubContentService struct {
	configured    bool
	result        *services.Generation
	err           error
	lastGenerate  models.GenerateRequest
	lastSummarize models.SummarizeRequest
	calls         int
}

func (s *stubContentService) Configured() bool  { return s.configured }
func (s *stubContentService) ModelName() string { return "stub-model" }

func (s *stubContentService) Generate(ctx context.Context, req models.GenerateRequest) (*services.Generation, error) {
	s.calls++
	s.lastGenerate = req
	return s.result, s.err
}

func (s *stubContentService) Summarize(ctx context.Context, req models.SummarizeRequest) (*services.Generation, error) {
	s.calls++
	s.lastSummarize = req
	return s.result, s.err
}

type stubUsageStore struct {
	totals []models.UsageTotal
	err    error
}

func (s *stubUsageStore) Totals(ctx context.Context) ([]models.UsageTotal, error) {
	return s.totals, s.err
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rr.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		wantStatus string
	}{
		{"configured", true, "healthy"},
		{"not configured", false, "error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewContentHandler(&stubContentService{configured: tc.configured}, nil)
			rr := httptest.NewRecorder()
			h.Health(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rr.Code)
			}
			body := decodeBody(t, rr)
			if body["status"] != tc.wantStatus {
				t.Errorf("Expected status %q, got %v", tc.wantStatus, body["status"])
			}
			if body["api_configured"] != tc.configured {
				t.Errorf("Expected api_configured %v, got %v", tc.configured, body["api_configured"])
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		body       string
		err        error
		wantCode   int
		wantError  string
		wantCalls  int
	}{
		{"not configured", false, `{"content_type":"blog","topic":"Go"}`, nil, http.StatusInternalServerError, "Gemini API not configured. Please set GEMINI_API_KEY.", 0},
		{"missing topic", true, `{"content_type":"blog"}`, nil, http.StatusBadRequest, "Missing required fields: content_type and topic", 0},
		{"missing content type", true, `{"topic":"Go"}`, nil, http.StatusBadRequest, "Missing required fields: content_type and topic", 0},
		{"malformed json", true, `{"content_type":`, nil, http.StatusInternalServerError, "Server error: ", 0},
		{"model failure", true, `{"content_type":"blog","topic":"Go"}`, errors.New("quota exceeded"), http.StatusInternalServerError, "quota exceeded", 1},
		{"success", true, `{"content_type":"blog","topic":"Go"}`, nil, http.StatusOK, "", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubContentService{
				configured: tc.configured,
				err:        tc.err,
				result:     &services.Generation{Text: "A post about Go", TokensUsed: 42},
			}
			h := NewContentHandler(svc, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.Generate(rr, req)

			if rr.Code != tc.wantCode {
				t.Fatalf("Expected %d, got %d (%s)", tc.wantCode, rr.Code, rr.Body.String())
			}
			if svc.calls != tc.wantCalls {
				t.Errorf("Expected %d service calls, got %d", tc.wantCalls, svc.calls)
			}

			body := decodeBody(t, rr)
			if tc.wantError != "" {
				if body["success"] != false {
					t.Errorf("Expected success=false, got %v", body["success"])
				}
				msg, _ := body["error"].(string)
				if !strings.HasPrefix(msg, tc.wantError) {
					t.Errorf("Expected error starting with %q, got %q", tc.wantError, msg)
				}
				return
			}

			if body["success"] != true || body["content"] != "A post about Go" || body["tokens_used"] != float64(42) {
				t.Errorf("unexpected success body: %v", body)
			}
		})
	}
}

func TestGenerate_DefaultsToneAndLength(t *testing.T) {
	svc := &stubContentService{configured: true, result: &services.Generation{Text: "x"}}
	h := NewContentHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"content_type":"email","topic":"launch"}`))
	h.Generate(httptest.NewRecorder(), req)

	if svc.lastGenerate.Tone != models.ToneProfessional || svc.lastGenerate.Length != models.LengthMedium {
		t.Errorf("Expected defaults professional/medium, got %q/%q", svc.lastGenerate.Tone, svc.lastGenerate.Length)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantError string
		wantCalls int
	}{
		{"missing text", `{"summary_type":"brief"}`, http.StatusBadRequest, "Missing required field: text", 0},
		{"too short", `{"text":"` + words(49) + `"}`, http.StatusBadRequest, "Text too short. Please provide at least 50 words.", 0},
		{"exactly fifty", `{"text":"` + words(50) + `"}`, http.StatusOK, "", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubContentService{
				configured: true,
				result:     &services.Generation{Text: "short", TokensUsed: 7, InputWords: 50, OutputWords: 1},
			}
			h := NewContentHandler(svc, nil)

			rr := httptest.NewRecorder()
			h.Summarize(rr, httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(tc.body)))

			if rr.Code != tc.wantCode {
				t.Fatalf("Expected %d, got %d (%s)", tc.wantCode, rr.Code, rr.Body.String())
			}
			if svc.calls != tc.wantCalls {
				t.Errorf("Expected %d service calls, got %d", tc.wantCalls, svc.calls)
			}

			body := decodeBody(t, rr)
			if tc.wantError != "" {
				if body["error"] != tc.wantError {
					t.Errorf("Expected error %q, got %v", tc.wantError, body["error"])
				}
				return
			}

			if body["summary"] != "short" || body["original_length"] != float64(50) || body["summary_length"] != float64(1) {
				t.Errorf("unexpected success body: %v", body)
			}
			if svc.lastSummarize.SummaryType != models.SummaryBrief {
				t.Errorf("Expected default summary_type brief, got %q", svc.lastSummarize.SummaryType)
			}
		})
	}
}

func TestContentTypes(t *testing.T) {
	h := NewContentHandler(&stubContentService{configured: true}, nil)
	rr := httptest.NewRecorder()
	h.ContentTypes(rr, httptest.NewRequest(http.MethodGet, "/api/content-types", nil))

	var resp models.ContentTypesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.ContentTypes) != 7 || len(resp.Tones) != 6 || len(resp.Lengths) != 3 || len(resp.SummaryTypes) != 4 {
		t.Errorf("unexpected catalog sizes: %+v", resp)
	}
	if !strings.Contains(resp.Note, "stub-model") {
		t.Errorf("Expected note to name the model, got %q", resp.Note)
	}
}

func TestUsage(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		h := NewContentHandler(&stubContentService{}, nil)
		rr := httptest.NewRecorder()
		h.Usage(rr, httptest.NewRequest(http.MethodGet, "/api/usage", nil))
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", rr.Code)
		}
	})

	t.Run("totals", func(t *testing.T) {
		store := &stubUsageStore{totals: []models.UsageTotal{{Kind: models.KindGenerate, Requests: 3, TokensUsed: 120}}}
		h := NewContentHandler(&stubContentService{}, store)
		rr := httptest.NewRecorder()
		h.Usage(rr, httptest.NewRequest(http.MethodGet, "/api/usage", nil))

		var resp models.UsageResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Success || len(resp.Usage) != 1 || resp.Usage[0].TokensUsed != 120 {
			t.Errorf("unexpected usage response: %+v", resp)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		h := NewContentHandler(&stubContentService{}, &stubUsageStore{err: errors.New("db down")})
		rr := httptest.NewRecorder()
		h.Usage(rr, httptest.NewRequest(http.MethodGet, "/api/usage", nil))
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rr.Code)
		}
	})
}
