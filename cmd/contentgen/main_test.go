package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "healthy", "service": "fake", "api_configured": true})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["topic"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Missing required fields: content_type and topic"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "content": "Post about " + req["topic"], "tokens_used": 12})
	})
	mux.HandleFunc("/api/summarize", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "summary": "Short.", "original_length": len(strings.Fields(req["text"])),
			"summary_length": 1, "tokens_used": 9,
		})
	})
	mux.HandleFunc("/api/content-types", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content_types": []map[string]string{{"id": "blog", "name": "Blog Post"}},
			"tones":         []string{"casual"},
			"lengths":       []string{"short"},
			"summary_types": []string{"brief"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	if code, _, _ := runCLI(t, ""); code != exitUsage {
		t.Errorf("Expected usage exit code, got %d", code)
	}
	if code, _, stderr := runCLI(t, "", "frobnicate"); code != exitUsage || !strings.Contains(stderr, "unknown command") {
		t.Errorf("unexpected result for unknown command: %d %q", code, stderr)
	}
}

func TestRun_Generate(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, "", "generate", "--api", srv.URL+"/api", "--save", dir, "Go", "generics")
	if code != exitOK {
		t.Fatalf("Expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Post about Go generics") || !strings.Contains(stdout, "Tokens used: 12") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "Content generated successfully!") {
		t.Errorf("Expected success notification, got %q", stderr)
	}

	saved, err := os.ReadFile(filepath.Join(dir, "generated-content.txt"))
	if err != nil || string(saved) != "Post about Go generics" {
		t.Errorf("unexpected saved file %q (%v)", saved, err)
	}
}

func TestRun_GenerateAPIError(t *testing.T) {
	srv := fakeBackend(t)

	code, stdout, stderr := runCLI(t, "", "generate", "--api", srv.URL+"/api")
	if code != exitError {
		t.Fatalf("Expected exit 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("Expected nothing rendered, got %q", stdout)
	}
	if !strings.Contains(stderr, "Error: Missing required fields: content_type and topic") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRun_SummarizeFromStdin(t *testing.T) {
	srv := fakeBackend(t)
	text := strings.TrimSpace(strings.Repeat("lorem ", 60))

	code, stdout, stderr := runCLI(t, text, "summarize", "--api", srv.URL+"/api")
	if code != exitOK {
		t.Fatalf("Expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Original: 60 words") {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRun_SummarizeTooShort(t *testing.T) {
	srv := fakeBackend(t)

	code, stdout, stderr := runCLI(t, "", "summarize", "--api", srv.URL+"/api", "--text", "far too short")
	if code != exitError {
		t.Fatalf("Expected exit 1, got %d", code)
	}
	if stdout != "" || !strings.Contains(stderr, "Text must be at least 50 words long") {
		t.Errorf("unexpected output %q / %q", stdout, stderr)
	}
}

func TestRun_SummarizeMultipleSources(t *testing.T) {
	code, _, stderr := runCLI(t, "", "summarize", "--text", "a", "--file", "b.txt")
	if code != exitError || !strings.Contains(stderr, errMultipleSources.Error()) {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}

func TestRun_HealthAndTypes(t *testing.T) {
	srv := fakeBackend(t)

	code, stdout, _ := runCLI(t, "", "health", "--api", srv.URL+"/api")
	if code != exitOK || !strings.Contains(stdout, "status: healthy") {
		t.Errorf("unexpected health result %d %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "types", "--api", srv.URL+"/api")
	if code != exitOK || !strings.Contains(stdout, "Blog Post") {
		t.Errorf("unexpected types result %d %q", code, stdout)
	}
}

func TestRun_HealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	code, _, stderr := runCLI(t, "", "health", "--api", url+"/api", "--timeout", "2s")
	if code != exitError || !strings.Contains(stderr, "Cannot connect to API") {
		t.Errorf("unexpected result %d %q", code, stderr)
	}
}

func TestRun_HungHealthDoesNotDelayExit(t *testing.T) {
	prev := startupHealthTimeout
	startupHealthTimeout = 100 * time.Millisecond
	t.Cleanup(func() { startupHealthTimeout = prev })

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "content": "fast", "tokens_used": 1})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	start := time.Now()
	code, stdout, stderr := runCLI(t, "", "generate", "--api", srv.URL+"/api", "--timeout", "30s", "--topic", "Go")
	elapsed := time.Since(start)

	if code != exitOK || !strings.Contains(stdout, "fast") {
		t.Fatalf("unexpected result %d %q %q", code, stdout, stderr)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Expected exit shortly after the request, took %v", elapsed)
	}
	if !strings.Contains(stderr, "Cannot connect to API") {
		t.Errorf("Expected the unanswered health check to warn, got %q", stderr)
	}
}

func TestRun_TypesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	t.Cleanup(srv.Close)

	code, _, stderr := runCLI(t, "", "types", "--api", srv.URL+"/api")
	if code != exitError {
		t.Fatalf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, msgTypesFailed) || strings.Contains(stderr, "Cannot connect to API") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
