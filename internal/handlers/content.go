package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/thedevsaddam/govalidator"

	"contentgen/internal/models"
	"contentgen/internal/services"
	"contentgen/internal/textutil"
)

const serviceName = "Content Gen & Summarization (Gemini)"

// ContentService is the part of services.ContentService the handlers need.
type ContentService interface {
	Configured() bool
	ModelName() string
	Generate(ctx context.Context, req models.GenerateRequest) (*services.Generation, error)
	Summarize(ctx context.Context, req models.SummarizeRequest) (*services.Generation, error)
}

type UsageStore interface {
	Totals(ctx context.Context) ([]models.UsageTotal, error)
}

type ContentHandler struct {
	service ContentService
	usage   UsageStore
}

// NewContentHandler wires the handler; usage may be nil when no database is configured.
func NewContentHandler(service ContentService, usage UsageStore) *ContentHandler {
	return &ContentHandler{service: service, usage: usage}
}

func (h *ContentHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Content Generation & Summarization API (Google Gemini)",
		"model":   h.service.ModelName(),
		"endpoints": map[string]string{
			"/api/generate":      "POST - Generate content",
			"/api/summarize":     "POST - Summarize text",
			"/api/content-types": "GET - Get available content types",
			"/api/health":        "GET - Health check",
			"/api/usage":         "GET - Token usage totals",
		},
		"note": "Requires GEMINI_API_KEY environment variable",
	})
}

func (h *ContentHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.service.Configured() {
		status = "error"
	}
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:        status,
		Service:       serviceName,
		APIConfigured: h.service.Configured(),
	})
}

func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		writeError(w, http.StatusInternalServerError, services.ErrNotConfigured.Error())
		return
	}

	var req models.GenerateRequest
	opts := govalidator.Options{
		Request: r,
		Data:    &req,
		Rules: govalidator.MapData{
			"content_type": []string{"required"},
			"topic":        []string{"required"},
		},
	}
	if e := govalidator.New(opts).ValidateJSON(); len(e) != 0 {
		if msg := e.Get("_error"); msg != "" {
			writeError(w, http.StatusInternalServerError, "Server error: "+msg)
			return
		}
		writeError(w, http.StatusBadRequest, "Missing required fields: content_type and topic")
		return
	}
	if req.Tone == "" {
		req.Tone = models.ToneProfessional
	}
	if req.Length == "" {
		req.Length = models.LengthMedium
	}

	g, err := h.service.Generate(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("content_type", req.ContentType).Msg("content generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateResponse{
		Success:    true,
		Content:    models.Ptr(g.Text),
		Model:      h.service.ModelName(),
		TokensUsed: models.Ptr(g.TokensUsed),
	})
}

func (h *ContentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		writeError(w, http.StatusInternalServerError, services.ErrNotConfigured.Error())
		return
	}

	var req models.SummarizeRequest
	opts := govalidator.Options{
		Request: r,
		Data:    &req,
		Rules: govalidator.MapData{
			"text": []string{"required"},
		},
	}
	if e := govalidator.New(opts).ValidateJSON(); len(e) != 0 {
		if msg := e.Get("_error"); msg != "" {
			writeError(w, http.StatusInternalServerError, "Server error: "+msg)
			return
		}
		writeError(w, http.StatusBadRequest, "Missing required field: text")
		return
	}
	if !textutil.LongEnoughToSummarize(req.Text) {
		writeError(w, http.StatusBadRequest, "Text too short. Please provide at least 50 words.")
		return
	}
	if req.SummaryType == "" {
		req.SummaryType = models.SummaryBrief
	}

	g, err := h.service.Summarize(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("summary_type", req.SummaryType).Msg("summarization failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.SummarizeResponse{
		Success:        true,
		Summary:        models.Ptr(g.Text),
		OriginalLength: models.Ptr(g.InputWords),
		SummaryLength:  models.Ptr(g.OutputWords),
		TokensUsed:     models.Ptr(g.TokensUsed),
		Model:          h.service.ModelName(),
	})
}

func (h *ContentHandler) ContentTypes(w http.ResponseWriter, r *http.Request) {
	note := "Powered by Google Gemini API"
	if name := h.service.ModelName(); name != "" {
		note += " (" + name + ")"
	}
	writeJSON(w, http.StatusOK, models.Catalog(note))
}

func (h *ContentHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if h.usage == nil {
		writeError(w, http.StatusServiceUnavailable, "Usage log not configured. Please set DATABASE_URL.")
		return
	}

	totals, err := h.usage.Totals(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load usage totals")
		writeError(w, http.StatusInternalServerError, "Failed to load usage totals")
		return
	}

	writeJSON(w, http.StatusOK, models.UsageResponse{Success: true, Usage: totals})
}
