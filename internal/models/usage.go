package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindGenerate  = "generate"
	KindSummarize = "summarize"
)

// UsageEntry is one model call recorded in the usage log.
type UsageEntry struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`    // "generate" | "summarize"
	Variant     string    `json:"variant"` // content_type or summary_type
	TokensUsed  int       `json:"tokens_used"`
	InputWords  int       `json:"input_words"`
	OutputWords int       `json:"output_words"`
	CreatedAt   time.Time `json:"created_at"`
}

type UsageTotal struct {
	Kind       string `json:"kind"`
	Requests   int64  `json:"requests"`
	TokensUsed int64  `json:"tokens_used"`
}

type UsageResponse struct {
	Success bool         `json:"success"`
	Usage   []UsageTotal `json:"usage"`
}
