package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractText_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}}},
			{Content: nil},
		},
	}

	if got := extractText(resp); got != "Hello, world" {
		t.Errorf("Expected %q, got %q", "Hello, world", got)
	}
}

func TestTokensUsed(t *testing.T) {
	withUsage := &genai.GenerateContentResponse{UsageMetadata: &genai.UsageMetadata{TotalTokenCount: 512}}
	if got := tokensUsed(withUsage, 10); got != 512 {
		t.Errorf("Expected provider count 512, got %d", got)
	}

	withoutUsage := &genai.GenerateContentResponse{}
	if got := tokensUsed(withoutUsage, 10); got != 10 {
		t.Errorf("Expected word-count fallback 10, got %d", got)
	}
}
