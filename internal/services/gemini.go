package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"contentgen/internal/models"
	"contentgen/internal/textutil"
)

// Generation is the raw outcome of one model call.
type Generation struct {
	Text        string
	TokensUsed  int
	InputWords  int
	OutputWords int
}

// TextGenerator is the model behind the generate and summarize endpoints.
type TextGenerator interface {
	GenerateContent(ctx context.Context, req models.GenerateRequest) (*Generation, error)
	Summarize(ctx context.Context, req models.SummarizeRequest) (*Generation, error)
	ModelName() string
}

var ErrEmptyResponse = errors.New("model returned no text")

type GeminiService struct {
	client         *genai.Client
	contentModel   *genai.GenerativeModel
	summaryModel   *genai.GenerativeModel
	modelName      string
	rateChan       chan struct{} // Token bucket
	acquireTimeout time.Duration
}

func NewGeminiService(apiKey, modelName string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Creative writing runs warmer than summarization
	contentModel := client.GenerativeModel(modelName)
	contentModel.SetTemperature(0.8)
	contentModel.SetTopP(0.95)

	summaryModel := client.GenerativeModel(modelName)
	summaryModel.SetTemperature(0.3)
	summaryModel.SetTopP(0.95)

	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:         client,
		contentModel:   contentModel,
		summaryModel:   summaryModel,
		modelName:      modelName,
		rateChan:       rateChan,
		acquireTimeout: 2 * time.Minute,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) ModelName() string {
	return s.modelName
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.acquireTimeout):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

func (s *GeminiService) GenerateContent(ctx context.Context, req models.GenerateRequest) (*Generation, error) {
	prompt := buildContentPrompt(req)
	return s.call(ctx, s.contentModel, prompt, textutil.WordCount(req.Topic))
}

func (s *GeminiService) Summarize(ctx context.Context, req models.SummarizeRequest) (*Generation, error) {
	prompt := buildSummaryPrompt(req)
	return s.call(ctx, s.summaryModel, prompt, textutil.WordCount(req.Text))
}

func (s *GeminiService) call(ctx context.Context, model *genai.GenerativeModel, prompt string, inputWords int) (*Generation, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Warn().Int("candidate", i).Str("finish_reason", cand.FinishReason.String()).Msg("Gemini stopped early")
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	outputWords := textutil.WordCount(text)
	return &Generation{
		Text:        text,
		TokensUsed:  tokensUsed(resp, outputWords),
		InputWords:  inputWords,
		OutputWords: outputWords,
	}, nil
}

// tokensUsed prefers the provider's accounting and falls back to the output
// word count when no usage metadata is returned.
func tokensUsed(resp *genai.GenerateContentResponse, outputWords int) int {
	if resp.UsageMetadata != nil && resp.UsageMetadata.TotalTokenCount > 0 {
		return int(resp.UsageMetadata.TotalTokenCount)
	}
	return outputWords
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
