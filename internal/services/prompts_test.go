package services

import (
	"strings"
	"testing"

	"contentgen/internal/models"
)

func TestBuildContentPrompt_UsesTemplateToneAndLength(t *testing.T) {
	prompt := buildContentPrompt(models.GenerateRequest{
		ContentType: models.ContentBlog,
		Topic:       "Go generics",
		Tone:        models.ToneCasual,
		Length:      models.LengthLong,
	})

	for _, want := range []string{
		"blog post about: Go generics",
		toneInstructions[models.ToneCasual],
		lengthInstructions[models.LengthLong],
		"Write the complete blog post now:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestBuildContentPrompt_FallsBackToDefaults(t *testing.T) {
	prompt := buildContentPrompt(models.GenerateRequest{
		ContentType: "haiku",
		Topic:       "autumn",
		Tone:        "sarcastic",
		Length:      "epic",
	})

	if !strings.Contains(prompt, "Create high-quality content about: autumn") {
		t.Error("Expected default template for unknown content type")
	}
	if !strings.Contains(prompt, toneInstructions[models.ToneProfessional]) {
		t.Error("Expected professional tone fallback")
	}
	if !strings.Contains(prompt, lengthInstructions[models.LengthMedium]) {
		t.Error("Expected medium length fallback")
	}
}

func TestBuildContentPrompt_SocialSkipsLength(t *testing.T) {
	prompt := buildContentPrompt(models.GenerateRequest{
		ContentType: models.ContentSocial,
		Topic:       "launch day",
		Tone:        models.ToneFriendly,
		Length:      models.LengthShort,
	})

	if strings.Contains(prompt, lengthInstructions[models.LengthShort]) {
		t.Error("social posts must not carry a global length instruction")
	}
}

func TestEveryContentTypeHasTemplate(t *testing.T) {
	for _, ct := range models.ContentTypes {
		if _, ok := contentTemplates[ct.ID]; !ok {
			t.Errorf("missing template for %q", ct.ID)
		}
	}
	for _, st := range models.SummaryTypes {
		if _, ok := summaryInstructions[st]; !ok {
			t.Errorf("missing summary instructions for %q", st)
		}
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	text := strings.Repeat("lorem ", 60)

	bullet := buildSummaryPrompt(models.SummarizeRequest{Text: text, SummaryType: models.SummaryBullet})
	if !strings.Contains(bullet, "•") || !strings.Contains(bullet, text) {
		t.Error("bullet prompt must request bullets and embed the text")
	}

	fallback := buildSummaryPrompt(models.SummarizeRequest{Text: text, SummaryType: "poem"})
	if !strings.Contains(fallback, "Write the brief summary now:") {
		t.Error("Expected brief summary fallback")
	}
}
