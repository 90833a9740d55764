package services

import (
	"fmt"
	"strings"

	"contentgen/internal/models"
)

var lengthInstructions = map[string]string{
	models.LengthShort:  "Write approximately 150-200 words.",
	models.LengthMedium: "Write approximately 400-500 words.",
	models.LengthLong:   "Write approximately 800-1000 words.",
}

var toneInstructions = map[string]string{
	models.ToneProfessional: "Use a professional and authoritative tone.",
	models.ToneCasual:       "Write in a conversational and relaxed manner.",
	models.ToneFriendly:     "Use a warm, approachable, and friendly tone.",
	models.ToneFormal:       "Maintain a formal and academic tone throughout.",
	models.TonePersuasive:   "Use persuasive language to convince and engage readers.",
	models.ToneInformative:  "Focus on providing clear, factual information.",
}

type contentTemplate struct {
	role      string
	task      string
	skipLen   bool // social posts carry their own per-platform lengths
	structure []string
	rules     []string
	closing   string
}

var contentTemplates = map[string]contentTemplate{
	models.ContentBlog: {
		role: "You are an expert content writer.",
		task: "Write a compelling blog post about: %s",
		structure: []string{
			"**Title**: an attention-grabbing, SEO-friendly headline",
			"**Introduction**: hook the reader with an engaging opening (2-3 paragraphs)",
			"**Main Content**: clear subheadings with valuable insights",
			"**Conclusion**: summarize key points and end with a call-to-action",
		},
		rules: []string{
			"Include actionable takeaways",
			"Write in an engaging, readable style",
			"Naturally incorporate relevant keywords",
		},
		closing: "Write the complete blog post now:",
	},
	models.ContentEmail: {
		role: "You are a professional email writer.",
		task: "Compose an email about: %s",
		structure: []string{
			"**Subject Line**: clear, specific, and compelling",
			"**Greeting**: an appropriate greeting",
			"**Opening**: state the purpose in the first sentence",
			"**Body**: short paragraphs of 2-3 sentences",
			"**Call-to-Action**: clear next steps",
			"**Closing**: a professional sign-off",
		},
		rules: []string{
			"Use bullet points for multiple items",
			"Be concise and scannable",
		},
		closing: "Write the complete email now:",
	},
	models.ContentSocial: {
		role:    "You are a social media content strategist.",
		task:    "Create engaging social media posts about: %s",
		skipLen: true,
		structure: []string{
			"**Twitter/X Post** (280 characters max): concise and punchy",
			"**LinkedIn Post** (150-200 words): professional and value-driven",
			"**Instagram Caption** (100-150 words): visual storytelling",
		},
		rules: []string{
			"Open each post with an attention-grabbing line",
			"Include 3-5 relevant hashtags",
			"Use emojis only where they fit the tone",
		},
		closing: "Write all three variations now:",
	},
	models.ContentProduct: {
		role: "You are an expert product copywriter.",
		task: "Write a compelling product description for: %s",
		structure: []string{
			"**Headline**: a captivating product title",
			"**Hook**: a one-sentence value proposition",
			"**Features & Benefits**: bullet points focused on customer benefits",
			"**Why This Product**: the pain points it solves",
			"**Call-to-Action**: a persuasive closing",
		},
		rules: []string{
			"Focus on benefits over features",
			"Be specific and credible",
		},
		closing: "Write the complete product description now:",
	},
	models.ContentArticle: {
		role: "You are an experienced journalist and content writer.",
		task: "Write an in-depth article about: %s",
		structure: []string{
			"**Title**: an informative headline",
			"**Introduction**: a strong hook with a thesis statement",
			"**Main Sections**: 3-5 sections with clear subheadings",
			"**Conclusion**: a summary with key takeaways",
		},
		rules: []string{
			"Use data, examples, or case studies where relevant",
			"Keep a logical flow with transitions between sections",
		},
		closing: "Write the complete article now:",
	},
	models.ContentStory: {
		role: "You are a creative fiction writer.",
		task: "Write an engaging story about: %s",
		structure: []string{
			"**Setup**: characters, setting, and context",
			"**Conflict**: the central problem",
			"**Rising Action**: build tension",
			"**Climax**: the peak of the story",
			"**Resolution**: a satisfying conclusion",
		},
		rules: []string{
			"Use vivid sensory details and dialogue",
			"Deliver a memorable ending",
		},
		closing: "Write the complete story now:",
	},
	models.ContentAd: {
		role: "You are an expert advertising copywriter.",
		task: "Create compelling advertisement copy for: %s",
		structure: []string{
			"**Short-form ad (50-75 words)**: headline, one key benefit, call-to-action",
			"**Long-form ad (150-200 words)**: headline, problem-solution narrative, social proof, urgency, call-to-action",
		},
		rules: []string{
			"Highlight the unique selling proposition",
			"Focus on the customer's transformation",
		},
		closing: "Write both versions now:",
	},
}

var defaultContentTemplate = contentTemplate{
	role: "You are an expert content writer.",
	task: "Create high-quality content about: %s",
	rules: []string{
		"Start with a strong, engaging opening",
		"Structure content logically with clear sections",
		"End with a memorable conclusion",
	},
	closing: "Write the complete content now:",
}

// buildContentPrompt layers role, tone, length, structure and rules. Unknown
// content types, tones and lengths fall back to the defaults.
func buildContentPrompt(req models.GenerateRequest) string {
	tmpl, ok := contentTemplates[req.ContentType]
	if !ok {
		tmpl = defaultContentTemplate
	}

	tone, ok := toneInstructions[req.Tone]
	if !ok {
		tone = toneInstructions[models.ToneProfessional]
	}
	length, ok := lengthInstructions[req.Length]
	if !ok {
		length = lengthInstructions[models.LengthMedium]
	}

	var b strings.Builder

	// Layer 1 — Role and task
	b.WriteString(tmpl.role)
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf(tmpl.task, req.Topic))
	b.WriteString("\n\n")

	// Layer 2 — Tone and length
	b.WriteString(tone)
	b.WriteString("\n")
	if !tmpl.skipLen {
		b.WriteString(length)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Layer 3 — Structure
	if len(tmpl.structure) > 0 {
		b.WriteString("Structure:\n")
		for i, s := range tmpl.structure {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
		b.WriteString("\n")
	}

	// Layer 4 — Guidelines
	if len(tmpl.rules) > 0 {
		b.WriteString("Guidelines:\n")
		for _, r := range tmpl.rules {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(tmpl.closing)
	return b.String()
}

var summaryInstructions = map[string]struct {
	role    string
	rules   []string
	closing string
}{
	models.SummaryBrief: {
		role:    "You are an expert at summarization. Provide a brief, concise summary of the following text.",
		rules:   []string{"Write 2-3 sentences only", "Focus on the main idea and key takeaways", "Leave out unnecessary details"},
		closing: "Write the brief summary now:",
	},
	models.SummaryDetailed: {
		role:    "You are an expert at creating comprehensive summaries. Provide a detailed summary of the following text.",
		rules:   []string{"Cover the main themes and central arguments", "Keep key supporting points, examples, and data", "State the overall conclusions"},
		closing: "Write the detailed summary now:",
	},
	models.SummaryBullet: {
		role:    "You are an expert at creating structured summaries. Summarize the following text as bullet points.",
		rules:   []string{"Use the • symbol for each key point", "One complete idea per bullet", "Order from most to least important"},
		closing: "Write the bullet point summary now:",
	},
	models.SummaryAbstract: {
		role:    "You are an academic writer. Write a formal abstract for the following text.",
		rules:   []string{"Cover background, objective, key points, and conclusion", "Use a formal, objective tone", "Write 150-250 words"},
		closing: "Write the academic abstract now:",
	},
}

func buildSummaryPrompt(req models.SummarizeRequest) string {
	instr, ok := summaryInstructions[req.SummaryType]
	if !ok {
		instr = summaryInstructions[models.SummaryBrief]
	}

	var b strings.Builder
	b.WriteString(instr.role)
	b.WriteString("\n\nRequirements:\n")
	for _, r := range instr.rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}

	b.WriteString("\n---TEXT START---\n")
	b.WriteString(req.Text)
	b.WriteString("\n---TEXT END---\n\n")
	b.WriteString(instr.closing)
	return b.String()
}
