package models

type SummarizeRequest struct {
	Text        string `json:"text"`
	SummaryType string `json:"summary_type"`
}

type SummarizeResponse struct {
	Success        bool    `json:"success"`
	Summary        *string `json:"summary,omitempty"`
	OriginalLength *int    `json:"original_length,omitempty"`
	SummaryLength  *int    `json:"summary_length,omitempty"`
	Model          string  `json:"model,omitempty"`
	TokensUsed     *int    `json:"tokens_used,omitempty"`
	Error          string  `json:"error,omitempty"`
}
