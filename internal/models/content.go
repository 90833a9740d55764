package models

type GenerateRequest struct {
	ContentType string `json:"content_type"`
	Topic       string `json:"topic"`
	Tone        string `json:"tone"`
	Length      string `json:"length"`
}

type GenerateResponse struct {
	Success    bool    `json:"success"`
	Content    *string `json:"content,omitempty"`
	Model      string  `json:"model,omitempty"`
	TokensUsed *int    `json:"tokens_used,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type ContentTypeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ContentTypesResponse struct {
	ContentTypes []ContentTypeOption `json:"content_types"`
	Tones        []string            `json:"tones"`
	Lengths      []string            `json:"lengths"`
	SummaryTypes []string            `json:"summary_types"`
	Note         string              `json:"note,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"` // "healthy" | "error"
	Service       string `json:"service"`
	APIConfigured bool   `json:"api_configured"`
}

// ErrorResponse is the failure half of every API envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// Ptr is a convenience for filling the optional payload fields.
func Ptr[T any](v T) *T {
	return &v
}
