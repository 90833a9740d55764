package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"contentgen/internal/models"
)

// Client talks to the generation backend. It never retries: a failed call is
// terminal and surfaces as a *TransportError.
type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// TransportError covers everything that is not a structured API answer:
// network failures, timeouts, cancellation and bodies that are not a tagged
// JSON envelope.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	errMissingTag     = errors.New("response is missing the success field")
	errMissingPayload = errors.New("successful response carries no payload")
)

func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return nil, &TransportError{Op: "GET /health", Err: err}
	}

	var status map[string]any
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return nil, &TransportError{Op: "GET /health", Err: fmt.Errorf("decode body (HTTP %d): %w", resp.StatusCode(), err)}
	}
	return status, nil
}

func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	const op = "POST /generate"

	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/generate")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	var out models.GenerateResponse
	if err := decodeEnvelope(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("HTTP %d: %w", resp.StatusCode(), err)}
	}
	if out.Success && out.Content == nil {
		return nil, &TransportError{Op: op, Err: errMissingPayload}
	}
	return &out, nil
}

func (c *Client) Summarize(ctx context.Context, req models.SummarizeRequest) (*models.SummarizeResponse, error) {
	const op = "POST /summarize"

	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/summarize")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	var out models.SummarizeResponse
	if err := decodeEnvelope(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("HTTP %d: %w", resp.StatusCode(), err)}
	}
	if out.Success && out.Summary == nil {
		return nil, &TransportError{Op: op, Err: errMissingPayload}
	}
	return &out, nil
}

func (c *Client) ContentTypes(ctx context.Context) (*models.ContentTypesResponse, error) {
	const op = "GET /content-types"

	resp, err := c.http.R().SetContext(ctx).Get("/content-types")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}

	var out models.ContentTypesResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return &out, nil
}

// decodeEnvelope accepts any HTTP status: API failures arrive as 4xx/5xx with
// a {"success":false,"error":...} body, which is still a structured answer.
func decodeEnvelope(body []byte, out any) error {
	var envelope struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if envelope.Success == nil {
		return errMissingTag
	}
	return json.Unmarshal(body, out)
}
