package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"contentgen/internal/models"
	"contentgen/internal/textutil"
)

const (
	MsgGenerated          = "Content generated successfully!"
	MsgSummarized         = "Text summarized successfully!"
	MsgGenerateTransport  = "Failed to generate content. Please check your API configuration."
	MsgSummarizeTransport = "Failed to summarize text. Please check your API configuration."
	MsgTextTooShort       = "Text must be at least 50 words long"
	MsgHealthWarning      = "Warning: Cannot connect to API. Please start the backend server."
	msgUnknownAPIError    = "unknown error"
)

// API is the subset of the backend client the controller needs.
type API interface {
	Health(ctx context.Context) (map[string]any, error)
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
	Summarize(ctx context.Context, req models.SummarizeRequest) (*models.SummarizeResponse, error)
}

// Controller turns a user intent into exactly one backend call and its outcome
// into presenter updates. Each form allows a single request in flight; the
// two forms are independent.
type Controller struct {
	api       API
	presenter Presenter
	timeout   time.Duration
	logger    zerolog.Logger

	generating  atomic.Bool
	summarizing atomic.Bool
}

type Option func(*Controller)

// WithTimeout bounds every backend call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func New(api API, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		presenter: presenter,
		timeout:   60 * time.Second,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Generate(ctx context.Context, req models.GenerateRequest) error {
	if !c.generating.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.generating.Store(false)

	c.presenter.SetBusy(FormGenerate, true)
	defer c.presenter.SetBusy(FormGenerate, false)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Generate(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Str("form", string(FormGenerate)).Msg("generate request failed")
		c.presenter.Notify(MsgGenerateTransport, KindError)
		return asTransportError("POST /generate", err)
	}

	if !resp.Success {
		return c.apiFailure(resp.Error)
	}

	c.presenter.ShowContent(GenerateResult{
		Content:    deref(resp.Content),
		TokensUsed: deref(resp.TokensUsed),
	})
	c.presenter.Notify(MsgGenerated, KindSuccess)
	return nil
}

func (c *Controller) Summarize(ctx context.Context, req models.SummarizeRequest) error {
	if !textutil.LongEnoughToSummarize(req.Text) {
		c.presenter.Notify(MsgTextTooShort, KindError)
		return &ValidationError{Message: MsgTextTooShort}
	}

	if !c.summarizing.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.summarizing.Store(false)

	c.presenter.SetBusy(FormSummarize, true)
	defer c.presenter.SetBusy(FormSummarize, false)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Summarize(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Str("form", string(FormSummarize)).Msg("summarize request failed")
		c.presenter.Notify(MsgSummarizeTransport, KindError)
		return asTransportError("POST /summarize", err)
	}

	if !resp.Success {
		return c.apiFailure(resp.Error)
	}

	c.presenter.ShowSummary(SummaryResult{
		Summary:        deref(resp.Summary),
		OriginalLength: deref(resp.OriginalLength),
		SummaryLength:  deref(resp.SummaryLength),
		TokensUsed:     deref(resp.TokensUsed),
	})
	c.presenter.Notify(MsgSummarized, KindSuccess)
	return nil
}

// CheckHealth queries the backend once. A failure only produces a warning;
// it never blocks Generate or Summarize.
func (c *Controller) CheckHealth(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	status, err := c.api.Health(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("API health check failed, make sure the backend is running")
		c.presenter.Notify(MsgHealthWarning, KindWarning)
		return asTransportError("GET /health", err)
	}

	c.logger.Debug().Interface("status", status).Msg("API status")
	return nil
}

// StartHealthCheck runs CheckHealth on its own goroutine. The returned channel
// is closed once the check has finished.
func (c *Controller) StartHealthCheck(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.CheckHealth(ctx)
	}()
	return done
}

func (c *Controller) apiFailure(message string) error {
	if message == "" {
		message = msgUnknownAPIError
	}
	c.presenter.Notify("Error: "+message, KindError)
	return &APIError{Message: message}
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func asTransportError(op string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	return &TransportError{Op: op, Err: err}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
