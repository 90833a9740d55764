package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"contentgen/internal/metrics"
	"contentgen/internal/models"
)

var ErrNotConfigured = errors.New("Gemini API not configured. Please set GEMINI_API_KEY.")

// UsageRecorder persists one row per model call.
type UsageRecorder interface {
	Record(ctx context.Context, e *models.UsageEntry) error
}

// ContentService sits between the HTTP handlers and the model. Summaries are
// deterministic enough to reuse: they go through the response cache and
// identical in-flight requests are coalesced. Generation always reaches the
// model so a repeated click yields fresh content. Cache and recorder are
// optional.
type ContentService struct {
	generator   TextGenerator
	cache       ResponseCache
	usage       UsageRecorder
	group       singleflight.Group
	callTimeout time.Duration
}

func NewContentService(generator TextGenerator, cache ResponseCache, usage UsageRecorder) *ContentService {
	return &ContentService{
		generator:   generator,
		cache:       cache,
		usage:       usage,
		callTimeout: 2 * time.Minute,
	}
}

func (s *ContentService) Configured() bool {
	return s.generator != nil
}

func (s *ContentService) ModelName() string {
	if s.generator == nil {
		return ""
	}
	return s.generator.ModelName()
}

func (s *ContentService) Generate(ctx context.Context, req models.GenerateRequest) (*Generation, error) {
	if s.generator == nil {
		return nil, ErrNotConfigured
	}
	g, err := s.call(ctx, models.KindGenerate, func(ctx context.Context) (*Generation, error) {
		return s.generator.GenerateContent(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	s.record(ctx, models.KindGenerate, req.ContentType, g)
	return g, nil
}

func (s *ContentService) Summarize(ctx context.Context, req models.SummarizeRequest) (*Generation, error) {
	if s.generator == nil {
		return nil, ErrNotConfigured
	}
	key := cacheKey(models.KindSummarize, req.Text, req.SummaryType)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("kind", models.KindSummarize).Msg("response cache unavailable")
		}
		if ok {
			metrics.CacheLookupsTotal.WithLabelValues(models.KindSummarize, "hit").Inc()
			return cached, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues(models.KindSummarize, "miss").Inc()
	}

	// The shared call outlives any single caller: it runs detached from the
	// first request's cancellation, bounded by callTimeout, and each caller
	// stops waiting when its own context ends.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.callTimeout)
		defer cancel()

		g, err := s.call(callCtx, models.KindSummarize, func(ctx context.Context) (*Generation, error) {
			return s.generator.Summarize(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(callCtx, key, g); err != nil {
				log.Warn().Err(err).Str("kind", models.KindSummarize).Msg("failed to cache result")
			}
		}
		s.record(callCtx, models.KindSummarize, req.SummaryType, g)
		return g, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debug().Str("kind", models.KindSummarize).Msg("coalesced identical request")
		}
		return res.Val.(*Generation), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// call invokes the model once and updates the model metrics.
func (s *ContentService) call(ctx context.Context, kind string, fn func(context.Context) (*Generation, error)) (*Generation, error) {
	start := time.Now()
	g, err := fn(ctx)
	metrics.ModelCallDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	metrics.ModelCallsTotal.WithLabelValues(kind, "ok").Inc()
	metrics.TokensUsedTotal.WithLabelValues(kind).Add(float64(g.TokensUsed))
	return g, nil
}

func (s *ContentService) record(ctx context.Context, kind, variant string, g *Generation) {
	if s.usage == nil {
		return
	}
	entry := &models.UsageEntry{
		ID:          uuid.New(),
		Kind:        kind,
		Variant:     variant,
		TokensUsed:  g.TokensUsed,
		InputWords:  g.InputWords,
		OutputWords: g.OutputWords,
	}
	if err := s.usage.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("failed to record usage")
	}
}
