package brand

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/400brands/brand-doctor/internal/application"
	"github.com/400brands/brand-doctor/internal/domain/ai"
	domain "github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/metrics"
)

const eventTimeout = 10 * time.Second

// Service runs the brand analysis use case.
// Service is safe for concurrent use.
type Service struct {
	Analyzer  domain.Analyzer
	Locations domain.LocationResolver
	Events    domain.EventSink
	Cache     domain.Cache
	Archive   domain.ReportArchive
	Prompt    func(domain.AnalysisRequest) ai.Prompt
	Clock     application.Clock
	Options   domain.Options
}

// Analyze validates the form input, resolves the caller's location and
// produces a scored analysis. Validation errors are returned before any
// outbound call is made.
func (s *Service) Analyze(ctx context.Context, brandName, industry, clientIP string) (*domain.Analysis, error) {
	req, err := domain.NewAnalysisRequest(brandName, industry, s.Options)
	if err != nil {
		return nil, err
	}
	req.ClientIP = clientIP

	log := zerolog.Ctx(ctx).With().Str("brand", req.BrandName).Str("industry", req.Industry).Logger()

	req.Location = domain.DefaultLocation
	if s.Locations != nil {
		req.Location = s.Locations.Resolve(ctx, clientIP)
	}
	if req.Location.Fallback {
		log.Warn().Msg("location lookup failed, using default location")
	}

	s.logEvent(ctx, req)

	key := req.CacheKey()
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("analysis cache read failed")
		case ok:
			metrics.Analyses.WithLabelValues("cache", "ok").Inc()
			cached.Cached = true
			return cached, nil
		}
	}

	start := time.Now()
	var a *domain.Analysis
	if s.Options.UseAI {
		a, err = s.analyzeWithAI(ctx, req)
		metrics.AnalysisDuration.WithLabelValues(string(domain.SourceAI)).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.Analyses.WithLabelValues(string(domain.SourceAI), "error").Inc()
			log.Error().Err(err).Msg("ai analysis failed")
			return nil, err
		}
	} else {
		a = Heuristic(req, s.Options)
	}
	metrics.Analyses.WithLabelValues(string(a.Source), "ok").Inc()

	a.ID = domain.AnalysisID(uuid.New().String())
	a.CreatedAt = s.now()

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, a, s.Options.CacheTTL); err != nil {
			log.Warn().Err(err).Msg("analysis cache write failed")
		}
	}
	if s.Archive != nil {
		if _, err := s.Archive.Put(ctx, a); err != nil {
			log.Warn().Err(err).Str("id", string(a.ID)).Msg("report archive failed")
		}
	}

	log.Info().Str("id", string(a.ID)).Int("score", a.Score).Str("source", string(a.Source)).Msg("brand analyzed")
	return a, nil
}

func (s *Service) analyzeWithAI(ctx context.Context, req domain.AnalysisRequest) (*domain.Analysis, error) {
	if s.Analyzer == nil || s.Prompt == nil {
		return nil, fmt.Errorf("%w: analyzer not configured", domain.ErrAnalysisFailed)
	}

	reply, err := s.Analyzer.Generate(ctx, s.Prompt(req))
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}

	raw, err := ParseAnalysis(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}
	return Transform(raw, req, s.Options), nil
}

// logEvent posts the request to the event sink without blocking the caller.
func (s *Service) logEvent(ctx context.Context, req domain.AnalysisRequest) {
	if s.Events == nil {
		return
	}
	ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventTimeout)
	go func() {
		defer cancel()
		if err := s.Events.LogAnalysis(ectx, req); err != nil {
			zerolog.Ctx(ectx).Warn().Err(err).Msg("analysis event webhook failed")
		}
	}()
}

// Report loads an archived analysis.
func (s *Service) Report(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	if s.Archive == nil {
		return nil, domain.ErrReportNotFound
	}
	return s.Archive.Get(ctx, id)
}

// Industries returns the selectable industries.
func (s *Service) Industries() []domain.Industry {
	return domain.Industries()
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}
