package brand

import (
	"context"
	"time"

	"github.com/400brands/brand-doctor/internal/domain/ai"
)

// LocationResolver never fails; it returns DefaultLocation with Fallback set instead.
type LocationResolver interface {
	Resolve(ctx context.Context, clientIP string) Location
}

// Analyzer generates the raw model reply for a prompt.
type Analyzer interface {
	Generate(ctx context.Context, p ai.Prompt) (string, error)
}

// Cache port for finished analyses.
type Cache interface {
	Get(ctx context.Context, key string) (*Analysis, bool, error)
	Set(ctx context.Context, key string, a *Analysis, ttl time.Duration) error
}

// ReportArchive port for shareable reports.
type ReportArchive interface {
	Put(ctx context.Context, a *Analysis) (string, error)
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
}

// EventSink receives the analysis-request log event.
type EventSink interface {
	LogAnalysis(ctx context.Context, req AnalysisRequest) error
}
