// Package bootstrap turns a Config into wired services for the binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/400brands/brand-doctor/internal/application"
	appbrand "github.com/400brands/brand-doctor/internal/application/brand"
	appleads "github.com/400brands/brand-doctor/internal/application/leads"
	appregistry "github.com/400brands/brand-doctor/internal/application/registry"
	appwaitlist "github.com/400brands/brand-doctor/internal/application/waitlist"
	"github.com/400brands/brand-doctor/internal/config"
	domai "github.com/400brands/brand-doctor/internal/domain/ai"
	"github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/domain/waitlist"
	"github.com/400brands/brand-doctor/internal/infra/ai/anthropic"
	"github.com/400brands/brand-doctor/internal/infra/ai/openai"
	"github.com/400brands/brand-doctor/internal/infra/ai/prompt"
	"github.com/400brands/brand-doctor/internal/infra/cache"
	mysqlp "github.com/400brands/brand-doctor/internal/infra/db/mysql"
	postgresp "github.com/400brands/brand-doctor/internal/infra/db/postgres"
	"github.com/400brands/brand-doctor/internal/infra/db/sqlite"
	"github.com/400brands/brand-doctor/internal/infra/geo"
	"github.com/400brands/brand-doctor/internal/infra/search"
	"github.com/400brands/brand-doctor/internal/infra/storage"
	"github.com/400brands/brand-doctor/internal/infra/webhook"
	"github.com/400brands/brand-doctor/internal/middleware"
)

// NewLogger builds the root logger from the log section.
func NewLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if cfg.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "brand-doctor").Logger()
}

// App holds the wired use cases plus everything that needs closing.
type App struct {
	Brand    *appbrand.Service
	Waitlist *appwaitlist.Service
	Leads    *appleads.Service
	Registry *appregistry.Service
	Health   map[string]middleware.HealthChecker

	closers []func() error
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build wires every adapter the config enables. Optional integrations with
// missing settings are skipped and logged; the database is required.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := zerolog.Ctx(ctx)
	app := &App{Health: map[string]middleware.HealthChecker{}}
	clock := application.SystemClock{}

	repo, closeDB, err := OpenWaitlist(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeDB)
	app.Health["database"] = middleware.CheckFunc(repo.Ping)
	app.Waitlist = &appwaitlist.Service{Repo: repo, Clock: clock}

	hooks := webhook.NewForm(cfg.Webhooks.AnalysisURL, cfg.Webhooks.PurchaseURL, cfg.Webhooks.Timeout)
	app.Leads = &appleads.Service{Sink: hooks}

	var searcher *search.Google
	if cfg.SearchEnabled() {
		searcher = search.NewGoogle(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.Timeout)
		app.Registry = &appregistry.Service{Client: searcher}
	} else {
		log.Warn().Msg("search credentials not set, registry search and web_search tool disabled")
	}

	svc := &appbrand.Service{
		Locations: geo.NewIPAPI(cfg.Geo.BaseURL, cfg.Geo.Timeout),
		Events:    hooks,
		Prompt:    prompt.Build,
		Clock:     clock,
		Options: brand.Options{
			UseAI:              cfg.Analysis.UseAI,
			RequireIndustry:    cfg.Analysis.RequireIndustry,
			CacheTTL:           cfg.Redis.TTL,
			PaidMetricsVisible: cfg.Analysis.PaidMetricsVisible,
		},
	}
	if cfg.Analysis.UseAI {
		// a nil *search.Google must not become a non-nil interface
		var s domai.Searcher
		if searcher != nil {
			s = searcher
		}
		svc.Analyzer = NewAnalyzer(cfg, s)
	}

	if cfg.Redis.Address != "" {
		rc := cache.NewRedis(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		svc.Cache = rc
		app.Health["redis"] = middleware.CheckFunc(rc.Ping)
		app.closers = append(app.closers, rc.Close)
	}

	if cfg.Minio.Endpoint != "" {
		store, err := storage.New(ctx, cfg.Minio.Endpoint, cfg.Minio.Region, cfg.Minio.BucketName,
			cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		svc.Archive = store
	}

	app.Brand = svc
	return app, nil
}

// NewAnalyzer picks the provider named in ai.provider.
func NewAnalyzer(cfg *config.Config, searcher domai.Searcher) brand.Analyzer {
	switch cfg.AI.Provider {
	case "anthropic":
		return anthropic.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout, searcher)
	default:
		return openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout, searcher)
	}
}

// OpenWaitlist connects the configured driver and applies the schema.
func OpenWaitlist(ctx context.Context, cfg *config.Config) (waitlist.Repository, func() error, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		repo, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		if err := migrate(ctx, db, postgresp.Migrate); err != nil {
			return nil, nil, err
		}
		return postgresp.NewWaitlistRepository(db), db.Close, nil
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		if err := migrate(ctx, db, mysqlp.Migrate); err != nil {
			return nil, nil, err
		}
		return mysqlp.NewWaitlistRepository(db), db.Close, nil
	}
}

func migrate(ctx context.Context, db *sql.DB, fn func(context.Context, *sql.DB) error) error {
	if err := fn(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
