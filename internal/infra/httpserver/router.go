package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appbrand "github.com/400brands/brand-doctor/internal/application/brand"
	appleads "github.com/400brands/brand-doctor/internal/application/leads"
	appregistry "github.com/400brands/brand-doctor/internal/application/registry"
	appwaitlist "github.com/400brands/brand-doctor/internal/application/waitlist"
	domai "github.com/400brands/brand-doctor/internal/domain/ai"
	"github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/domain/leads"
	"github.com/400brands/brand-doctor/internal/domain/waitlist"
	"github.com/400brands/brand-doctor/internal/infra/report"
	"github.com/400brands/brand-doctor/internal/middleware"
)

const (
	maxBodyBytes = 64 << 10
	genericError = "Something went wrong. Please try again."
)

var errBadBody = errors.New("Invalid request body")

// Deps are the use cases and settings the router serves.
// Registry may be nil when search credentials are not configured.
type Deps struct {
	Brand    *appbrand.Service
	Waitlist *appwaitlist.Service
	Leads    *appleads.Service
	Registry *appregistry.Service

	Logger         zerolog.Logger
	AllowedOrigins []string
	AdminKeys      map[string]string
	TrustedProxies middleware.TrustedProxies
	Limiter        *middleware.RateLimiter
	Health         map[string]middleware.HealthChecker
}

type Router struct {
	d Deps
}

func NewRouter(d Deps) http.Handler {
	r := &Router{d: d}
	mux := chi.NewRouter()

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(middleware.RealIP(d.TrustedProxies))
	mux.Use(chimw.RequestID)
	mux.Use(middleware.RequestLogger(d.Logger))
	mux.Use(middleware.Metrics)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(d.Health))
	mux.Get("/healthz/live", middleware.LivenessHandler)
	mux.Get("/healthz/ready", middleware.ReadinessHandler)
	mux.Handle("/metrics", middleware.MetricsHandler())

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/brand/industries", r.wrap(r.handleIndustries))
		rt.Get("/brand/reports/{id}", r.wrap(r.handleReport))
		rt.Group(func(g chi.Router) {
			if d.Limiter != nil {
				g.Use(d.Limiter.RateLimit)
			}
			g.Post("/brand/analyze", r.wrap(r.handleAnalyze))
		})

		rt.Post("/waitlist", r.wrap(r.handleJoinWaitlist))
		rt.Post("/leads/purchase", r.wrap(r.handlePurchase))

		rt.Group(func(g chi.Router) {
			g.Use(middleware.AdminAuth(d.AdminKeys))
			g.Get("/admin/waitlist", r.wrap(r.handleAdminWaitlist))
		})
	})

	mux.Get("/api/cac-google-search", r.handleRegistrySearch)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			zerolog.Ctx(req.Context()).Error().Err(err).Int("status", status).Msg("request failed")
		}
		writeJSON(w, status, map[string]string{"error": msg})
	}
}

// classify maps a use-case error to a status and a message safe to show.
func classify(err error) (int, string) {
	var ve *brand.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, errBadBody),
		errors.Is(err, waitlist.ErrEmptyEmail),
		errors.Is(err, waitlist.ErrInvalidEmail),
		errors.Is(err, appregistry.ErrNameRequired),
		leads.IsValidation(err):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, waitlist.ErrAlreadyOnWaitlist):
		return http.StatusConflict, waitlist.ErrAlreadyOnWaitlist.Error()
	case errors.Is(err, brand.ErrReportNotFound):
		return http.StatusNotFound, "Report not found"
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "AI quota exceeded, please try again later"
	case errors.Is(err, brand.ErrAnalysisFailed), errors.Is(err, domai.ErrToolLoopExceeded):
		return http.StatusBadGateway, brand.ErrAnalysisFailed.Error()
	default:
		return http.StatusInternalServerError, genericError
	}
}

// rootMessage unwraps to the innermost error so form messages reach the client
// without the wrapping context.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func decode(req *http.Request, w http.ResponseWriter, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /v1/brand/industries
func (r *Router) handleIndustries(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{"industries": r.d.Brand.Industries()})
	return nil
}

// POST /v1/brand/analyze
// Body: {"brandName": "...", "industry": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		BrandName string `json:"brandName"`
		Industry  string `json:"industry"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}

	a, err := r.d.Brand.Analyze(req.Context(),
		middleware.SanitizeString(body.BrandName),
		middleware.SanitizeString(body.Industry),
		middleware.ClientIP(req),
	)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, a)
	return nil
}

// GET /v1/brand/reports/{id}?format=html
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	id := brand.AnalysisID(chi.URLParam(req, "id"))
	a, err := r.d.Brand.Report(req.Context(), id)
	if err != nil {
		return err
	}

	if req.URL.Query().Get("format") == "html" {
		page, err := report.HTML(a)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err = w.Write(page)
		return err
	}
	writeJSON(w, http.StatusOK, a)
	return nil
}

// POST /v1/waitlist
// Body: {"email": "..."}
func (r *Router) handleJoinWaitlist(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}

	e, err := r.d.Waitlist.Join(req.Context(), body.Email)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "You're on the list! We'll let you know when we launch.",
		"entry":   e,
	})
	return nil
}

type adminWaitlistResponse struct {
	*waitlist.Page
	Stats waitlist.Stats `json:"stats"`
}

// GET /v1/admin/waitlist?page=&limit=
func (r *Router) handleAdminWaitlist(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.d.Waitlist.List(req.Context(), middleware.ValidatePage(page), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	st, err := r.d.Waitlist.Stats(req.Context())
	if err != nil {
		return err
	}

	if p, ok := middleware.PrincipalFrom(req.Context()); ok {
		zerolog.Ctx(req.Context()).Debug().Str("admin", p.Name).Int("page", list.Page).Msg("waitlist viewed")
	}
	writeJSON(w, http.StatusOK, adminWaitlistResponse{Page: list, Stats: st})
	return nil
}

// POST /v1/leads/purchase
func (r *Router) handlePurchase(w http.ResponseWriter, req *http.Request) error {
	var body leads.PurchaseIntent
	if err := decode(req, w, &body); err != nil {
		return err
	}
	if err := r.d.Leads.SubmitPurchase(req.Context(), body); err != nil {
		return err
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Purchase request received"})
	return nil
}

// GET /api/cac-google-search?name=
// Keeps its own {success, ...} envelope for the registry lookup page.
func (r *Router) handleRegistrySearch(w http.ResponseWriter, req *http.Request) {
	name := req.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": appregistry.ErrNameRequired.Error()})
		return
	}
	if r.d.Registry == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Search failed"})
		return
	}

	results, err := r.d.Registry.Search(req.Context(), name)
	switch {
	case errors.Is(err, appregistry.ErrNameRequired):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
	case err != nil:
		zerolog.Ctx(req.Context()).Error().Err(err).Str("name", name).Msg("registry search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Search failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
	}
}
