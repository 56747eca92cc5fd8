package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/400brands/brand-doctor/internal/application"
	appbrand "github.com/400brands/brand-doctor/internal/application/brand"
	appleads "github.com/400brands/brand-doctor/internal/application/leads"
	appregistry "github.com/400brands/brand-doctor/internal/application/registry"
	appwaitlist "github.com/400brands/brand-doctor/internal/application/waitlist"
	domai "github.com/400brands/brand-doctor/internal/domain/ai"
	"github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/domain/leads"
	"github.com/400brands/brand-doctor/internal/domain/search"
	"github.com/400brands/brand-doctor/internal/infra/db/sqlite"
	"github.com/400brands/brand-doctor/internal/middleware"
)

type memArchive struct {
	reports map[brand.AnalysisID]*brand.Analysis
}

func (m *memArchive) Put(_ context.Context, a *brand.Analysis) (string, error) {
	m.reports[a.ID] = a
	return "mem://" + string(a.ID), nil
}

func (m *memArchive) Get(_ context.Context, id brand.AnalysisID) (*brand.Analysis, error) {
	a, ok := m.reports[id]
	if !ok {
		return nil, brand.ErrReportNotFound
	}
	return a, nil
}

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Generate(context.Context, domai.Prompt) (string, error) { return "", f.err }

type sinkFunc func(context.Context, leads.PurchaseIntent) error

func (f sinkFunc) SubmitPurchase(ctx context.Context, p leads.PurchaseIntent) error { return f(ctx, p) }

type searchFunc func(ctx context.Context, q string, n int) ([]search.Result, error)

func (f searchFunc) Search(ctx context.Context, q string, n int) ([]search.Result, error) {
	return f(ctx, q, n)
}

type fixture struct {
	handler   http.Handler
	archive   *memArchive
	purchases []leads.PurchaseIntent
	queries   []string
	searchErr error
}

func newFixture(t *testing.T, mutate func(*Deps)) *fixture {
	t.Helper()

	repo, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	clock := application.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	f := &fixture{archive: &memArchive{reports: map[brand.AnalysisID]*brand.Analysis{}}}

	d := Deps{
		Brand: &appbrand.Service{
			Archive: f.archive,
			Clock:   clock,
			Options: brand.Options{RequireIndustry: true},
		},
		Waitlist: &appwaitlist.Service{Repo: repo, Clock: clock},
		Leads: &appleads.Service{Sink: sinkFunc(func(_ context.Context, p leads.PurchaseIntent) error {
			f.purchases = append(f.purchases, p)
			return nil
		})},
		Registry: &appregistry.Service{Client: searchFunc(func(_ context.Context, q string, _ int) ([]search.Result, error) {
			f.queries = append(f.queries, q)
			if f.searchErr != nil {
				return nil, f.searchErr
			}
			return []search.Result{{Title: "KILIMANJARO FOODS LTD", Link: "https://search.cac.gov.ng/x"}}, nil
		})},
		Logger:    zerolog.Nop(),
		AdminKeys: map[string]string{"ops": "admin-key"},
		Limiter:   middleware.NewRateLimiter(2, 1),
		Health:    map[string]middleware.HealthChecker{"database": middleware.CheckFunc(repo.Ping)},
	}
	if mutate != nil {
		mutate(&d)
	}
	f.handler = NewRouter(d)
	return f
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAnalyze_HeuristicAndReport(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/v1/brand/analyze", `{"brandName":"Kilimanjaro","industry":"food"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a brand.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, brand.SourceHeuristic, a.Source)
	assert.Equal(t, "Food & Beverage", a.Industry)
	assert.Equal(t, brand.MedalFor(a.Score), a.Medal)
	assert.Equal(t, "NG", a.Location.CountryCode)
	require.NotEmpty(t, a.ID)

	rec = f.do(http.MethodGet, "/v1/brand/reports/"+string(a.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kilimanjaro", decodeBody(t, rec)["brandName"])

	rec = f.do(http.MethodGet, "/v1/brand/reports/"+string(a.ID)+"?format=html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1>Brand Health Report: Kilimanjaro</h1>")

	rec = f.do(http.MethodGet, "/v1/brand/reports/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Report not found", decodeBody(t, rec)["error"])
}

func TestAnalyze_Validation(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Limiter = nil })

	tests := []struct {
		name string
		body string
		want string
	}{
		{"short name", `{"brandName":"K","industry":"food"}`, "must be at least 2 characters"},
		{"missing industry", `{"brandName":"Kilimanjaro"}`, "industry"},
		{"malformed json", `{"brandName":`, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/v1/brand/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, strings.ToLower(decodeBody(t, rec)["error"].(string)), strings.ToLower(tt.want))
		})
	}
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"quota", domai.ErrQuotaExceeded, http.StatusTooManyRequests, "AI quota exceeded, please try again later"},
		{"provider failure", errors.New("connection reset"), http.StatusBadGateway, brand.ErrAnalysisFailed.Error()},
		{"tool loop", domai.ErrToolLoopExceeded, http.StatusBadGateway, brand.ErrAnalysisFailed.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(d *Deps) {
				d.Brand.Options.UseAI = true
				d.Brand.Analyzer = failingAnalyzer{err: tt.err}
				d.Brand.Prompt = func(brand.AnalysisRequest) domai.Prompt { return domai.Prompt{} }
			})
			rec := f.do(http.MethodPost, "/v1/brand/analyze", `{"brandName":"Kilimanjaro","industry":"food"}`)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decodeBody(t, rec)["error"])
		})
	}
}

func TestAnalyze_RateLimited(t *testing.T) {
	f := newFixture(t, nil)
	body := `{"brandName":"Kilimanjaro","industry":"food"}`

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/brand/analyze", body).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/brand/analyze", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/v1/brand/analyze", body).Code)

	// other routes are not limited
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/brand/industries", "").Code)
}

func TestIndustries(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/v1/brand/industries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody(t, rec)["industries"].([]any)
	assert.Len(t, list, len(brand.Industries()))
}

func TestWaitlist_JoinAndAdmin(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/v1/waitlist", `{"email":"Ada@Example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decodeBody(t, rec)["entry"].(map[string]any)
	assert.Equal(t, "ada@example.com", entry["email"])
	assert.Equal(t, "pending", entry["status"])

	rec = f.do(http.MethodPost, "/v1/waitlist", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "This email is already on our waitlist!", decodeBody(t, rec)["error"])

	rec = f.do(http.MethodPost, "/v1/waitlist", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please enter a valid email address", decodeBody(t, rec)["error"])

	rec = f.do(http.MethodGet, "/v1/admin/waitlist", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/v1/admin/waitlist?limit=10", "", "Authorization", "Bearer admin-key")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.EqualValues(t, 1, out["totalItems"])
	assert.EqualValues(t, 10, out["pageSize"])
	assert.Len(t, out["data"], 1)
	assert.EqualValues(t, 1, out["stats"].(map[string]any)["pending"])
}

func TestPurchase(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/v1/leads/purchase",
		`{"fullName":"Ada Obi","email":"ada@example.com","phone":"+2348000000000","planName":"Growth","price":"$299"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	require.Len(t, f.purchases, 1)
	assert.Equal(t, "Growth", f.purchases[0].PlanName)

	rec = f.do(http.MethodPost, "/v1/leads/purchase", `{"fullName":"Ada Obi","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number is required", decodeBody(t, rec)["error"])
}

func TestPurchase_SinkFailure(t *testing.T) {
	f := newFixture(t, func(d *Deps) {
		d.Leads.Sink = sinkFunc(func(context.Context, leads.PurchaseIntent) error { return errors.New("webhook down") })
	})

	rec := f.do(http.MethodPost, "/v1/leads/purchase",
		`{"fullName":"Ada Obi","email":"ada@example.com","phone":"0800","planTitle":"Starter Launch Package"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, genericError, decodeBody(t, rec)["error"])
}

func TestRegistrySearch(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/api/cac-google-search?name=Kilimanjaro+Foods", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["results"], 1)
	require.Len(t, f.queries, 1)
	assert.Equal(t, `"Kilimanjaro Foods" site:search.cac.gov.ng`, f.queries[0])

	rec = f.do(http.MethodGet, "/api/cac-google-search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing brand name", decodeBody(t, rec)["error"])

	f.searchErr = errors.New("quota")
	rec = f.do(http.MethodGet, "/api/cac-google-search?name=x", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Search failed"}, decodeBody(t, rec))
}

func TestRegistrySearch_NotConfigured(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Registry = nil })

	rec := f.do(http.MethodGet, "/api/cac-google-search?name=x", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = f.do(http.MethodGet, "/api/cac-google-search?name=%20", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Missing brand name"}, decodeBody(t, rec))
}

func TestAnalyze_ForwardedForFromUntrustedPeerIgnored(t *testing.T) {
	f := newFixture(t, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/brand/analyze",
			strings.NewReader(`{"brandName":"Mama Put","industry":"food"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database"`)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz/live", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz/ready", "").Code)

	f.do(http.MethodGet, "/v1/brand/industries", "")
	rec = f.do(http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), `route="/v1/brand/industries"`)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.AllowedOrigins = []string{"https://400brands.com"} })

	rec := f.do(http.MethodOptions, "/v1/brand/analyze", "",
		"Origin", "https://400brands.com",
		"Access-Control-Request-Method", "POST")
	assert.Equal(t, "https://400brands.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
