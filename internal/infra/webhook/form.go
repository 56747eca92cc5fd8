package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/400brands/brand-doctor/internal/domain/brand"
	"github.com/400brands/brand-doctor/internal/domain/leads"
	"github.com/400brands/brand-doctor/internal/metrics"
)

// Form posts application/x-www-form-urlencoded payloads to automation hooks.
// An empty URL disables that hook.
type Form struct {
	AnalysisURL string
	PurchaseURL string
	client      *http.Client
}

func NewForm(analysisURL, purchaseURL string, timeout time.Duration) *Form {
	return &Form{
		AnalysisURL: analysisURL,
		PurchaseURL: purchaseURL,
		client:      &http.Client{Timeout: timeout},
	}
}

// LogAnalysis implements brand.EventSink.
func (f *Form) LogAnalysis(ctx context.Context, req brand.AnalysisRequest) error {
	if f.AnalysisURL == "" {
		return nil
	}
	form := url.Values{}
	form.Set("country_name", req.Location.CountryName)
	form.Set("city", req.Location.City)
	form.Set("brandName", req.BrandName)
	form.Set("industry", req.Industry)
	return f.post(ctx, "analysis", f.AnalysisURL, form)
}

// SubmitPurchase implements leads.Sink.
func (f *Form) SubmitPurchase(ctx context.Context, p leads.PurchaseIntent) error {
	if f.PurchaseURL == "" {
		return fmt.Errorf("purchase webhook not configured")
	}
	form := url.Values{}
	form.Set("fullName", p.FullName)
	form.Set("email", p.Email)
	form.Set("phone", p.Phone)
	form.Set("customInstructions", p.CustomInstructions)
	form.Set("planName", p.PlanName)
	form.Set("price", p.Price)
	form.Set("planTitle", p.PlanTitle)
	return f.post(ctx, "purchase", f.PurchaseURL, form)
}

func (f *Form) post(ctx context.Context, hook, target string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.Webhooks.WithLabelValues(hook, "error").Inc()
		return fmt.Errorf("%s webhook: %w", hook, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.Webhooks.WithLabelValues(hook, "error").Inc()
		return fmt.Errorf("%s webhook returned %d", hook, resp.StatusCode)
	}
	metrics.Webhooks.WithLabelValues(hook, "ok").Inc()
	return nil
}
