package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_doctor_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brand_doctor_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"route"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brand_doctor_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_doctor_analyses_total",
			Help: "Brand analyses by source (ai, heuristic, cache) and outcome",
		},
		[]string{"source", "outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brand_doctor_analysis_duration_seconds",
			Help:    "Time spent producing an analysis",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 90, 120},
		},
		[]string{"source"},
	)

	WaitlistSignups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_doctor_waitlist_signups_total",
			Help: "Waitlist signups by outcome (created, duplicate, invalid, error)",
		},
		[]string{"outcome"},
	)

	Leads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_doctor_purchase_leads_total",
			Help: "Purchase intents by outcome",
		},
		[]string{"outcome"},
	)

	Webhooks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_doctor_webhook_posts_total",
			Help: "Outbound webhook posts by hook and outcome",
		},
		[]string{"hook", "outcome"},
	)
)
