package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerMetricsOnce sync.Once

	Reviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_reviews_total",
			Help: "Total review requests by outcome",
		},
		[]string{"outcome"},
	)

	Segmentation = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_segmentation_total",
			Help: "Replies by segmentation result (structured or fallback)",
		},
		[]string{"segmenter", "result"},
	)

	AICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_ai_calls_total",
			Help: "Total AI calls",
		},
		[]string{"provider"},
	)

	AIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_ai_errors_total",
			Help: "Total AI errors",
		},
		[]string{"provider", "kind"},
	)

	AILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wcag_reviewer_ai_latency_seconds",
			Help:    "AI call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	AITokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_ai_tokens_total",
			Help: "Total AI tokens",
		},
		[]string{"provider", "model", "type"},
	)

	AICostUSD = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_ai_cost_usd_total",
			Help: "Total estimated AI cost in USD",
		},
		[]string{"provider", "model"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wcag_reviewer_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func InitMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(Reviews, Segmentation, AICalls, AIErrors, AILatency, AITokens, AICostUSD, RateLimited)
	})
}
