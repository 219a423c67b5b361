// Package metrics объявляет метрики Prometheus портала.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	SubscriptionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "subscriptions_submitted_total",
		Help:      "Wizard submissions by result.",
	}, []string{"result"})

	DocumentsUploaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "documents_uploaded_total",
		Help:      "Vehicle document uploads by result.",
	}, []string{"result"})

	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "subscription_status_changes_total",
		Help:      "Admin status changes by target status.",
	}, []string{"status"})

	ClientRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "client_requests_total",
		Help:      "Client requests created by request type.",
	}, []string{"type"})
)
