package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// namespace prefixes every series this service exports, e.g. lending_http_requests_total.
const namespace = "lending"

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LendingMetrics struct {
	OriginationsTotal *prometheus.CounterVec
	TransitionsTotal  *prometheus.CounterVec
	PaymentsTotal     *prometheus.CounterVec
	PricingLookups    *prometheus.CounterVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Requests served by the lending API, by route template and status.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Lending API request latency, by route template and status.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Lending API requests currently being served.",
			},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Repository query latency by query name and outcome.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Lending = LendingMetrics{
		OriginationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "loan",
				Name:      "originations_total",
				Help:      "Loan origination attempts by loan type and outcome.",
			},
			[]string{"loan_type", "outcome"},
		),
		TransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "loan",
				Name:      "transitions_total",
				Help:      "Loan lifecycle operations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "loan",
				Name:      "monthly_payments_total",
				Help:      "Monthly payment applications by outcome.",
			},
			[]string{"outcome"},
		),
		PricingLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pricing",
				Name:      "lookups_total",
				Help:      "Car price oracle lookups by source and outcome.",
			},
			[]string{"source", "outcome"},
		),
	}
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTP.RequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordOrigination(loanType, outcome string) {
	Lending.OriginationsTotal.WithLabelValues(loanType, outcome).Inc()
}

func RecordTransition(operation, outcome string) {
	Lending.TransitionsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordPayment(outcome string) {
	Lending.PaymentsTotal.WithLabelValues(outcome).Inc()
}

func RecordPricingLookup(source, outcome string) {
	Lending.PricingLookups.WithLabelValues(source, outcome).Inc()
}
