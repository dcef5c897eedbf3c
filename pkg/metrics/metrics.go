package metrics

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "agrocrm_"

	PlanComputed = "computed"
	PlanDeclined = "declined"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	plansTotal        *prometheus.CounterVec
	recordsTotal      *prometheus.CounterVec
	changeEventsTotal *prometheus.CounterVec
	weatherRequests   *prometheus.CounterVec
	weatherLatency    prometheus.Histogram
)

// Init registers the service metrics. A nil db skips the connection-pool gauges.
func Init(db *sql.DB) {
	registerOnce.Do(func() {
		plansTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plans_total",
				Help: "Spray-mix plan computations by result",
			},
			[]string{"result"},
		)
		recordsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_total",
				Help: "Persisted record operations by table and operation",
			},
			[]string{"table", "op"},
		)
		changeEventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "change_events_total",
				Help: "Realtime change events published by table and type",
			},
			[]string{"table", "type"},
		)
		weatherRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "weather_requests_total",
				Help: "Weather provider requests by result",
			},
			[]string{"result"},
		)
		weatherLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "weather_request_seconds",
				Help:    "Weather provider request latency",
				Buckets: prometheus.DefBuckets,
			},
		)

		prometheus.MustRegister(
			plansTotal,
			recordsTotal,
			changeEventsTotal,
			weatherRequests,
			weatherLatency,
		)

		if db != nil {
			registerDBMetrics(db)
		}
	})
}

func registerDBMetrics(db *sql.DB) {
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: metricPrefix + "db_open_connections",
			Help: "Open database connections",
		}, func() float64 { return float64(db.Stats().OpenConnections) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: metricPrefix + "db_in_use_connections",
			Help: "Database connections currently in use",
		}, func() float64 { return float64(db.Stats().InUse) }),
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	Init(nil)
	return promhttp.Handler()
}

// ObservePlan counts one planner invocation.
func ObservePlan(computed bool) {
	Init(nil)
	if computed {
		plansTotal.WithLabelValues(PlanComputed).Inc()
		return
	}
	plansTotal.WithLabelValues(PlanDeclined).Inc()
}

// IncRecord counts a persisted create/update/delete.
func IncRecord(table, op string) {
	Init(nil)
	if table == "" {
		table = "unknown"
	}
	recordsTotal.WithLabelValues(table, op).Inc()
}

func IncChangeEvent(table, typ string) {
	Init(nil)
	changeEventsTotal.WithLabelValues(table, typ).Inc()
}

// ObserveWeather records a provider call.
func ObserveWeather(err error, duration time.Duration) {
	Init(nil)
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	weatherRequests.WithLabelValues(result).Inc()
	weatherLatency.Observe(duration.Seconds())
}

// PlanCount returns the current counter value; used by tests and /health.
func PlanCount(result string) float64 {
	Init(nil)
	return counterValue(plansTotal.WithLabelValues(result))
}
