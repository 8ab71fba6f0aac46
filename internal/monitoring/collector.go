// Package monitoring exposes Prometheus metrics for evaluations, batch runs
// and the HTTP API.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/leak-calc/internal/model"
)

const namespace = "leakcalc"

// Evaluation kinds.
const (
	KindLeaks    = "leaks"
	KindCockpit  = "cockpit"
	KindExposure = "exposure"
)

// Batch file outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Collector owns every metric the service exports. Metrics register on the
// registry given to NewCollector so tests can use an isolated one.
type Collector struct {
	registry *prometheus.Registry

	Evaluations     *prometheus.CounterVec
	CockpitStatus   *prometheus.CounterVec
	MonthlyLoss     prometheus.Histogram
	LeaksFound      *prometheus.CounterVec
	BatchFiles      *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter
}

// NewCollector creates and registers the metric set on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		Evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of evaluations by kind",
		}, []string{"kind"}),
		CockpitStatus: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cockpit_status_total",
			Help:      "Cockpit evaluations by resulting status",
		}, []string{"status"}),
		MonthlyLoss: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "total_monthly_loss_dollars",
			Help:      "Distribution of total monthly loss per leak evaluation",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
		}),
		LeaksFound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaks_found_total",
			Help:      "Ranked leaks found, by leak type and severity",
		}, []string{"type", "severity"}),
		BatchFiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_files_total",
			Help:      "Batch input files processed, by outcome",
		}, []string{"outcome"}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveLeaks records a completed leak evaluation.
func (c *Collector) ObserveLeaks(r *model.CalculationResult) {
	c.Evaluations.WithLabelValues(KindLeaks).Inc()
	c.MonthlyLoss.Observe(r.TotalMonthlyLoss)
	for _, l := range r.Leaks {
		c.LeaksFound.WithLabelValues(string(l.Type), string(l.Severity)).Inc()
	}
}

// ObserveCockpit records a cockpit evaluation.
func (c *Collector) ObserveCockpit(r model.CockpitResult) {
	c.Evaluations.WithLabelValues(KindCockpit).Inc()
	c.CockpitStatus.WithLabelValues(string(r.Status)).Inc()
}

// ObserveExposure records a raw exposure calculation.
func (c *Collector) ObserveExposure() {
	c.Evaluations.WithLabelValues(KindExposure).Inc()
}

// ObserveBatchFile records one processed batch input. A nil Collector
// records nothing, for CLI runs with no metrics endpoint.
func (c *Collector) ObserveBatchFile(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.BatchFiles.WithLabelValues(OutcomeFailed).Inc()
		return
	}
	c.BatchFiles.WithLabelValues(OutcomeSucceeded).Inc()
}

// Instrument is chi middleware that counts requests and their latency by
// route pattern.
func (c *Collector) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		c.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
