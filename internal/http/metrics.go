package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "quotes"

// Metrics owns a private registry so tests can build routers repeatedly.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(counter CatalogCounter, logger *slog.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
	)
	if counter != nil {
		m.registry.MustRegister(newCatalogCollector(counter, logger))
	}
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// catalogCollector reports row counts at scrape time.
type catalogCollector struct {
	counter CatalogCounter
	logger  *slog.Logger
	rows    *prometheus.Desc
}

func newCatalogCollector(counter CatalogCounter, logger *slog.Logger) *catalogCollector {
	return &catalogCollector{
		counter: counter,
		logger:  logger,
		rows: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "catalog", "rows"),
			"Rows stored per catalog entity.",
			[]string{"entity"}, nil,
		),
	}
}

func (cc *catalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cc.rows
}

func (cc *catalogCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	counts, err := cc.counter.Counts(ctx)
	if err != nil {
		cc.logger.Warn("failed to collect catalog counts", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(cc.rows, prometheus.GaugeValue, float64(counts.Authors), "author")
	ch <- prometheus.MustNewConstMetric(cc.rows, prometheus.GaugeValue, float64(counts.Quotes), "quote")
	ch <- prometheus.MustNewConstMetric(cc.rows, prometheus.GaugeValue, float64(counts.Tags), "tag")
}
