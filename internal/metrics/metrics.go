package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one process. Tests build their own registry.
type Metrics struct {
	registry             *prometheus.Registry
	requests             *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	certificatesRendered *prometheus.CounterVec
	studentsImported     prometheus.Counter
	uploadsReaped        prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certgen_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "certgen_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		certificatesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certgen_certificates_rendered_total",
			Help: "Certificates rendered by template.",
		}, []string{"template"}),
		studentsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "certgen_students_imported_total",
			Help: "Students inserted by bulk upload.",
		}),
		uploadsReaped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "certgen_uploads_reaped_total",
			Help: "Temporary upload files removed by the reaper.",
		}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.certificatesRendered,
		m.studentsImported,
		m.uploadsReaped,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware counts every request under its route pattern, so ids in paths do not
// create new series.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// The methods below accept a nil receiver so callers without metrics need no checks.

func (m *Metrics) CertificatesRendered(template string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.certificatesRendered.WithLabelValues(template).Add(float64(n))
}

func (m *Metrics) StudentsImported(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.studentsImported.Add(float64(n))
}

func (m *Metrics) UploadsReaped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.uploadsReaped.Add(float64(n))
}
