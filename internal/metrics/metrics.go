// Package metrics provides Prometheus metrics for the dashboard server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devcloud_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devcloud_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Mutation gateway metrics
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devcloud_mutations_total",
			Help: "Mutation gateway operations by outcome (ok, noop, invalid, error)",
		},
		[]string{"operation", "outcome"},
	)

	filesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devcloud_files_total",
			Help: "Number of files and folders in the entity store",
		},
	)

	localDrivesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devcloud_local_drives_total",
			Help: "Number of local drives created this session",
		},
	)

	// AI collaborator metrics
	assistRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devcloud_assist_requests_total",
			Help: "AI collaborator calls by operation and status",
		},
		[]string{"operation", "status"},
	)

	assistRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devcloud_assist_request_duration_seconds",
			Help:    "AI collaborator call duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	// Notifications
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devcloud_notifications_total",
			Help: "Notifications recorded by type",
		},
		[]string{"type"},
	)

	panicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devcloud_http_panics_total",
			Help: "Handler panics recovered by route pattern",
		},
		[]string{"path"},
	)

	notificationSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devcloud_notification_subscribers",
			Help: "Active notification stream subscribers",
		},
	)
)

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPanic counts a recovered handler panic.
func RecordPanic(path string) {
	panicsTotal.WithLabelValues(path).Inc()
}

// RecordMutation records a mutation gateway outcome.
func RecordMutation(operation, outcome string) {
	mutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// SetStoreSize updates the entity store gauges.
func SetStoreSize(files, localDrives int) {
	filesTotal.Set(float64(files))
	localDrivesTotal.Set(float64(localDrives))
}

// RecordAssist records an AI collaborator call.
func RecordAssist(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	assistRequestsTotal.WithLabelValues(operation, status).Inc()
	assistRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordNotification counts a recorded notification.
func RecordNotification(kind string) {
	notificationsTotal.WithLabelValues(kind).Inc()
}

// SetNotificationSubscribers sets the active stream subscriber count.
func SetNotificationSubscribers(n int) {
	notificationSubscribers.Set(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
