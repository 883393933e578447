package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики ядра приложения: auth-события, навигация, pipeline загрузки.
var (
	sessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Session change notifications by kind (present/absent).",
		},
		[]string{"kind"},
	)

	roleResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "role_resolutions_total",
			Help: "Role resolver outcomes.",
		},
		[]string{"status"}, // ok | error | stale
	)

	navRedirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nav_redirects_total",
			Help: "Redirects issued by the navigation guard.",
		},
		[]string{"target"},
	)

	submissionSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_steps_total",
			Help: "Update submission pipeline steps by outcome.",
		},
		[]string{"step", "status"},
	)

	submissionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "submission_duration_seconds",
			Help:    "End-to-end update submission latency.",
			Buckets: prometheus.DefBuckets,
		},
	)

	uploadBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upload_bytes_total",
		Help: "Bytes uploaded to object storage.",
	})

	uploadOrphans = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upload_orphans_total",
		Help: "Objects left in storage by submissions that failed after upload.",
	})
)

// Init registers metrics in the default registry.
func Init() {
	prometheus.MustRegister(
		sessionEvents,
		roleResolutions,
		navRedirects,
		submissionSteps,
		submissionDuration,
		uploadBytes,
		uploadOrphans,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SessionEvent counts a session change notification.
func SessionEvent(kind string) { sessionEvents.WithLabelValues(kind).Inc() }

// RoleResolution counts a resolver outcome.
func RoleResolution(status string) { roleResolutions.WithLabelValues(status).Inc() }

// NavRedirect counts a redirect issued by the guard.
func NavRedirect(target string) { navRedirects.WithLabelValues(target).Inc() }

// SubmissionStep counts a pipeline step outcome.
func SubmissionStep(step, status string) { submissionSteps.WithLabelValues(step, status).Inc() }

// ObserveSubmission records the latency of a finished submission.
func ObserveSubmission(seconds float64) { submissionDuration.Observe(seconds) }

// UploadedBytes counts bytes durably stored.
func UploadedBytes(n int) { uploadBytes.Add(float64(n)) }

// UploadOrphans counts objects orphaned by an aborted submission.
func UploadOrphans(n int) { uploadOrphans.Add(float64(n)) }
