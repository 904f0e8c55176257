package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_applications_submitted_total",
			Help: "Application submissions by outcome",
		},
		[]string{"outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_form_validation_failures_total",
			Help: "Submissions blocked by a missing mandatory field",
		},
		[]string{"field"},
	)

	FieldConfigLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_field_config_loads_total",
			Help: "Profile field configuration loads by source",
		},
		[]string{"source"},
	)

	SubmitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hirely_application_submit_duration_seconds",
			Help:    "Time spent handling an application submission",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_notification_jobs_total",
			Help: "Notification jobs processed by channel and result",
		},
		[]string{"channel", "result"},
	)

	CaptureFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_capture_failures_total",
			Help: "Photo capture failures by error code",
		},
		[]string{"code"},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirely_auth_events_total",
			Help: "Session lifecycle events",
		},
		[]string{"event"},
	)
)

// Handler exposes the default registry on a fiber route
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
