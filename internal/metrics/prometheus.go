// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the dashboard.
var (
	// Calculator.
	PromotionEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promotion_evaluations_total",
			Help: "Total number of promotion checks by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	BulkPromotionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bulk_promotion_size",
			Help:    "Number of subjects per bulk promotion request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1 to 128
		},
	)

	SalaryRatingTotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "salary_rating_total",
			Help:    "Distribution of computed total salary ratings",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		},
	)

	SalaryAFKPenaltiesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salary_afk_penalties_total",
			Help: "Total salary evaluations that applied an AFK penalty",
		},
	)

	// Accounts.
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total register/login/logout attempts",
		},
		[]string{"event", "status"},
	)

	// Licenses.
	LicensesIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licenses_issued_total",
			Help: "Total number of licenses issued",
		},
		[]string{"license_type"},
	)

	LicensesRevokedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licenses_revoked_total",
			Help: "Total number of licenses revoked",
		},
		[]string{"license_type"},
	)

	LicensesExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "licenses_expired_total",
			Help: "Total number of licenses moved to expired by the scheduler",
		},
	)

	// Trainings.
	TrainingsPlannedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trainings_planned_total",
			Help: "Total number of trainings planned",
		},
	)

	TrainingStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_status_changes_total",
			Help: "Total training status transitions by target status",
		},
		[]string{"status"},
	)

	// Collaborators.
	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Outbound webhook log deliveries by status",
		},
		[]string{"status"},
	)

	ProfileLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_lookups_total",
			Help: "Profile API lookups by source and status",
		},
		[]string{"source", "status"},
	)

	// Scheduler.
	SchedulerJobsRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_run_total",
			Help: "Total scheduler job executions",
		},
		[]string{"job", "status"},
	)

	SchedulerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_last_run_timestamp",
			Help: "Unix timestamp of last scheduler run",
		},
	)

	SchedulerJobDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_job_duration_seconds",
			Help:    "Time taken to execute a scheduler job",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
	)
)

// RecordPromotion records one promotion check.
func RecordPromotion(category string, success bool) {
	outcome := "fail"
	if success {
		outcome = "pass"
	}
	PromotionEvaluationsTotal.WithLabelValues(category, outcome).Inc()
}

// RecordPromotionError records a promotion check rejected before evaluation.
func RecordPromotionError(category string) {
	PromotionEvaluationsTotal.WithLabelValues(category, "error").Inc()
}

// ObserveBulkPromotionSize observes the number of subjects in a bulk request.
func ObserveBulkPromotionSize(n int) {
	BulkPromotionSize.Observe(float64(n))
}

// RecordSalaryRating records a computed salary rating.
func RecordSalaryRating(total, penalty int) {
	SalaryRatingTotal.Observe(float64(total))
	if penalty > 0 {
		SalaryAFKPenaltiesTotal.Inc()
	}
}

// RecordAuthEvent records an account event.
func RecordAuthEvent(event, status string) {
	AuthEventsTotal.WithLabelValues(event, status).Inc()
}

// RecordLicenseIssued records an issued license.
func RecordLicenseIssued(licenseType string) {
	LicensesIssuedTotal.WithLabelValues(licenseType).Inc()
}

// RecordLicenseRevoked records a revoked license.
func RecordLicenseRevoked(licenseType string) {
	LicensesRevokedTotal.WithLabelValues(licenseType).Inc()
}

// AddLicensesExpired adds n expired licenses.
func AddLicensesExpired(n int) {
	LicensesExpiredTotal.Add(float64(n))
}

// RecordTrainingPlanned records a planned training.
func RecordTrainingPlanned() {
	TrainingsPlannedTotal.Inc()
}

// RecordTrainingStatus records a training status change.
func RecordTrainingStatus(status string) {
	TrainingStatusChangesTotal.WithLabelValues(status).Inc()
}

// RecordWebhookDelivery records an outbound webhook attempt.
func RecordWebhookDelivery(status string) {
	WebhookDeliveriesTotal.WithLabelValues(status).Inc()
}

// RecordProfileLookup records a profile lookup.
func RecordProfileLookup(source, status string) {
	ProfileLookupsTotal.WithLabelValues(source, status).Inc()
}

// RecordSchedulerJobRun records a scheduler job execution.
func RecordSchedulerJobRun(job, status string) {
	SchedulerJobsRunTotal.WithLabelValues(job, status).Inc()
}

// SetSchedulerLastRun sets the timestamp of the last scheduler run.
func SetSchedulerLastRun() {
	SchedulerLastRunTimestamp.SetToCurrentTime()
}

// ObserveSchedulerJobDuration observes the duration of a scheduler job.
func ObserveSchedulerJobDuration(seconds float64) {
	SchedulerJobDurationSeconds.Observe(seconds)
}
