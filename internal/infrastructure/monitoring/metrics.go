package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	CustomersCreatedTotal   *prometheus.CounterVec
	DuplicatesFlaggedTotal  prometheus.Counter
	OfferStatusChangesTotal *prometheus.CounterVec
	FormLinksIssuedTotal    prometheus.Counter
	FormLinksSubmittedTotal prometheus.Counter
	FormLinksExpiredTotal   prometheus.Counter
}

type MessagingMetrics struct {
	EventsConsumedTotal *prometheus.CounterVec
	EmailsSentTotal     *prometheus.CounterVec
}

type BatchMetrics struct {
	JobRunsTotal    *prometheus.CounterVec
	JobItemsTotal   *prometheus.CounterVec
	JobDurationSecs *prometheus.HistogramVec
}

var (
	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_customers_created_total",
				Help: "Total number of customers created, by source.",
			},
			[]string{"source"},
		),
		DuplicatesFlaggedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_duplicate_matches_flagged_total",
				Help: "Total number of possible duplicate customers reported.",
			},
		),
		OfferStatusChangesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_offer_status_changes_total",
				Help: "Total number of offer status transitions, by target status.",
			},
			[]string{"status"},
		),
		FormLinksIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_form_links_issued_total",
				Help: "Total number of customer form links issued.",
			},
		),
		FormLinksSubmittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_form_links_submitted_total",
				Help: "Total number of customer forms submitted.",
			},
		),
		FormLinksExpiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_form_links_expired_total",
				Help: "Total number of form links expired by the batch job.",
			},
		),
	}

	Messaging = MessagingMetrics{
		EventsConsumedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_events_consumed_total",
				Help: "Total number of events consumed, by routing key and outcome.",
			},
			[]string{"routing_key", "result"},
		),
		EmailsSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_emails_sent_total",
				Help: "Total number of e-mails handed to the provider, by template and outcome.",
			},
			[]string{"template", "result"},
		),
	}

	Batch = BatchMetrics{
		JobRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_batch_job_runs_total",
				Help: "Total number of batch job runs, by job and outcome.",
			},
			[]string{"job", "result"},
		),
		JobItemsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_batch_job_items_total",
				Help: "Total number of items processed by batch jobs.",
			},
			[]string{"job", "result"},
		),
		JobDurationSecs: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crm_batch_job_duration_seconds",
				Help:    "Histogram of batch job durations.",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60, 300},
			},
			[]string{"job"},
		),
	}
)

func RecordCustomerCreated(source string) {
	Business.CustomersCreatedTotal.WithLabelValues(source).Inc()
}

func RecordDuplicatesFlagged(n int) {
	Business.DuplicatesFlaggedTotal.Add(float64(n))
}

func RecordOfferStatusChange(status string) {
	Business.OfferStatusChangesTotal.WithLabelValues(status).Inc()
}

func RecordFormLinkIssued() {
	Business.FormLinksIssuedTotal.Inc()
}

func RecordFormLinkSubmitted() {
	Business.FormLinksSubmittedTotal.Inc()
}

func RecordFormLinksExpired(n int64) {
	Business.FormLinksExpiredTotal.Add(float64(n))
}

func RecordEventConsumed(routingKey, result string) {
	Messaging.EventsConsumedTotal.WithLabelValues(routingKey, result).Inc()
}

func RecordEmailSent(template, result string) {
	Messaging.EmailsSentTotal.WithLabelValues(template, result).Inc()
}

func RecordJobRun(job, result string, seconds float64) {
	Batch.JobRunsTotal.WithLabelValues(job, result).Inc()
	Batch.JobDurationSecs.WithLabelValues(job).Observe(seconds)
}

func RecordJobItems(job, result string, n int) {
	Batch.JobItemsTotal.WithLabelValues(job, result).Add(float64(n))
}
