package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TrackingMetrics bundles the prometheus collectors of the tracking core.
// All helper methods tolerate a nil receiver so usecases can run without
// metrics in tests.
type TrackingMetrics struct {
	ClicksCreatedTotal       prometheus.CounterVec
	TrackingURLsIssuedTotal  prometheus.CounterVec
	LinkAttemptsTotal        prometheus.CounterVec
	ExpiredTagsRemovedTotal  prometheus.Counter
	TransactionsSyncedTotal  prometheus.Counter
	LinkDuration             prometheus.Histogram
	TrackingErrorsTotal      prometheus.CounterVec
}

func NewTrackingMetrics() *TrackingMetrics {
	return &TrackingMetrics{
		ClicksCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redirect_tags_created_total",
				Help: "Redirect tags created, by publisher",
			},
			[]string{"publisher_id"},
		),

		TrackingURLsIssuedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracking_urls_issued_total",
				Help: "Tracking URLs issued, by publisher",
			},
			[]string{"publisher_id"},
		),

		LinkAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_link_attempts_total",
				Help: "Transaction-to-tag link attempts, by result (linked, refused, skipped)",
			},
			[]string{"result"},
		),

		ExpiredTagsRemovedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expired_redirect_tags_removed_total",
				Help: "Redirect tags removed by the expiry cleanup sweep",
			},
		),

		TransactionsSyncedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "partner_transactions_synced_total",
				Help: "Transactions pulled from the GA-Net partner API",
			},
		),

		LinkDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_link_duration_seconds",
				Help:    "Time spent linking one transaction to its redirect tag",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),

		TrackingErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracking_errors_total",
				Help: "Errors in the tracking core, by operation",
			},
			[]string{"operation"},
		),
	}
}

func (m *TrackingMetrics) IncClickCreated(publisherID string) {
	if m == nil {
		return
	}
	m.ClicksCreatedTotal.WithLabelValues(publisherID).Inc()
}

func (m *TrackingMetrics) IncTrackingURLIssued(publisherID string) {
	if m == nil {
		return
	}
	m.TrackingURLsIssuedTotal.WithLabelValues(publisherID).Inc()
}

func (m *TrackingMetrics) IncLinkAttempt(result string) {
	if m == nil {
		return
	}
	m.LinkAttemptsTotal.WithLabelValues(result).Inc()
}

func (m *TrackingMetrics) AddExpiredTagsRemoved(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ExpiredTagsRemovedTotal.Add(float64(n))
}

func (m *TrackingMetrics) AddTransactionsSynced(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TransactionsSyncedTotal.Add(float64(n))
}

func (m *TrackingMetrics) ObserveLinkDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.LinkDuration.Observe(d.Seconds())
}

func (m *TrackingMetrics) IncError(operation string) {
	if m == nil {
		return
	}
	m.TrackingErrorsTotal.WithLabelValues(operation).Inc()
}
