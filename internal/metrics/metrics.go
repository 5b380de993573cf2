// Package metrics holds the Prometheus collectors of the callback receiver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the receiver collectors. Label values come from configuration, never from payloads.
type Metrics struct {
	Received prometheus.Counter
	Accepted *prometheus.CounterVec
	Rejected *prometheus.CounterVec
	Skipped  prometheus.Counter
	Archived prometheus.Counter
}

// New registers the receiver collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Received: f.NewCounter(prometheus.CounterOpts{Name: "hookctl_callbacks_received_total", Help: "callbacks received"}),
		Accepted: f.NewCounterVec(prometheus.CounterOpts{Name: "hookctl_callbacks_accepted_total", Help: "callbacks accepted"}, []string{"subscription"}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{Name: "hookctl_callbacks_rejected_total", Help: "callbacks rejected"}, []string{"reason"}),
		Skipped:  f.NewCounter(prometheus.CounterOpts{Name: "hookctl_callbacks_skipped_total", Help: "callbacks of unsubscribed types"}),
		Archived: f.NewCounter(prometheus.CounterOpts{Name: "hookctl_callbacks_archived_total", Help: "callbacks archived to S3"}),
	}
}
