// Package metrics exposes Prometheus counters for the order intake.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Intake counts submission outcomes by rejection reason.
type Intake struct {
	Accepted *prometheus.CounterVec
	Rejected *prometheus.CounterVec
}

// Rejection reason label values.
const (
	ReasonRateLimited = "rate_limited"
	ReasonInvalid     = "invalid_input"
	ReasonForbidden   = "forbidden"
	ReasonStorage     = "storage_failure"
)

// NewIntake registers the intake counters on reg. Pass a fresh registry in
// tests to avoid duplicate registration.
func NewIntake(reg prometheus.Registerer) *Intake {
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mawasim",
		Subsystem: "orders",
		Name:      "accepted_total",
		Help:      "Orders accepted and persisted.",
	}, []string{"payment_method"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mawasim",
		Subsystem: "orders",
		Name:      "rejected_total",
		Help:      "Order submissions rejected, by reason.",
	}, []string{"reason"})

	reg.MustRegister(accepted, rejected)
	return &Intake{Accepted: accepted, Rejected: rejected}
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
