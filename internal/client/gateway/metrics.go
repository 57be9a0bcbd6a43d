package gateway

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh outcomes.
const (
	refreshSuccess = "success"
	refreshFailure = "failure"
	refreshSkipped = "skipped"
)

// Metrics counts requests and refresh attempts.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
}

// NewMetrics builds the gateway collectors and registers them on reg when
// it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medbook",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the backend, by method and status code.",
		}, []string{"method", "code"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medbook",
			Subsystem: "gateway",
			Name:      "refresh_total",
			Help:      "Access token refresh attempts, by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Refreshes)
	}
	return m
}

func (m *Metrics) observe(method string, status int) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.Requests.WithLabelValues(method, code).Inc()
}

func (m *Metrics) refresh(outcome string) {
	m.Refreshes.WithLabelValues(outcome).Inc()
}
