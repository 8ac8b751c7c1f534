package transport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// categoryNetworkError labels round trips that produced no response.
const categoryNetworkError = "network_error"

// Metrics records management API round trips.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the transport collectors and registers them on reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rabbitadm_transport_requests_total",
				Help: "Total number of management API requests by method and outcome category",
			},
			[]string{"method", "category"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rabbitadm_transport_request_duration_seconds",
				Help:    "Duration of management API round trips",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg != nil {
		if err := reg.Register(m.requests); err != nil {
			return nil, err
		}
		if err := reg.Register(m.duration); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(method, category string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, category).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
