package rp

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/svenschultze/generic-oauth2/pkg/client"
)

const (
	outcomeSuccess = "success"
	outcomeSkipped = "skipped"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oauth2_par_requests_total",
				Help: "Total number of pushed authorization requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oauth2_par_request_duration_seconds",
				Help:    "Pushed authorization request latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if err := registerer.Register(m.requests); err != nil {
		return nil, err
	}
	if err := registerer.Register(m.duration); err != nil {
		registerer.Unregister(m.requests)
		return nil, err
	}
	return m, nil
}

func (m *metrics) skipped() {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcomeSkipped).Inc()
}

func (m *metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	m.requests.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var parErr *client.PARError
	if errors.As(err, &parErr) {
		return parErr.Kind()
	}
	return "unknown"
}
