// Package metrics exposes Prometheus collectors for provider operations.
// The demo server serves them on /metrics; library users get them on the
// default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_keeper_sign_requests_total",
		Help: "Transaction signing requests, labeled by outcome.",
	}, []string{"result"})

	signDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "provider_keeper_sign_duration_seconds",
		Help:    "End-to-end duration of Sign calls, including wallet interaction.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_keeper_logins_total",
		Help: "Login attempts, labeled by outcome.",
	}, []string{"result"})
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveSign records one Sign call.
func ObserveSign(start time.Time, err error) {
	signRequests.WithLabelValues(result(err)).Inc()
	signDuration.Observe(time.Since(start).Seconds())
}

// ObserveLogin records one Login call.
func ObserveLogin(err error) {
	logins.WithLabelValues(result(err)).Inc()
}
