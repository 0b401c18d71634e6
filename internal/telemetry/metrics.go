package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	CheckIns      *prometheus.CounterVec
	PointsAwarded prometheus.Counter
	Registrations *prometheus.CounterVec
	Redemptions   *prometheus.CounterVec
	OpDuration    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CheckIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_checkins_total",
			Help: "Check-ins by outcome.",
		}, []string{"result"}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loyalty_points_awarded_total",
			Help: "Points awarded by committed check-ins.",
		}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_registrations_total",
			Help: "Registrations by role and outcome.",
		}, []string{"role", "result"}),
		Redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_redemptions_total",
			Help: "Reward redemptions by outcome.",
		}, []string{"result"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loyalty_operation_duration_seconds",
			Help:    "Latency of service operations including store round trips.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(m.CheckIns, m.PointsAwarded, m.Registrations, m.Redemptions, m.OpDuration)
	return m
}

// Observe records the time elapsed since start under op.
func (m *Metrics) Observe(op string, start time.Time) {
	m.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
