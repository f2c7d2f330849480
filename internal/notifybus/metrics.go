package notifybus

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSubscriber exports published events as a prometheus counter labelled by operation.
type MetricsSubscriber struct {
	events *prometheus.CounterVec
}

// NewMetricsSubscriber registers the event counter on reg.
func NewMetricsSubscriber(reg prometheus.Registerer) *MetricsSubscriber {
	return &MetricsSubscriber{
		events: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "minibank",
				Name:      "events_total",
				Help:      "Total number of published bank events",
			},
			[]string{"operation"},
		),
	}
}

// Notify implements Subscriber.
func (s *MetricsSubscriber) Notify(_ context.Context, event string) error {
	s.events.WithLabelValues(Operation(event)).Inc()
	return nil
}
