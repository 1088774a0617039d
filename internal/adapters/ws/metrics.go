package ws

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	subscribers prometheus.Gauge
	published   prometheus.Counter
	dropped     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotation",
			Subsystem: "realtime",
			Name:      "subscribers",
			Help:      "Number of open WebSocket subscribers.",
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotation",
			Subsystem: "realtime",
			Name:      "published_total",
			Help:      "Events handed to the hub for broadcast.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotation",
			Subsystem: "realtime",
			Name:      "dropped_total",
			Help:      "Per-subscriber deliveries dropped because the send queue was full.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.subscribers, m.published, m.dropped)
	}

	return m
}
