package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lms_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
	)
	wsBroadcastsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lms_ws_broadcasts_total",
			Help: "Total number of course broadcasts pushed through the hub.",
		},
	)
	wsDroppedFramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lms_ws_dropped_frames_total",
			Help: "Total number of frames dropped because a client queue was full.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		wsActiveConnections,
		wsBroadcastsTotal,
		wsDroppedFramesTotal,
	)
}
