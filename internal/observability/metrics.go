package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Handshake outcomes used as the "outcome" label.
const (
	OutcomeSuccess  = "success"
	OutcomeTimeout  = "timeout"
	OutcomeDial     = "dial_error"
	OutcomeIO       = "io_error"
	OutcomeDecode   = "decode_error"
	OutcomeCallback = "callback_error"
	OutcomeCanceled = "canceled"
)

// Directions used as the "direction" label.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

var (
	registerOnce sync.Once

	// Kept off the default registry so textfile exports only carry
	// handshake series.
	registry = prometheus.NewRegistry()

	handshakeAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ergoshake",
			Subsystem: "handshake",
			Name:      "attempts_total",
			Help:      "Handshake attempts by outcome.",
		},
		[]string{"outcome"},
	)
	handshakeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ergoshake",
			Subsystem: "handshake",
			Name:      "duration_seconds",
			Help:      "Connect, write and read time of one handshake in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
	wireBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ergoshake",
			Subsystem: "wire",
			Name:      "bytes_total",
			Help:      "Handshake bytes written and read.",
		},
		[]string{"direction"},
	)
	peerInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ergoshake",
			Subsystem: "peer",
			Name:      "info",
			Help:      "Identity declared by the last peer that replied.",
		},
		[]string{"addr", "agent", "version"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(handshakeAttempts, handshakeDuration, wireBytes, peerInfo)
	})
}

// Gatherer exposes the handshake registry.
func Gatherer() prometheus.Gatherer {
	RegisterMetrics()
	return registry
}

func RecordHandshake(outcome string, duration time.Duration) {
	RegisterMetrics()
	handshakeAttempts.WithLabelValues(outcome).Inc()
	handshakeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordBytes(direction string, n int) {
	RegisterMetrics()
	if n <= 0 {
		return
	}
	wireBytes.WithLabelValues(direction).Add(float64(n))
}

func RecordPeer(addr, agent, version string) {
	RegisterMetrics()
	peerInfo.Reset()
	peerInfo.WithLabelValues(addr, agent, version).Set(1)
}

// WriteTextfile dumps the handshake series in the node_exporter textfile
// format. The write is atomic.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Gatherer())
}
