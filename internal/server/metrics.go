package server

import "github.com/prometheus/client_golang/prometheus"

var (
	connectionAcceptedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "connections_accepted_total",
			Help:      "Counter of accepted client connections.",
		})

	connectionGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "connections",
			Help:      "Number of live client connections.",
		})

	connectionClosedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "connections_closed_total",
			Help:      "Counter of closed client connections by reason.",
		}, []string{"reason"})

	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "command",
			Name:      "total",
			Help:      "Counter of executed commands by name and status.",
		}, []string{"command", "status"})

	writeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "command",
			Name:      "writes_total",
			Help:      "Counter of successful commands that modify the store.",
		})

	keysGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pollredis",
			Subsystem: "store",
			Name:      "keys",
			Help:      "Number of keys in the store.",
		})

	bytesReadCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "read_bytes_total",
			Help:      "Counter of bytes received from clients.",
		})

	bytesWrittenCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "written_bytes_total",
			Help:      "Counter of bytes sent to clients.",
		})

	pollWaitHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pollredis",
			Subsystem: "server",
			Name:      "poll_wait_seconds",
			Help:      "Bucketed histogram of time blocked in the readiness wait.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		})
)

func init() {
	prometheus.MustRegister(connectionAcceptedCounter)
	prometheus.MustRegister(connectionGauge)
	prometheus.MustRegister(connectionClosedCounter)
	prometheus.MustRegister(commandCounter)
	prometheus.MustRegister(writeCounter)
	prometheus.MustRegister(keysGauge)
	prometheus.MustRegister(bytesReadCounter)
	prometheus.MustRegister(bytesWrittenCounter)
	prometheus.MustRegister(pollWaitHistogram)
}
