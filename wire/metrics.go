package wire

import (
	"sync"

	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusWireMessagesFramed     *prometheus.CounterVec
	prometheusWireMessageSize        prometheus.Histogram
	prometheusWireEncodeErrors       *prometheus.CounterVec
	prometheusWireSecureAllocations  prometheus.Counter
	prometheusWireSecureReleases     prometheus.Counter
	prometheusWireBuildersReleased   prometheus.Counter
	prometheusMetricsInitializedOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitializedOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusWireMessagesFramed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wire",
			Name:      "messages_framed",
			Help:      "Number of messages framed, by command",
		},
		[]string{"command"},
	)

	prometheusWireMessageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wire",
			Name:      "message_size_bytes",
			Help:      "Size of framed messages including the 24 byte header",
			Buckets:   []float64{32, 64, 128, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304},
		},
	)

	prometheusWireEncodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wire",
			Name:      "encode_errors",
			Help:      "Number of rejected append operations, by error kind",
		},
		[]string{"kind"},
	)

	prometheusWireSecureAllocations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wire",
			Name:      "secure_allocations",
			Help:      "Number of buffers handed out by the scrubbing allocator",
		},
	)

	prometheusWireSecureReleases = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wire",
			Name:      "secure_releases",
			Help:      "Number of buffers zeroed by the scrubbing allocator",
		},
	)

	prometheusWireBuildersReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wire",
			Name:      "builders_released",
			Help:      "Number of builders released by their owner",
		},
	)
}

func recordEncodeError(err error) {
	var tErr *errors.Error
	if !errors.As(err, &tErr) {
		prometheusWireEncodeErrors.WithLabelValues("unknown").Inc()
		return
	}

	prometheusWireEncodeErrors.WithLabelValues(tErr.Code().Enum()).Inc()
}
