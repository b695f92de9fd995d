package metrics

import (
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exporterFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract_emulator",
		Subsystem: "exporter",
		Name:      "flush_total",
		Help:      "Count of export batch flushes.",
	}, []string{"network", "status"})

	exporterFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contract_emulator",
		Subsystem: "exporter",
		Name:      "flush_duration_seconds",
		Help:      "Duration of an export batch flush.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	exporterFlushBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contract_emulator",
		Subsystem: "exporter",
		Name:      "flush_blocks",
		Help:      "Number of blocks written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"network"})
)

// Exporter tracks metrics for the block exporter.
type Exporter struct {
	network model.Network
}

// NewExporter constructs an Exporter collector for network.
func NewExporter(network model.Network) *Exporter {
	if network == "" {
		network = "unknown"
	}
	return &Exporter{network: network}
}

// ObserveFlush records a flush of buffered blocks.
func (m Exporter) ObserveFlush(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	exporterFlushTotal.WithLabelValues(string(m.network), status).Inc()
	exporterFlushDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	exporterFlushBlocks.WithLabelValues(string(m.network)).Observe(float64(blocks))
}
