package metrics

import (
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emulatorForgeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "forge_total",
		Help:      "Count of forge steps.",
	}, []string{"network", "status"})

	emulatorForgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "forge_duration_seconds",
		Help:      "Duration of a forge step.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	emulatorForgeSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "forge_pending_transactions",
		Help:      "Number of pending transactions at the start of a forge step.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	emulatorDispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "dispatch_total",
		Help:      "Count of completed contract invocations by outcome.",
	}, []string{"network", "outcome"})

	emulatorDeferredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "deferred_transactions_total",
		Help:      "Count of transactions deferred because their receiver was asleep.",
	}, []string{"network"})

	emulatorWakeupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "wakeups_total",
		Help:      "Count of sleeping contracts resumed.",
	}, []string{"network", "status"})

	emulatorSleeping = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "contract_emulator",
		Subsystem: "scheduler",
		Name:      "sleeping_contracts",
		Help:      "Number of contracts currently suspended.",
	}, []string{"network"})
)

// Emulator tracks metrics for the forge scheduler.
type Emulator struct {
	network model.Network
}

// NewEmulator constructs an Emulator collector for network.
func NewEmulator(network model.Network) *Emulator {
	if network == "" {
		network = "unknown"
	}
	return &Emulator{network: network}
}

// ObserveForge records the outcome and duration of a forge step.
func (m Emulator) ObserveForge(err error, txs int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	emulatorForgeTotal.WithLabelValues(string(m.network), status).Inc()
	emulatorForgeDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	emulatorForgeSize.WithLabelValues(string(m.network)).Observe(float64(txs))
}

// ObserveDispatch counts a finished invocation.
func (m Emulator) ObserveDispatch(outcome string) {
	emulatorDispatchTotal.WithLabelValues(string(m.network), outcome).Inc()
}

// ObserveDeferred counts transactions moved to the next block.
func (m Emulator) ObserveDeferred(count int) {
	emulatorDeferredTotal.WithLabelValues(string(m.network)).Add(float64(count))
}

// ObserveWakeup counts a resumed contract.
func (m Emulator) ObserveWakeup(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	emulatorWakeupTotal.WithLabelValues(string(m.network), status).Inc()
}

// SetSleeping publishes the number of suspended contracts.
func (m Emulator) SetSleeping(count int) {
	emulatorSleeping.WithLabelValues(string(m.network)).Set(float64(count))
}
