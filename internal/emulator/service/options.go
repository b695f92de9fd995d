package service

import "time"

// Option configures an Emulator.
type Option func(*Emulator)

// WithHandshakeTimeout bounds how long the scheduler waits for a contract to
// complete or suspend.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(e *Emulator) {
		if d > 0 {
			e.handshakeTimeout = d
		}
	}
}

// WithMetrics records forge and dispatch metrics.
func WithMetrics(m EmulatorMetrics) Option {
	return func(e *Emulator) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithBlockSink hands every finalized block to sink.
func WithBlockSink(sink BlockSink) Option {
	return func(e *Emulator) {
		e.sink = sink
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveForge(error, int, time.Time) {}
func (nopMetrics) ObserveDispatch(string) {}
func (nopMetrics) ObserveDeferred(int) {}
func (nopMetrics) ObserveWakeup(error) {}
func (nopMetrics) SetSleeping(int) {}
