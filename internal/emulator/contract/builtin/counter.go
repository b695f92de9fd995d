package builtin

import (
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
)

// Counter keeps a running total and the log of calls that changed it.
type Counter struct {
	contract.Base

	count  int64
	calls  []string
	blocks int
}

// CounterMethods is the method table of Counter.
func CounterMethods() contract.MethodTable {
	return contract.NewMethodTable().
		Add("increment", contract.Func0((*Counter).Increment)).
		Add("add", contract.Func1((*Counter).Add)).
		Add("reset", contract.Func0((*Counter).Reset))
}

// TxReceived increments the counter.
func (c *Counter) TxReceived() {
	c.count++
	c.calls = append(c.calls, "default")
}

func (c *Counter) BlockFinished() {
	c.blocks++
}

func (c *Counter) Increment() {
	c.count++
	c.calls = append(c.calls, c.CurrentTx().Payload.String())
}

func (c *Counter) Add(n int64) {
	c.count += n
	c.calls = append(c.calls, c.CurrentTx().Payload.String())
}

func (c *Counter) Reset() {
	c.count = 0
	c.calls = append(c.calls, c.CurrentTx().Payload.String())
}

// Count returns the current total.
func (c *Counter) Count() int64 { return c.count }

// Calls returns the entry points run so far, in order.
func (c *Counter) Calls() []string {
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// BlocksFinished is the number of block finished notifications received.
func (c *Counter) BlocksFinished() int { return c.blocks }
