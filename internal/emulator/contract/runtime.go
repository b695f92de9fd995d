package contract

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"go.uber.org/zap"
)

var (
	// ErrNotInvoked is returned by Sleep outside of a dispatched message.
	ErrNotInvoked = errors.New("contract is not processing a message")
	// ErrRepeatedSleep is returned by a second Sleep in the same invocation.
	ErrRepeatedSleep = errors.New("contract already slept during this invocation")
	// ErrBusy is returned when a message is dispatched to a contract that has
	// not finished its previous one.
	ErrBusy = errors.New("contract is busy")
	// ErrNotSuspended is returned when resuming a contract that is not asleep.
	ErrNotSuspended = errors.New("contract is not suspended")
	// ErrHandshakeTimeout is returned when a contract neither completes nor
	// suspends within the handshake timeout.
	ErrHandshakeTimeout = errors.New("contract handshake timed out")
	// ErrContractPanic wraps a panic raised by contract code.
	ErrContractPanic = errors.New("contract panicked")
)

// State is the lifecycle state of a contract runtime.
type State uint8

const (
	// StateIdle is the state right after creation.
	StateIdle State = iota
	// StateInvoked means a message is being processed.
	StateInvoked
	// StateSuspended means the invocation is parked until its wake timestamp.
	StateSuspended
	// StateCompleted means the last invocation finished.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInvoked:
		return "invoked"
	case StateSuspended:
		return "suspended"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Path tells which entry point finally handled a message.
type Path string

const (
	// PathMethod means the named method ran successfully.
	PathMethod Path = "method"
	// PathDefault means the message was not a method call.
	PathDefault Path = "default"
	// PathFallback means the method call failed and TxReceived ran instead.
	PathFallback Path = "fallback"
	// PathFault means the default entry point panicked.
	PathFault Path = "fault"
)

// Result describes one handshake with an execution unit.
type Result struct {
	// Suspended is set when the unit parked itself instead of completing.
	Suspended bool
	// Path and Fault are set once the invocation completed.
	Path  Path
	Fault error
}

type eventKind uint8

const (
	eventCompleted eventKind = iota
	eventSuspended
)

type unitEvent struct {
	kind   eventKind
	result Result
}

// Runtime is the lifecycle state of a contract bound to an account.
type Runtime struct {
	ref      model.AccountRef
	creator  model.AccountRef
	typeTag  string
	contract Contract
	methods  MethodTable
	env      Env
	logger   *zap.Logger

	activationFee int64
	currentTx     *model.Transaction
	sleepUntil    *model.Timestamp
	running       bool
	state         State
	slept         bool
	inUnit        bool

	// lock is a binary semaphore held for the whole logical invocation,
	// including while the unit is suspended.
	lock   chan struct{}
	wake   chan bool
	events chan unitEvent
}

// Bind attaches a freshly instantiated contract to the receiver of the
// creation transaction and runs its Init hook.
func Bind(inst Instance, creation *model.Transaction, env Env, logger *zap.Logger) (*Runtime, error) {
	if inst.Contract == nil {
		return nil, fmt.Errorf("bind %s: nil contract", inst.Type)
	}
	methods := inst.Methods
	if methods == nil {
		methods = NewMethodTable()
	}

	rt := &Runtime{
		ref:           creation.Receiver,
		creator:       creation.Sender,
		typeTag:       inst.Type,
		contract:      inst.Contract,
		methods:       methods,
		env:           env,
		logger:        logger.With(zap.String("contract", creation.Receiver.Address), zap.String("type", inst.Type)),
		activationFee: creation.ActivationFee,
		currentTx:     creation,
		state:         StateIdle,
		lock:          make(chan struct{}, 1),
		wake:          make(chan bool),
		events:        make(chan unitEvent, 1),
	}
	rt.contract.bind(rt)

	if init, ok := rt.contract.(Initializer); ok {
		if err := protect(init.Init); err != nil {
			return nil, fmt.Errorf("init %s: %w", inst.Type, err)
		}
	}
	return rt, nil
}

// Ref returns the bound account.
func (rt *Runtime) Ref() model.AccountRef { return rt.ref }

// Type returns the contract type tag.
func (rt *Runtime) Type() string { return rt.typeTag }

// Contract returns the contract instance.
func (rt *Runtime) Contract() Contract { return rt.contract }

// ActivationFee returns the minimum amount that triggers a dispatch.
func (rt *Runtime) ActivationFee() int64 { return rt.activationFee }

// CurrentTx returns the last dispatched message.
func (rt *Runtime) CurrentTx() *model.Transaction { return rt.currentTx }

// State returns the lifecycle state.
func (rt *Runtime) State() State { return rt.state }

// Running reports whether an invocation is in progress or suspended.
func (rt *Runtime) Running() bool { return rt.running }

// Sleeping reports whether the contract is suspended.
func (rt *Runtime) Sleeping() bool { return rt.sleepUntil != nil }

// SleepUntil returns the wake timestamp of a suspended contract.
func (rt *Runtime) SleepUntil() (model.Timestamp, bool) {
	if rt.sleepUntil == nil {
		return model.Timestamp{}, false
	}
	return *rt.sleepUntil, true
}

// DueBy reports whether a suspended contract may resume at ts.
func (rt *Runtime) DueBy(ts model.Timestamp) bool {
	return rt.sleepUntil != nil && rt.sleepUntil.LessOrEqual(ts)
}

// Invoke starts a new execution unit for tx and blocks until it completes or
// suspends.
func (rt *Runtime) Invoke(ctx context.Context, tx *model.Transaction, timeout time.Duration) (Result, error) {
	select {
	case rt.lock <- struct{}{}:
	default:
		return Result{}, ErrBusy
	}

	rt.currentTx = tx
	rt.running = true
	rt.slept = false
	rt.state = StateInvoked

	go rt.run(tx)

	return rt.await(ctx, timeout)
}

// Resume wakes a suspended unit and blocks until it completes or suspends.
func (rt *Runtime) Resume(ctx context.Context, timeout time.Duration) (Result, error) {
	if rt.state != StateSuspended {
		return Result{}, ErrNotSuspended
	}
	rt.sleepUntil = nil
	rt.state = StateInvoked

	select {
	case rt.wake <- true:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return rt.await(ctx, timeout)
}

// Terminate unwinds a suspended unit without running the rest of its code.
func (rt *Runtime) Terminate(ctx context.Context, timeout time.Duration) error {
	if rt.state != StateSuspended {
		return nil
	}
	rt.sleepUntil = nil

	select {
	case rt.wake <- false:
	case <-ctx.Done():
		return ctx.Err()
	}

	_, err := rt.await(ctx, timeout)
	return err
}

// NotifyBlockFinished runs the BlockFinished hook on the calling goroutine.
func (rt *Runtime) NotifyBlockFinished() error {
	return protect(rt.contract.BlockFinished)
}

func (rt *Runtime) await(ctx context.Context, timeout time.Duration) (Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-rt.events:
		if ev.kind == eventSuspended {
			return Result{Suspended: true}, nil
		}
		rt.running = false
		rt.state = StateCompleted
		<-rt.lock
		return ev.result, nil
	case <-timer.C:
		return Result{}, fmt.Errorf("%s after %s: %w", rt.ref, timeout, ErrHandshakeTimeout)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (rt *Runtime) run(tx *model.Transaction) {
	res := Result{}
	defer func() {
		rt.inUnit = false
		rt.events <- unitEvent{kind: eventCompleted, result: res}
	}()

	rt.inUnit = true
	res = rt.dispatch(tx)
}

func (rt *Runtime) dispatch(tx *model.Transaction) Result {
	res := Result{Path: PathDefault}

	if call, ok := tx.Payload.Call(); ok {
		var callErr error
		err := protect(func() {
			callErr = rt.methods.invoke(rt.contract, call)
		})
		if err == nil {
			err = callErr
		}
		if err == nil {
			return Result{Path: PathMethod}
		}
		fields := []zap.Field{
			zap.String("method", tx.Payload.String()),
			zap.Stringer("tx", tx.Timestamp),
			zap.Error(err),
		}
		if errors.Is(err, ErrMethodNotFound) {
			fields = append(fields, zap.Strings("known", rt.methods.Signatures()))
		}
		rt.logger.Warn("method call failed, running default entry point", fields...)
		res = Result{Path: PathFallback, Fault: err}
	}

	if err := protect(rt.contract.TxReceived); err != nil {
		rt.logger.Error("contract fault", zap.Stringer("tx", tx.Timestamp), zap.Error(err))
		return Result{Path: PathFault, Fault: err}
	}
	return res
}

func (rt *Runtime) sleep(until model.Timestamp) error {
	if !rt.inUnit {
		return ErrNotInvoked
	}
	if rt.slept {
		rt.logger.Warn("repeated sleep ignored", zap.Stringer("until", until))
		return ErrRepeatedSleep
	}

	rt.slept = true
	rt.sleepUntil = &until
	rt.state = StateSuspended
	rt.events <- unitEvent{kind: eventSuspended}

	if resume := <-rt.wake; !resume {
		runtime.Goexit()
	}
	return nil
}

// protect runs fn and converts a panic into an error.
func protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrContractPanic, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrContractPanic, r)
		}
	}()
	fn()
	return nil
}
