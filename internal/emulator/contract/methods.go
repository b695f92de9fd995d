package contract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

var (
	// ErrMethodNotFound is returned when no method matches a call's name and arity.
	ErrMethodNotFound = errors.New("method not found")
	// ErrArgumentType is returned when a call argument does not match the method parameter.
	ErrArgumentType = errors.New("argument type mismatch")
	// ErrReceiverType is returned when a method is called on a contract of another type.
	ErrReceiverType = errors.New("method receiver type mismatch")
)

// Method is one entry of a contract type's method table.
type Method struct {
	arity int
	call  func(c Contract, args []any) error
}

// Arity is the number of positional arguments the method takes.
func (m Method) Arity() int {
	return m.arity
}

type methodKey struct {
	name  string
	arity int
}

// MethodTable maps (name, arity) to the callable methods of a contract type.
// It is built once per type when the type is registered in a Catalog.
type MethodTable map[methodKey]Method

// NewMethodTable returns an empty table.
func NewMethodTable() MethodTable {
	return MethodTable{}
}

// Add registers m under name and returns the table for chaining. A method
// with the same name and arity replaces the previous one.
func (t MethodTable) Add(name string, m Method) MethodTable {
	if m.arity < 0 || m.arity > model.MaxMethodArgs {
		panic(fmt.Sprintf("contract: method %q arity %d out of range", name, m.arity))
	}
	t[methodKey{name: name, arity: m.arity}] = m
	return t
}

// Lookup finds the method for a call descriptor.
func (t MethodTable) Lookup(name string, arity int) (Method, bool) {
	m, ok := t[methodKey{name: name, arity: arity}]
	return m, ok
}

// Signatures lists the registered methods as name/arity, sorted.
func (t MethodTable) Signatures() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, fmt.Sprintf("%s/%d", k.name, k.arity))
	}
	sort.Strings(out)
	return out
}

func (t MethodTable) invoke(c Contract, call model.MethodCall) error {
	m, ok := t.Lookup(call.Method, call.Arity())
	if !ok {
		return fmt.Errorf("%s/%d: %w", call.Method, call.Arity(), ErrMethodNotFound)
	}
	return m.call(c, call.Args)
}

// Func0 wraps a method expression without arguments, e.g. (*Counter).Reset.
func Func0[T Contract](fn func(T)) Method {
	return Method{arity: 0, call: func(c Contract, _ []any) error {
		recv, err := receiver[T](c)
		if err != nil {
			return err
		}
		fn(recv)
		return nil
	}}
}

// Func1 wraps a method expression with one argument.
func Func1[T Contract, A any](fn func(T, A)) Method {
	return Method{arity: 1, call: func(c Contract, args []any) error {
		recv, err := receiver[T](c)
		if err != nil {
			return err
		}
		a, err := argument[A](args, 0)
		if err != nil {
			return err
		}
		fn(recv, a)
		return nil
	}}
}

// Func2 wraps a method expression with two arguments.
func Func2[T Contract, A, B any](fn func(T, A, B)) Method {
	return Method{arity: 2, call: func(c Contract, args []any) error {
		recv, err := receiver[T](c)
		if err != nil {
			return err
		}
		a, err := argument[A](args, 0)
		if err != nil {
			return err
		}
		b, err := argument[B](args, 1)
		if err != nil {
			return err
		}
		fn(recv, a, b)
		return nil
	}}
}

// Func3 wraps a method expression with three arguments.
func Func3[T Contract, A, B, C any](fn func(T, A, B, C)) Method {
	return Method{arity: 3, call: func(c Contract, args []any) error {
		recv, err := receiver[T](c)
		if err != nil {
			return err
		}
		a, err := argument[A](args, 0)
		if err != nil {
			return err
		}
		b, err := argument[B](args, 1)
		if err != nil {
			return err
		}
		cc, err := argument[C](args, 2)
		if err != nil {
			return err
		}
		fn(recv, a, b, cc)
		return nil
	}}
}

func receiver[T Contract](c Contract) (T, error) {
	recv, ok := c.(T)
	if !ok {
		return recv, fmt.Errorf("%T: %w", c, ErrReceiverType)
	}
	return recv, nil
}

func argument[A any](args []any, i int) (A, error) {
	var zero A
	if i >= len(args) {
		return zero, fmt.Errorf("argument %d missing: %w", i, ErrArgumentType)
	}
	v, ok := args[i].(A)
	if !ok {
		return zero, fmt.Errorf("argument %d is %T, want %T: %w", i, args[i], zero, ErrArgumentType)
	}
	return v, nil
}
