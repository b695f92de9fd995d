package model

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// MaxMethodArgs is the largest arity a contract method can be registered with.
const MaxMethodArgs = 3

// Register is the 256 bit message payload exchanged with contracts. It holds
// either four raw 64 bit words or a method call descriptor, never both.
type Register struct {
	words uint256.Int
	call  *MethodCall
}

// MethodCall names a contract method and its present positional arguments.
type MethodCall struct {
	Method string
	Args   []any
}

// Arity is the number of present arguments.
func (c MethodCall) Arity() int {
	return len(c.Args)
}

// NewRegister builds a raw data register. w0 is the least significant word.
func NewRegister(w0, w1, w2, w3 uint64) Register {
	return Register{words: uint256.Int{w0, w1, w2, w3}}
}

// NewRegisterFromUint256 builds a raw data register from a 256 bit integer.
func NewRegisterFromUint256(v *uint256.Int) Register {
	r := Register{}
	if v != nil {
		r.words = *v
	}
	return r
}

// NewMethodCall builds a method call register. Arguments are kept up to the
// first nil one; anything after an absent argument is ignored.
func NewMethodCall(method string, args ...any) Register {
	present := make([]any, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			break
		}
		present = append(present, arg)
	}
	return Register{call: &MethodCall{Method: method, Args: present}}
}

// IsZero reports whether the register is empty: no call and all words zero.
func (r Register) IsZero() bool {
	return r.call == nil && r.words.IsZero()
}

// IsMethodCall reports whether the register carries a method call descriptor.
func (r Register) IsMethodCall() bool {
	return r.call != nil
}

// Call returns a copy of the method call descriptor.
func (r Register) Call() (MethodCall, bool) {
	if r.call == nil {
		return MethodCall{}, false
	}
	return MethodCall{
		Method: r.call.Method,
		Args:   append([]any(nil), r.call.Args...),
	}, true
}

// Words returns the four raw words, least significant first.
func (r Register) Words() [4]uint64 {
	return [4]uint64(r.words)
}

// Uint256 returns the raw words as a 256 bit integer.
func (r Register) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&r.words)
}

// Value1 returns the first (least significant) word.
func (r Register) Value1() uint64 { return r.words[0] }

// Value2 returns the second word.
func (r Register) Value2() uint64 { return r.words[1] }

// Value3 returns the third word.
func (r Register) Value3() uint64 { return r.words[2] }

// Value4 returns the fourth (most significant) word.
func (r Register) Value4() uint64 { return r.words[3] }

// Equal compares the four raw words element-wise.
func (r Register) Equal(o Register) bool {
	return r.words.Eq(&o.words)
}

func (r Register) String() string {
	if r.call == nil {
		return r.words.Hex()
	}
	args := make([]string, 0, len(r.call.Args))
	for _, arg := range r.call.Args {
		args = append(args, fmt.Sprint(arg))
	}
	return r.call.Method + "(" + strings.Join(args, ", ") + ")"
}
