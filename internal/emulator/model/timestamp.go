// Package model defines the value types of the emulated ledger.
package model

import "fmt"

// Timestamp orders transactions inside the chain: block height first, then the
// position of the transaction inside that block.
type Timestamp struct {
	Height uint64
	Index  uint32
}

// NewTimestamp builds a Timestamp.
func NewTimestamp(height uint64, index uint32) Timestamp {
	return Timestamp{Height: height, Index: index}
}

// BlockStart returns the timestamp of the first slot of a block.
func BlockStart(height uint64) Timestamp {
	return Timestamp{Height: height}
}

// Compare returns -1, 0 or +1 when t is before, equal to or after o.
func (t Timestamp) Compare(o Timestamp) int {
	switch {
	case t.Height < o.Height:
		return -1
	case t.Height > o.Height:
		return 1
	case t.Index < o.Index:
		return -1
	case t.Index > o.Index:
		return 1
	default:
		return 0
	}
}

// LessOrEqual reports whether t is not after o.
func (t Timestamp) LessOrEqual(o Timestamp) bool {
	return t.Compare(o) <= 0
}

// AddBlocks returns the block start n blocks after t's block.
func (t Timestamp) AddBlocks(n uint64) Timestamp {
	return BlockStart(t.Height + n)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d:%d", t.Height, t.Index)
}
