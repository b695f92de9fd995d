package ledger

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/goodnatureofminers/contract-emulator/pkg/safe"
)

// ErrBrokenChain is returned when a finalized block does not link to its parent.
var ErrBrokenChain = errors.New("block chain invariant violated")

// Chain is the list of finalized blocks plus the mutable block collecting
// pending transactions.
type Chain struct {
	blocks  []*model.Block
	current *model.Block
}

// NewChain returns a chain whose mutable block is the genesis block.
func NewChain() *Chain {
	return &Chain{current: model.NewBlock(nil)}
}

// Current is the mutable block.
func (c *Chain) Current() *model.Block {
	return c.current
}

// Previous is the last finalized block, nil before genesis is forged.
func (c *Chain) Previous() *model.Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns the finalized blocks in chain order.
func (c *Chain) Blocks() []*model.Block {
	out := make([]*model.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Block returns the finalized block at height.
func (c *Chain) Block(height uint64) (*model.Block, bool) {
	if height >= uint64(len(c.blocks)) {
		return nil, false
	}
	return c.blocks[height], true
}

// Len is the number of finalized blocks.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Submit stamps tx with the next slot of the mutable block and appends it.
func (c *Chain) Submit(tx *model.Transaction) error {
	index, err := safe.Uint32(len(c.current.Transactions))
	if err != nil {
		return fmt.Errorf("block %d is full: %w", c.current.Height, err)
	}
	tx.Timestamp = model.NewTimestamp(c.current.Height, index)
	c.current.Append(tx)
	return nil
}

// Finalize moves the mutable block into the chain with the kept
// transactions, opens the next block seeded with the deferred ones, runs
// apply over the kept transactions in order and seals the block. Deferred
// transactions keep their timestamps. Anything submitted while apply runs
// lands in the new mutable block.
func (c *Chain) Finalize(kept, deferred []*model.Transaction, apply func(*model.Transaction)) (*model.Block, error) {
	block := c.current
	if err := c.checkLink(block); err != nil {
		return nil, err
	}

	block.Transactions = make([]*model.Transaction, 0, len(kept))
	for _, tx := range kept {
		block.Append(tx)
	}
	c.blocks = append(c.blocks, block)

	next := model.NewBlock(block)
	for _, tx := range deferred {
		next.Append(tx)
	}
	c.current = next

	if apply != nil {
		for _, tx := range block.Transactions {
			apply(tx)
		}
	}

	next.PrevHash = block.Seal()
	return block, nil
}

func (c *Chain) checkLink(block *model.Block) error {
	if block.Height != uint64(len(c.blocks)) {
		return fmt.Errorf("block height %d at position %d: %w", block.Height, len(c.blocks), ErrBrokenChain)
	}
	if prev := c.Previous(); prev != nil && block.PrevHash != prev.Hash {
		return fmt.Errorf("block %d does not link to %s: %w", block.Height, prev.Hash, ErrBrokenChain)
	}
	return nil
}

// FindNextMessageTo returns the first non-creation transaction to receiver
// with a timestamp strictly after the given one, scanning the finalized chain
// in order.
func (c *Chain) FindNextMessageTo(receiver model.AccountRef, after model.Timestamp) *model.Transaction {
	// A transaction never lands in a block below its own timestamp height,
	// so earlier blocks cannot hold a match.
	start := min(after.Height, uint64(len(c.blocks)))
	for _, block := range c.blocks[start:] {
		for _, tx := range block.Transactions {
			if tx.IsCreation() || tx.Receiver != receiver {
				continue
			}
			if after.Compare(tx.Timestamp) < 0 {
				return tx
			}
		}
	}
	return nil
}
