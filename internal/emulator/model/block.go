package model

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Block is an ordered list of transactions. Only the newest block of a chain
// is mutable; it doubles as the pool of pending transactions.
type Block struct {
	Height       uint64
	Transactions []*Transaction
	PrevHash     chainhash.Hash
	Hash         chainhash.Hash
}

// NewBlock creates an empty block following prev. A nil prev creates the
// genesis block.
func NewBlock(prev *Block) *Block {
	if prev == nil {
		return &Block{}
	}
	return &Block{
		Height:   prev.Height + 1,
		PrevHash: prev.Hash,
	}
}

// Append adds tx at the end of the block and points its location here.
func (b *Block) Append(tx *Transaction) {
	tx.Location = BlockRef{Height: b.Height, Offset: len(b.Transactions)}
	b.Transactions = append(b.Transactions, tx)
}

// Start is the timestamp of the first slot of the block.
func (b *Block) Start() Timestamp {
	return BlockStart(b.Height)
}

// Seal computes the block hash from its height, parent and transactions.
func (b *Block) Seal() chainhash.Hash {
	var buf bytes.Buffer
	var scratch [8]byte

	binary.BigEndian.PutUint64(scratch[:], b.Height)
	buf.Write(scratch[:])
	buf.Write(b.PrevHash[:])
	for _, tx := range b.Transactions {
		buf.WriteString(tx.Sender.Address)
		buf.WriteByte(0)
		buf.WriteString(tx.Receiver.Address)
		buf.WriteByte(0)
		binary.BigEndian.PutUint64(scratch[:], uint64(tx.Amount))
		buf.Write(scratch[:])
		buf.WriteByte(byte(tx.Kind))
		binary.BigEndian.PutUint64(scratch[:], tx.Timestamp.Height)
		buf.Write(scratch[:])
		binary.BigEndian.PutUint32(scratch[:4], tx.Timestamp.Index)
		buf.Write(scratch[:4])
		buf.WriteString(tx.Payload.String())
		buf.WriteByte(0)
		buf.WriteString(tx.Message)
		buf.WriteByte(0)
		buf.WriteString(tx.ContractType)
		buf.WriteByte(0)
	}

	b.Hash = chainhash.DoubleHashH(buf.Bytes())
	return b.Hash
}
