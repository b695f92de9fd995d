package model

import "time"

// Network labels one emulator run in exported rows and metrics.
type Network string

// DefaultNetwork is used when no network label is configured.
var DefaultNetwork Network = "emulator"

// BlockRecord is the exported form of a finalized block.
type BlockRecord struct {
	Network  Network
	Height   uint64
	Hash     string
	PrevHash string
	TxCount  uint32
	ForgedAt time.Time
}

// TransactionRecord is the exported form of an applied transaction.
// SubmittedHeight and SubmittedIndex carry the submission timestamp, which
// differs from the block position for deferred transactions.
type TransactionRecord struct {
	Network         Network
	BlockHeight     uint64
	TxIndex         uint32
	SubmittedHeight uint64
	SubmittedIndex  uint32
	Sender          string
	SenderID        uint64
	Receiver        string
	ReceiverID      uint64
	Amount          int64
	Kind            string
	Payload         string
	Message         string
	ContractType    string
	ActivationFee   int64
}

// ExportBlock groups a block row with its transaction rows.
type ExportBlock struct {
	Block BlockRecord
	Txs   []TransactionRecord
}
