package model

import "fmt"

// AccountID is the numeric identity decoded from an address.
type AccountID uint64

// AccountRef identifies an account. The address text is unique per account,
// the ID is zero for addresses that could not be decoded.
type AccountRef struct {
	ID      AccountID
	Address string
}

func (r AccountRef) String() string {
	return r.Address
}

// TxKind describes what a transaction asks the ledger to do.
type TxKind uint8

const (
	// TxPayment moves funds, optionally with a raw register or text message.
	TxPayment TxKind = iota
	// TxMethodCall moves funds and asks the receiving contract to run a method.
	TxMethodCall
	// TxContractCreate binds a new contract instance to the receiver.
	TxContractCreate
)

func (k TxKind) String() string {
	switch k {
	case TxPayment:
		return "payment"
	case TxMethodCall:
		return "method_call"
	case TxContractCreate:
		return "contract_create"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// BlockRef locates a transaction inside the chain without owning the block.
type BlockRef struct {
	Height uint64
	Offset int
}

// Transaction is a transfer or directive between two accounts.
//
// Only Amount (clamped when applied) and Location (updated when the
// transaction is deferred to a later block) change after submission.
type Transaction struct {
	Sender    AccountRef
	Receiver  AccountRef
	Amount    int64
	Kind      TxKind
	Timestamp Timestamp
	Payload   Register
	Message   string

	// ContractType and ActivationFee are set on TxContractCreate only.
	ContractType  string
	ActivationFee int64

	Location BlockRef
}

// IsCreation reports whether the transaction creates a contract.
func (t *Transaction) IsCreation() bool {
	return t.Kind == TxContractCreate
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s->%s amount=%d ts=%s", t.Kind, t.Sender, t.Receiver, t.Amount, t.Timestamp)
}
