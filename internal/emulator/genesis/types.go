package genesis

import "github.com/goodnatureofminers/contract-emulator/internal/emulator/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Target interface {
		Credit(address string, amount int64) error
		SubmitContractCreation(from, to, typeTag string, activationFee int64) (*model.Transaction, error)
		SubmitTransfer(from, to string, amount int64, payload *model.Register) (*model.Transaction, error)
		SubmitMessage(from, to string, amount int64, message string) (*model.Transaction, error)
	}
)
