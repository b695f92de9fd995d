// Package genesis loads the initial state of an emulator from a TOML file.
package genesis

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/hashicorp/go-multierror"
	"github.com/holiman/uint256"
	"github.com/pelletier/go-toml"
)

// File is the genesis document.
type File struct {
	Accounts  []Account  `toml:"accounts"`
	Contracts []Contract `toml:"contracts"`
	Transfers []Transfer `toml:"transfers"`
}

// Account is credited out of band before the first block.
type Account struct {
	Address string `toml:"address"`
	Balance int64  `toml:"balance"`
}

// Contract is deployed in the first block after genesis.
type Contract struct {
	Creator       string `toml:"creator"`
	Address       string `toml:"address"`
	Type          string `toml:"type"`
	ActivationFee int64  `toml:"activation_fee"`
}

// Transfer is submitted after the contract deployments, in file order.
type Transfer struct {
	From    string        `toml:"from"`
	To      string        `toml:"to"`
	Amount  int64         `toml:"amount"`
	Message string        `toml:"message"`
	Method  string        `toml:"method"`
	Args    []interface{} `toml:"args"`
	// Data is a raw 256 bit payload, 0x-prefixed hex or decimal.
	Data string `toml:"data"`
}

// Payload builds the register carried by the transfer: a method call, raw
// data, or nil for plain payments.
func (t Transfer) Payload() (*model.Register, error) {
	switch {
	case t.Method != "":
		reg := model.NewMethodCall(t.Method, t.Args...)
		return &reg, nil
	case t.Data != "":
		var v uint256.Int
		if err := v.UnmarshalText([]byte(t.Data)); err != nil {
			return nil, fmt.Errorf("data %q: %w", t.Data, err)
		}
		reg := model.NewRegisterFromUint256(&v)
		return &reg, nil
	default:
		return nil, nil
	}
}

// Load reads and parses a genesis file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a genesis document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse genesis file: %w", err)
	}
	return &f, nil
}

// Validate checks the document against the known contract types and reports
// every problem found. An empty knownTypes skips the type check.
func (f *File) Validate(knownTypes []string) error {
	var result *multierror.Error

	seen := make(map[string]struct{}, len(f.Accounts))
	for i, acc := range f.Accounts {
		if acc.Address == "" {
			result = multierror.Append(result, fmt.Errorf("accounts[%d]: address is required", i))
		}
		if acc.Balance < 0 {
			result = multierror.Append(result, fmt.Errorf("accounts[%d]: negative balance %d", i, acc.Balance))
		}
		if _, ok := seen[acc.Address]; ok {
			result = multierror.Append(result, fmt.Errorf("accounts[%d]: duplicate address %q", i, acc.Address))
		}
		seen[acc.Address] = struct{}{}
	}

	deployed := make(map[string]struct{}, len(f.Contracts))
	for i, c := range f.Contracts {
		if c.Creator == "" || c.Address == "" {
			result = multierror.Append(result, fmt.Errorf("contracts[%d]: creator and address are required", i))
		}
		if c.Type == "" {
			result = multierror.Append(result, fmt.Errorf("contracts[%d]: type is required", i))
		} else if len(knownTypes) > 0 && !slices.Contains(knownTypes, c.Type) {
			result = multierror.Append(result, fmt.Errorf("contracts[%d]: unknown type %q", i, c.Type))
		}
		if c.ActivationFee < 0 {
			result = multierror.Append(result, fmt.Errorf("contracts[%d]: negative activation fee", i))
		}
		if _, ok := deployed[c.Address]; ok {
			result = multierror.Append(result, fmt.Errorf("contracts[%d]: address %q deployed twice", i, c.Address))
		}
		deployed[c.Address] = struct{}{}
	}

	for i, t := range f.Transfers {
		if t.From == "" || t.To == "" {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: from and to are required", i))
		}
		if t.Message != "" && t.Method != "" {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: message and method are exclusive", i))
		}
		if t.Data != "" && (t.Method != "" || t.Message != "") {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: data excludes message and method", i))
		} else if _, err := t.Payload(); err != nil {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: %w", i, err))
		}
		if t.Method == "" && len(t.Args) > 0 {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: args without method", i))
		}
		if len(t.Args) > model.MaxMethodArgs {
			result = multierror.Append(result, fmt.Errorf("transfers[%d]: %d args, at most %d", i, len(t.Args), model.MaxMethodArgs))
		}
	}

	return result.ErrorOrNil()
}

// Apply credits the accounts and submits the deployments and transfers.
func (f *File) Apply(target Target) error {
	if target == nil {
		return errors.New("genesis target is required")
	}

	for _, acc := range f.Accounts {
		if err := target.Credit(acc.Address, acc.Balance); err != nil {
			return fmt.Errorf("credit %s: %w", acc.Address, err)
		}
	}
	for _, c := range f.Contracts {
		if _, err := target.SubmitContractCreation(c.Creator, c.Address, c.Type, c.ActivationFee); err != nil {
			return fmt.Errorf("deploy %s at %s: %w", c.Type, c.Address, err)
		}
	}
	for _, t := range f.Transfers {
		var err error
		if t.Message != "" {
			_, err = target.SubmitMessage(t.From, t.To, t.Amount, t.Message)
		} else {
			var payload *model.Register
			if payload, err = t.Payload(); err == nil {
				_, err = target.SubmitTransfer(t.From, t.To, t.Amount, payload)
			}
		}
		if err != nil {
			return fmt.Errorf("transfer %s->%s: %w", t.From, t.To, err)
		}
	}
	return nil
}
