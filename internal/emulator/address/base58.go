// Package address converts between account address text and numeric account IDs.
package address

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

const (
	// DefaultPrefix is prepended to every encoded address.
	DefaultPrefix = "EMU"
	// Version is the base58check version byte of account addresses.
	Version byte = 0x1c
)

var (
	// ErrMissingPrefix is returned for addresses without the expected prefix.
	ErrMissingPrefix = errors.New("address prefix missing")
	// ErrBadPayload is returned when the decoded payload is not an account id.
	ErrBadPayload = errors.New("address payload malformed")
)

// Base58Decoder decodes addresses of the form PREFIX-<base58check(id)>.
type Base58Decoder struct {
	prefix string
}

// NewBase58Decoder creates a decoder for the given prefix. An empty prefix
// falls back to DefaultPrefix.
func NewBase58Decoder(prefix string) *Base58Decoder {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Base58Decoder{prefix: strings.ToUpper(prefix)}
}

// Encode renders id as address text.
func (d *Base58Decoder) Encode(id model.AccountID) string {
	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], uint64(id))
	return d.prefix + "-" + base58.CheckEncode(payload[:], Version)
}

// Decode parses address text back into the account id.
func (d *Base58Decoder) Decode(text string) (model.AccountID, error) {
	body, ok := strings.CutPrefix(text, d.prefix+"-")
	if !ok {
		return 0, fmt.Errorf("decode %q: %w", text, ErrMissingPrefix)
	}

	payload, version, err := base58.CheckDecode(body)
	if err != nil {
		return 0, fmt.Errorf("decode %q: %w", text, err)
	}
	if version != Version || len(payload) != 8 {
		return 0, fmt.Errorf("decode %q: version %#x length %d: %w", text, version, len(payload), ErrBadPayload)
	}

	return model.AccountID(binary.BigEndian.Uint64(payload)), nil
}
