// Package builtin holds the sample contracts shipped with the emulator.
package builtin

import "github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"

// Type tags of the built-in contracts.
const (
	TypeEcho     = "echo"
	TypeCounter  = "counter"
	TypeTimelock = "timelock"
)

// Catalog returns a catalog with every built-in contract registered.
func Catalog() *contract.Catalog {
	return Register(contract.NewCatalog())
}

// Register adds the built-in contracts to an existing catalog.
func Register(c *contract.Catalog) *contract.Catalog {
	return c.
		Register(TypeEcho, func() contract.Contract { return &Echo{} }, nil).
		Register(TypeCounter, func() contract.Contract { return &Counter{} }, CounterMethods()).
		Register(TypeTimelock, func() contract.Contract { return &Timelock{} }, TimelockMethods())
}
