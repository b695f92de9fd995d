package contract

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownContractType is returned when a type tag has no registered factory.
var ErrUnknownContractType = errors.New("unknown contract type")

// Factory creates a new, unbound contract instance.
type Factory func() Contract

// Instance is a freshly created contract together with its method table.
type Instance struct {
	Type     string
	Contract Contract
	Methods  MethodTable
}

type catalogEntry struct {
	factory Factory
	methods MethodTable
}

// Catalog maps contract type tags to factories and method tables.
type Catalog struct {
	entries map[string]catalogEntry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]catalogEntry)}
}

// Register adds a contract type and returns the catalog for chaining.
func (c *Catalog) Register(typeTag string, factory Factory, methods MethodTable) *Catalog {
	if methods == nil {
		methods = NewMethodTable()
	}
	c.entries[typeTag] = catalogEntry{factory: factory, methods: methods}
	return c
}

// Instantiate creates a new instance of the tagged type.
func (c *Catalog) Instantiate(typeTag string) (Instance, error) {
	entry, ok := c.entries[typeTag]
	if !ok || entry.factory == nil {
		return Instance{}, fmt.Errorf("%q: %w", typeTag, ErrUnknownContractType)
	}

	var created Contract
	if err := protect(func() { created = entry.factory() }); err != nil {
		return Instance{}, fmt.Errorf("instantiate %q: %w", typeTag, err)
	}
	if created == nil {
		return Instance{}, fmt.Errorf("instantiate %q: factory returned nil", typeTag)
	}

	return Instance{Type: typeTag, Contract: created, Methods: entry.methods}, nil
}

// Types lists the registered type tags, sorted.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.entries))
	for tag := range c.entries {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
