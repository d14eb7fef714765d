package domain

import (
	"github.com/shopspring/decimal"
)

// Memento is an immutable snapshot of the balances and inventory quantities an
// operation is about to mutate, captured under the same locked view used for
// the precondition checks. It is owned by the command that built it and is
// handed to the audit record for later reversal use.
type Memento struct {
	Balances  map[string]decimal.Decimal `json:"balances"`  // accountID -> balance before mutation
	Inventory map[Denomination]int64     `json:"inventory"` // face value -> quantity before mutation
}

// NewMemento copies the given state into a fresh snapshot so later writes to
// the source maps cannot alter it.
func NewMemento(balances map[string]decimal.Decimal, inventory map[Denomination]int64) Memento {
	m := Memento{
		Balances:  make(map[string]decimal.Decimal, len(balances)),
		Inventory: make(map[Denomination]int64, len(inventory)),
	}
	for accountID, balance := range balances {
		m.Balances[accountID] = balance
	}
	for denom, qty := range inventory {
		m.Inventory[denom] = qty
	}
	return m
}

// IsEmpty reports whether the snapshot captured no state at all.
func (m Memento) IsEmpty() bool {
	return len(m.Balances) == 0 && len(m.Inventory) == 0
}
