package services

import (
	"encoding/json"
	"fmt"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MementoCodec serializes mementos for storage on audit records. The encoding
// must round-trip exactly: a reversal overwrites live state with whatever
// comes back out.
type MementoCodec struct{}

type mementoWire struct {
	Balances  map[string]decimal.Decimal    `json:"balances"`
	Inventory map[domain.Denomination]int64 `json:"inventory"`
}

// Serialize encodes a memento as JSON.
func (MementoCodec) Serialize(m domain.Memento) (string, error) {
	wire := mementoWire{Balances: m.Balances, Inventory: m.Inventory}
	if wire.Balances == nil {
		wire.Balances = map[string]decimal.Decimal{}
	}
	if wire.Inventory == nil {
		wire.Inventory = map[domain.Denomination]int64{}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("failed to serialize memento: %w", err)
	}
	return string(data), nil
}

// Deserialize decodes a serialized memento. Decode failures surface as
// ErrMementoDecode.
func (MementoCodec) Deserialize(serialized string) (domain.Memento, error) {
	var wire mementoWire
	if err := json.Unmarshal([]byte(serialized), &wire); err != nil {
		return domain.Memento{}, fmt.Errorf("%w: %v", ErrMementoDecode, err)
	}
	return domain.NewMemento(wire.Balances, wire.Inventory), nil
}
