package domain

// InventoryPosition tracks the available quantity of one denomination in the
// terminal's shared cash pool.
type InventoryPosition struct {
	Denomination Denomination `json:"denomination"` // Primary Key (face value)
	Quantity     int64        `json:"quantity"`     // Invariant: never negative after commit
	AuditFields
}
