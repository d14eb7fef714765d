package models

import "time"

// InventoryPosition is the database representation of a note inventory row.
type InventoryPosition struct {
	Denomination  int64     `db:"denomination"`
	Quantity      int64     `db:"quantity"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
