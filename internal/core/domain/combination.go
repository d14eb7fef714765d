package domain

import (
	"github.com/shopspring/decimal"
)

// CombinationDescriptor is one feasible denomination->count assignment summing
// to a requested withdrawal amount. Its identifier is derived from the content
// of the combination, so recomputation over unchanged inventory yields the
// same id and a caller can confirm an option by id later.
type CombinationDescriptor struct {
	CombinationID string          `json:"combinationID"`
	Amount        decimal.Decimal `json:"amount"`
	Counts        NoteCounts      `json:"counts"`
	NoteCount     int64           `json:"noteCount"`
	Description   string          `json:"description"`
}
