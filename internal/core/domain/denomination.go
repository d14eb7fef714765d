package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Denomination is a fixed banknote face value handled by the terminal.
type Denomination int64

const (
	Note2   Denomination = 2
	Note5   Denomination = 5
	Note10  Denomination = 10
	Note20  Denomination = 20
	Note50  Denomination = 50
	Note100 Denomination = 100
	Note200 Denomination = 200
)

// Denominations returns the full set of supported face values in ascending order.
func Denominations() []Denomination {
	return []Denomination{Note2, Note5, Note10, Note20, Note50, Note100, Note200}
}

// SmallestDenomination is the smallest face value the terminal dispenses.
// Withdrawal amounts must be exact multiples of it.
const SmallestDenomination = Note2

// IsValid reports whether d is one of the supported face values.
func (d Denomination) IsValid() bool {
	for _, known := range Denominations() {
		if d == known {
			return true
		}
	}
	return false
}

// Face returns the face value as an exact decimal.
func (d Denomination) Face() decimal.Decimal {
	return decimal.NewFromInt(int64(d))
}

// NoteCounts maps face values to a number of notes.
type NoteCounts map[Denomination]int64

// Total returns the monetary value of the counted notes.
func (n NoteCounts) Total() decimal.Decimal {
	total := decimal.Zero
	for denom, count := range n {
		total = total.Add(denom.Face().Mul(decimal.NewFromInt(count)))
	}
	return total
}

// SortedDenominations returns the denominations present in n with a count
// greater than zero, in descending face order.
func (n NoteCounts) SortedDenominations() []Denomination {
	denoms := make([]Denomination, 0, len(n))
	for denom, count := range n {
		if count > 0 {
			denoms = append(denoms, denom)
		}
	}
	sort.Slice(denoms, func(i, j int) bool { return denoms[i] > denoms[j] })
	return denoms
}
