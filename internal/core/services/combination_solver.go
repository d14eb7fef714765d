package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// combinationIDLength is the number of hex characters kept from the content hash.
const combinationIDLength = 16

// CombinationSolver computes feasible ways to satisfy a withdrawal amount
// from the available note quantities. The change-making space is too large to
// enumerate, so a small fixed set of deterministic heuristics each yields at
// most one combination; a combination is accepted only when the residual
// reaches exactly zero.
type CombinationSolver struct{}

// NewCombinationSolver creates a new solver.
func NewCombinationSolver() *CombinationSolver {
	return &CombinationSolver{}
}

// Solve returns the accepted combinations for the amount, deduplicated by
// description and sorted ascending by total note count. The amount must be a
// positive exact multiple of the smallest denomination or the result is empty.
func (s *CombinationSolver) Solve(amount decimal.Decimal, positions []domain.InventoryPosition) []domain.CombinationDescriptor {
	if !amount.IsPositive() || !amount.Mod(domain.SmallestDenomination.Face()).IsZero() {
		return nil
	}
	target := amount.IntPart()

	available := make([]domain.InventoryPosition, 0, len(positions))
	for _, pos := range positions {
		if pos.Denomination.IsValid() && pos.Quantity > 0 {
			available = append(available, pos)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].Denomination < available[j].Denomination
	})

	strategies := []func(int64, []domain.InventoryPosition) domain.NoteCounts{
		largestFirst,
		smallestFirst,
		balancedMidpoint,
	}

	seen := make(map[string]bool)
	descriptors := make([]domain.CombinationDescriptor, 0, len(strategies))
	for _, strategy := range strategies {
		counts := strategy(target, available)
		if counts == nil {
			continue
		}
		descriptor := newCombinationDescriptor(amount, counts)
		if seen[descriptor.Description] {
			continue
		}
		seen[descriptor.Description] = true
		descriptors = append(descriptors, descriptor)
	}

	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].NoteCount != descriptors[j].NoteCount {
			return descriptors[i].NoteCount < descriptors[j].NoteCount
		}
		return descriptors[i].Description < descriptors[j].Description
	})
	return descriptors
}

// takeMax consumes as many notes of the position as the remainder affords.
func takeMax(remaining int64, pos domain.InventoryPosition, counts domain.NoteCounts) int64 {
	face := int64(pos.Denomination)
	take := remaining / face
	if take > pos.Quantity {
		take = pos.Quantity
	}
	if take > 0 {
		counts[pos.Denomination] += take
		remaining -= take * face
	}
	return remaining
}

// largestFirst greedily consumes the largest affordable denominations, few
// notes overall.
func largestFirst(target int64, asc []domain.InventoryPosition) domain.NoteCounts {
	counts := make(domain.NoteCounts)
	remaining := target
	for i := len(asc) - 1; i >= 0; i-- {
		remaining = takeMax(remaining, asc[i], counts)
	}
	if remaining != 0 {
		return nil
	}
	return counts
}

// smallestFirst is the symmetric greedy, favoring many small notes.
func smallestFirst(target int64, asc []domain.InventoryPosition) domain.NoteCounts {
	counts := make(domain.NoteCounts)
	remaining := target
	for i := 0; i < len(asc); i++ {
		remaining = takeMax(remaining, asc[i], counts)
	}
	if remaining != 0 {
		return nil
	}
	return counts
}

// balancedMidpoint starts at the median-valued denomination, saturates upward
// through the larger faces, then fills the remainder downward.
func balancedMidpoint(target int64, asc []domain.InventoryPosition) domain.NoteCounts {
	if len(asc) == 0 {
		return nil
	}
	counts := make(domain.NoteCounts)
	remaining := target
	mid := (len(asc) - 1) / 2
	for i := mid; i < len(asc); i++ {
		remaining = takeMax(remaining, asc[i], counts)
	}
	for i := mid - 1; i >= 0; i-- {
		remaining = takeMax(remaining, asc[i], counts)
	}
	if remaining != 0 {
		return nil
	}
	return counts
}

// newCombinationDescriptor derives the description and the content-based id
// from the canonically ordered (denomination, count) pairs. Map iteration
// order never reaches the hash.
func newCombinationDescriptor(amount decimal.Decimal, counts domain.NoteCounts) domain.CombinationDescriptor {
	denoms := counts.SortedDenominations()

	parts := make([]string, 0, len(denoms))
	canonical := make([]string, 0, len(denoms))
	var noteCount int64
	for _, denom := range denoms {
		count := counts[denom]
		noteCount += count
		parts = append(parts, fmt.Sprintf("%d x %d", count, denom))
		canonical = append(canonical, fmt.Sprintf("%d:%d", denom, count))
	}

	sum := sha256.Sum256([]byte(strings.Join(canonical, "|")))
	return domain.CombinationDescriptor{
		CombinationID: hex.EncodeToString(sum[:])[:combinationIDLength],
		Amount:        amount,
		Counts:        counts,
		NoteCount:     noteCount,
		Description:   strings.Join(parts, " + "),
	}
}
