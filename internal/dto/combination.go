package dto

import (
	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalOptionResponse is the API representation of one dispensable note
// combination for a requested amount.
type WithdrawalOptionResponse struct {
	OptionID    string          `json:"optionID"`
	Amount      decimal.Decimal `json:"amount"`
	Counts      map[int64]int64 `json:"counts"`
	NoteCount   int64           `json:"noteCount"`
	Description string          `json:"description"`
}

// ToWithdrawalOptionResponse converts a combination descriptor to its API shape.
func ToWithdrawalOptionResponse(d *domain.CombinationDescriptor) WithdrawalOptionResponse {
	counts := make(map[int64]int64, len(d.Counts))
	for denom, count := range d.Counts {
		counts[int64(denom)] = count
	}
	return WithdrawalOptionResponse{
		OptionID:    d.CombinationID,
		Amount:      d.Amount,
		Counts:      counts,
		NoteCount:   d.NoteCount,
		Description: d.Description,
	}
}

// ToWithdrawalOptionResponses converts a slice of combination descriptors.
func ToWithdrawalOptionResponses(descriptors []domain.CombinationDescriptor) []WithdrawalOptionResponse {
	out := make([]WithdrawalOptionResponse, len(descriptors))
	for i := range descriptors {
		out[i] = ToWithdrawalOptionResponse(&descriptors[i])
	}
	return out
}

// ConfirmWithdrawalRequest is the payload for confirming a previously listed
// withdrawal option by its id.
type ConfirmWithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	OptionID    string          `json:"optionID" binding:"required"`
	NotifyEmail string          `json:"notifyEmail,omitempty" binding:"omitempty,email"`
}
