package dto

import (
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationParams carries the kind-specific parameters of a terminal
// operation. The command factory validates the shape required by each kind.
type OperationParams struct {
	AccountID            string
	OriginAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	NoteCounts           domain.NoteCounts
	ScheduleID           string
}

// RunOperationRequest is the payload for executing a terminal operation.
type RunOperationRequest struct {
	Kind                 string          `json:"kind" binding:"required"`
	AccountID            string          `json:"accountID,omitempty"`
	OriginAccountID      string          `json:"originAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	NoteCounts           map[int64]int64 `json:"noteCounts,omitempty"`
	ScheduleID           string          `json:"scheduleID,omitempty"`
	NotifyEmail          string          `json:"notifyEmail,omitempty" binding:"omitempty,email"`
}

// ToParams converts the bound request into service-level operation parameters.
func (r RunOperationRequest) ToParams() OperationParams {
	counts := make(domain.NoteCounts, len(r.NoteCounts))
	for face, count := range r.NoteCounts {
		counts[domain.Denomination(face)] = count
	}
	return OperationParams{
		AccountID:            r.AccountID,
		OriginAccountID:      r.OriginAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		NoteCounts:           counts,
		ScheduleID:           r.ScheduleID,
	}
}

// AuditRecordResponse is the API representation of an audit record.
type AuditRecordResponse struct {
	RecordID             string          `json:"recordID"`
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	OriginAccountID      string          `json:"originAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	ResponsibleUserID    string          `json:"responsibleUserID"`
	Reversed             bool            `json:"reversed"`
	ReversedBy           string          `json:"reversedBy,omitempty"`
	ReversedAt           *time.Time      `json:"reversedAt,omitempty"`
	ReferenceRecordID    string          `json:"referenceRecordID,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToAuditRecordResponse converts a domain audit record to its API shape. The
// serialized memento never leaves the backend.
func ToAuditRecordResponse(r *domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		RecordID:             r.RecordID,
		Kind:                 string(r.Kind),
		Amount:               r.Amount,
		OriginAccountID:      r.OriginAccountID,
		DestinationAccountID: r.DestinationAccountID,
		ResponsibleUserID:    r.ResponsibleUserID,
		Reversed:             r.Reversed,
		ReversedBy:           r.ReversedBy,
		ReversedAt:           r.ReversedAt,
		ReferenceRecordID:    r.ReferenceRecordID,
		CreatedAt:            r.CreatedAt,
	}
}

// ToAuditRecordResponses converts a slice of domain audit records.
func ToAuditRecordResponses(records []domain.AuditRecord) []AuditRecordResponse {
	out := make([]AuditRecordResponse, len(records))
	for i := range records {
		out[i] = ToAuditRecordResponse(&records[i])
	}
	return out
}
