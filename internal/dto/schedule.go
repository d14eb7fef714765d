package dto

import (
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateScheduleRequest is the payload for setting up an installment payment.
type CreateScheduleRequest struct {
	AccountID        string          `json:"accountID" binding:"required"`
	TotalAmount      decimal.Decimal `json:"totalAmount" binding:"required"`
	InstallmentCount int             `json:"installmentCount" binding:"required,gt=0"`
	IntervalDays     int             `json:"intervalDays" binding:"required,gt=0"`
	FirstDueDate     time.Time       `json:"firstDueDate" binding:"required"`
}

// ScheduleResponse is the API representation of a scheduled payment.
type ScheduleResponse struct {
	ScheduleID            string          `json:"scheduleID"`
	AccountID             string          `json:"accountID"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	InstallmentAmount     decimal.Decimal `json:"installmentAmount"`
	InstallmentCount      int             `json:"installmentCount"`
	RemainingInstallments int             `json:"remainingInstallments"`
	IntervalDays          int             `json:"intervalDays"`
	NextDueDate           time.Time       `json:"nextDueDate"`
	Status                string          `json:"status"`
}

// ToScheduleResponse converts a domain schedule to its API shape.
func ToScheduleResponse(s *domain.ScheduledPayment) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:            s.ScheduleID,
		AccountID:             s.AccountID,
		TotalAmount:           s.TotalAmount,
		InstallmentAmount:     s.InstallmentAmount(),
		InstallmentCount:      s.InstallmentCount,
		RemainingInstallments: s.RemainingInstallments,
		IntervalDays:          s.IntervalDays,
		NextDueDate:           s.NextDueDate,
		Status:                string(s.Status),
	}
}
