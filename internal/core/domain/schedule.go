package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleStatus indicates the state of a scheduled payment.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "ACTIVE"
	ScheduleCompleted ScheduleStatus = "COMPLETED"
	ScheduleCancelled ScheduleStatus = "CANCELLED"
)

// ScheduledPayment is a recurring installment payment definition. Each due
// installment is settled through the InstallmentPayment command.
type ScheduledPayment struct {
	ScheduleID            string          `json:"scheduleID"` // Primary Key (e.g., UUID)
	AccountID             string          `json:"accountID"`  // FK -> accounts.account_id
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	InstallmentCount      int             `json:"installmentCount"`
	RemainingInstallments int             `json:"remainingInstallments"`
	IntervalDays          int             `json:"intervalDays"`
	NextDueDate           time.Time       `json:"nextDueDate"`
	Status                ScheduleStatus  `json:"status"`
	AuditFields
}

// InstallmentAmount returns the value of a single installment: the total
// divided by the installment count, rounded half-up to two decimal places.
func (s ScheduledPayment) InstallmentAmount() decimal.Decimal {
	if s.InstallmentCount <= 0 {
		return decimal.Zero
	}
	return s.TotalAmount.DivRound(decimal.NewFromInt(int64(s.InstallmentCount)), 2)
}

// Advance settles one installment: decrements the remaining count, pushes the
// next due date forward by the periodicity, and completes the schedule when
// the last installment is paid.
func (s *ScheduledPayment) Advance() {
	if s.RemainingInstallments > 0 {
		s.RemainingInstallments--
	}
	s.NextDueDate = s.NextDueDate.AddDate(0, 0, s.IntervalDays)
	if s.RemainingInstallments == 0 {
		s.Status = ScheduleCompleted
	}
}
