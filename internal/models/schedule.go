package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledPayment is the database representation of a scheduled installment plan.
type ScheduledPayment struct {
	ScheduleID            string          `db:"schedule_id"`
	AccountID             string          `db:"account_id"`
	TotalAmount           decimal.Decimal `db:"total_amount"`
	InstallmentCount      int             `db:"installment_count"`
	RemainingInstallments int             `db:"remaining_installments"`
	IntervalDays          int             `db:"interval_days"`
	NextDueDate           time.Time       `db:"next_due_date"`
	Status                string          `db:"status"`
	CreatedAt             time.Time       `db:"created_at"`
	CreatedBy             string          `db:"created_by"`
	LastUpdatedAt         time.Time       `db:"last_updated_at"`
	LastUpdatedBy         string          `db:"last_updated_by"`
}
