package domain_test

import (
	"testing"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallmentAmount_EvenSplit(t *testing.T) {
	s := domain.ScheduledPayment{
		TotalAmount:      decimal.RequireFromString("300.00"),
		InstallmentCount: 3,
	}
	assert.True(t, s.InstallmentAmount().Equal(decimal.RequireFromString("100.00")))
}

func TestInstallmentAmount_RoundsHalfUp(t *testing.T) {
	// 100 / 3 = 33.333... -> 33.33; 200 / 3 = 66.666... -> 66.67
	s := domain.ScheduledPayment{
		TotalAmount:      decimal.RequireFromString("100.00"),
		InstallmentCount: 3,
	}
	assert.True(t, s.InstallmentAmount().Equal(decimal.RequireFromString("33.33")))

	s.TotalAmount = decimal.RequireFromString("200.00")
	assert.True(t, s.InstallmentAmount().Equal(decimal.RequireFromString("66.67")))

	// Exact half rounds away from zero: 0.25 / 2 = 0.125 -> 0.13
	s.TotalAmount = decimal.RequireFromString("0.25")
	s.InstallmentCount = 2
	assert.True(t, s.InstallmentAmount().Equal(decimal.RequireFromString("0.13")))
}

func TestInstallmentAmount_ZeroCount(t *testing.T) {
	s := domain.ScheduledPayment{TotalAmount: decimal.RequireFromString("100.00")}
	assert.True(t, s.InstallmentAmount().IsZero())
}

func TestAdvance_CompletesOnLastInstallment(t *testing.T) {
	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	s := domain.ScheduledPayment{
		RemainingInstallments: 2,
		IntervalDays:          30,
		NextDueDate:           due,
		Status:                domain.ScheduleActive,
	}

	s.Advance()
	assert.Equal(t, 1, s.RemainingInstallments)
	assert.Equal(t, due.AddDate(0, 0, 30), s.NextDueDate)
	assert.Equal(t, domain.ScheduleActive, s.Status)

	s.Advance()
	assert.Equal(t, 0, s.RemainingInstallments)
	assert.Equal(t, due.AddDate(0, 0, 60), s.NextDueDate)
	assert.Equal(t, domain.ScheduleCompleted, s.Status)
}

func TestNoteCountsTotal(t *testing.T) {
	counts := domain.NoteCounts{
		domain.Note100: 2,
		domain.Note50:  1,
		domain.Note2:   3,
	}
	assert.True(t, counts.Total().Equal(decimal.RequireFromString("256")))
	assert.True(t, domain.NoteCounts{}.Total().IsZero())
}

func TestSortedDenominations_DescendingAndSkipsZero(t *testing.T) {
	counts := domain.NoteCounts{
		domain.Note10:  1,
		domain.Note200: 1,
		domain.Note50:  0,
		domain.Note5:   2,
	}
	sorted := counts.SortedDenominations()
	require.Equal(t, []domain.Denomination{domain.Note200, domain.Note10, domain.Note5}, sorted)
}

func TestDenominationIsValid(t *testing.T) {
	for _, d := range domain.Denominations() {
		assert.True(t, d.IsValid())
	}
	assert.False(t, domain.Denomination(3).IsValid())
	assert.False(t, domain.Denomination(0).IsValid())
}
