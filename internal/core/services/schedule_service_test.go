package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/core/services"
	"github.com/bankterm/terminal_backend/internal/dto"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	scheduleRepo *MockScheduleRepository
	accountRepo  *MockAccountRepository
	service      portssvc.ScheduleSvcFacade

	customer domain.User
	admin    domain.User
}

func (s *ScheduleServiceTestSuite) SetupTest() {
	s.scheduleRepo = new(MockScheduleRepository)
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewScheduleService(s.scheduleRepo, s.accountRepo)

	s.customer = domain.User{UserID: "user-1", Role: domain.RoleCustomer}
	s.admin = domain.User{UserID: "admin-1", Role: domain.RoleAdmin}
}

func (s *ScheduleServiceTestSuite) storedSchedule(status domain.ScheduleStatus) *domain.ScheduledPayment {
	return &domain.ScheduledPayment{
		ScheduleID:            "sched-1",
		AccountID:             "acc-1",
		TotalAmount:           decimal.NewFromInt(1000),
		InstallmentCount:      4,
		RemainingInstallments: 4,
		IntervalDays:          30,
		NextDueDate:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:                status,
	}
}

func (s *ScheduleServiceTestSuite) TestCreateSchedule() {
	ctx := context.Background()
	owned := account("acc-1", "user-1", 500)
	s.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&owned, nil).Once()
	s.scheduleRepo.On("SaveSchedule", ctx, mock.MatchedBy(func(schedule domain.ScheduledPayment) bool {
		return schedule.Status == domain.ScheduleActive &&
			schedule.RemainingInstallments == 4 &&
			schedule.ScheduleID != ""
	})).Return(nil).Once()

	schedule, err := s.service.CreateSchedule(ctx, dto.CreateScheduleRequest{
		AccountID:        "acc-1",
		TotalAmount:      decimal.NewFromInt(1000),
		InstallmentCount: 4,
		IntervalDays:     30,
		FirstDueDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}, s.customer)

	s.Require().NoError(err)
	s.Equal(domain.ScheduleActive, schedule.Status)
	s.Equal(4, schedule.RemainingInstallments)
	s.scheduleRepo.AssertExpectations(s.T())
}

func (s *ScheduleServiceTestSuite) TestCreateScheduleRejectsNonPositiveTotal() {
	ctx := context.Background()

	_, err := s.service.CreateSchedule(ctx, dto.CreateScheduleRequest{
		AccountID:        "acc-1",
		TotalAmount:      decimal.Zero,
		InstallmentCount: 4,
	}, s.customer)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.scheduleRepo.AssertNotCalled(s.T(), "SaveSchedule", mock.Anything, mock.Anything)
}

func (s *ScheduleServiceTestSuite) TestCreateScheduleHidesForeignAccount() {
	ctx := context.Background()
	foreign := account("acc-9", "user-9", 500)
	s.accountRepo.On("FindAccountByID", ctx, "acc-9").Return(&foreign, nil).Once()

	_, err := s.service.CreateSchedule(ctx, dto.CreateScheduleRequest{
		AccountID:        "acc-9",
		TotalAmount:      decimal.NewFromInt(1000),
		InstallmentCount: 4,
	}, s.customer)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ScheduleServiceTestSuite) TestGetScheduleByIDOwner() {
	ctx := context.Background()
	owned := account("acc-1", "user-1", 500)
	s.scheduleRepo.On("FindScheduleByID", ctx, "sched-1").Return(s.storedSchedule(domain.ScheduleActive), nil).Once()
	s.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&owned, nil).Once()

	schedule, err := s.service.GetScheduleByID(ctx, "sched-1", s.customer)

	s.Require().NoError(err)
	s.Equal("sched-1", schedule.ScheduleID)
}

func (s *ScheduleServiceTestSuite) TestGetScheduleByIDHiddenFromNonOwner() {
	ctx := context.Background()
	foreign := account("acc-1", "user-9", 500)
	s.scheduleRepo.On("FindScheduleByID", ctx, "sched-1").Return(s.storedSchedule(domain.ScheduleActive), nil).Once()
	s.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&foreign, nil).Once()

	_, err := s.service.GetScheduleByID(ctx, "sched-1", s.customer)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ScheduleServiceTestSuite) TestGetScheduleByIDAdminSkipsOwnershipLookup() {
	ctx := context.Background()
	s.scheduleRepo.On("FindScheduleByID", ctx, "sched-1").Return(s.storedSchedule(domain.ScheduleActive), nil).Once()

	_, err := s.service.GetScheduleByID(ctx, "sched-1", s.admin)

	s.Require().NoError(err)
	s.accountRepo.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (s *ScheduleServiceTestSuite) TestCancelSchedule() {
	ctx := context.Background()
	owned := account("acc-1", "user-1", 500)
	s.scheduleRepo.On("FindScheduleByID", ctx, "sched-1").Return(s.storedSchedule(domain.ScheduleActive), nil).Once()
	s.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&owned, nil).Once()
	s.scheduleRepo.On("UpdateScheduleStatus", ctx, "sched-1", domain.ScheduleCancelled, "user-1").Return(nil).Once()

	err := s.service.CancelSchedule(ctx, "sched-1", s.customer)

	s.Require().NoError(err)
	s.scheduleRepo.AssertExpectations(s.T())
}

func (s *ScheduleServiceTestSuite) TestCancelScheduleRequiresActiveStatus() {
	ctx := context.Background()
	owned := account("acc-1", "user-1", 500)
	s.scheduleRepo.On("FindScheduleByID", ctx, "sched-1").Return(s.storedSchedule(domain.ScheduleCompleted), nil).Once()
	s.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&owned, nil).Once()

	err := s.service.CancelSchedule(ctx, "sched-1", s.customer)

	s.Require().ErrorIs(err, services.ErrScheduleNotActive)
	s.scheduleRepo.AssertNotCalled(s.T(), "UpdateScheduleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ScheduleServiceTestSuite) TestListDueSchedules() {
	ctx := context.Background()
	asOf := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	due := []domain.ScheduledPayment{*s.storedSchedule(domain.ScheduleActive)}
	s.scheduleRepo.On("ListDueSchedules", ctx, asOf, 50).Return(due, nil).Once()

	schedules, err := s.service.ListDueSchedules(ctx, asOf, 50)

	s.Require().NoError(err)
	s.Len(schedules, 1)
}

func TestScheduleService(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
