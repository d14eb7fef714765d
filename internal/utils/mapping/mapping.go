// Package mapping converts between database models and domain entities.
package mapping

import (
	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/bankterm/terminal_backend/internal/models"
)

// ToDomainUser converts a user model to its domain representation.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelUser converts a domain user to its database model.
func ToModelUser(u domain.User) models.User {
	return models.User{
		UserID:        u.UserID,
		Name:          u.Name,
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
		CreatedBy:     u.CreatedBy,
		LastUpdatedAt: u.LastUpdatedAt,
		LastUpdatedBy: u.LastUpdatedBy,
	}
}

// ToDomainAccount converts an account model to its domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		OwnerUserID: m.OwnerUserID,
		Balance:     m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelAccount converts a domain account to its database model.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:     a.AccountID,
		OwnerUserID:   a.OwnerUserID,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToDomainInventoryPosition converts an inventory model to its domain representation.
func ToDomainInventoryPosition(m models.InventoryPosition) domain.InventoryPosition {
	return domain.InventoryPosition{
		Denomination: domain.Denomination(m.Denomination),
		Quantity:     m.Quantity,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelInventoryPosition converts a domain inventory position to its database model.
func ToModelInventoryPosition(p domain.InventoryPosition) models.InventoryPosition {
	return models.InventoryPosition{
		Denomination:  int64(p.Denomination),
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToDomainAuditRecord converts an audit record model to its domain representation.
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		RecordID:             m.RecordID,
		Kind:                 domain.OperationKind(m.Kind),
		Amount:               m.Amount,
		OriginAccountID:      derefString(m.OriginAccountID),
		DestinationAccountID: derefString(m.DestinationAccountID),
		ResponsibleUserID:    m.ResponsibleUserID,
		NotifyEmail:          derefString(m.NotifyEmail),
		Memento:              derefString(m.Memento),
		Reversed:             m.Reversed,
		ReversedBy:           derefString(m.ReversedBy),
		ReversedAt:           m.ReversedAt,
		ReferenceRecordID:    derefString(m.ReferenceRecordID),
		CreatedAt:            m.CreatedAt,
	}
}

// ToModelAuditRecord converts a domain audit record to its database model.
func ToModelAuditRecord(r domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		RecordID:             r.RecordID,
		Kind:                 string(r.Kind),
		Amount:               r.Amount,
		OriginAccountID:      nilIfEmpty(r.OriginAccountID),
		DestinationAccountID: nilIfEmpty(r.DestinationAccountID),
		ResponsibleUserID:    r.ResponsibleUserID,
		NotifyEmail:          nilIfEmpty(r.NotifyEmail),
		Memento:              nilIfEmpty(r.Memento),
		Reversed:             r.Reversed,
		ReversedBy:           nilIfEmpty(r.ReversedBy),
		ReversedAt:           r.ReversedAt,
		ReferenceRecordID:    nilIfEmpty(r.ReferenceRecordID),
		CreatedAt:            r.CreatedAt,
	}
}

// ToDomainScheduledPayment converts a schedule model to its domain representation.
func ToDomainScheduledPayment(m models.ScheduledPayment) domain.ScheduledPayment {
	return domain.ScheduledPayment{
		ScheduleID:            m.ScheduleID,
		AccountID:             m.AccountID,
		TotalAmount:           m.TotalAmount,
		InstallmentCount:      m.InstallmentCount,
		RemainingInstallments: m.RemainingInstallments,
		IntervalDays:          m.IntervalDays,
		NextDueDate:           m.NextDueDate,
		Status:                domain.ScheduleStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelScheduledPayment converts a domain schedule to its database model.
func ToModelScheduledPayment(s domain.ScheduledPayment) models.ScheduledPayment {
	return models.ScheduledPayment{
		ScheduleID:            s.ScheduleID,
		AccountID:             s.AccountID,
		TotalAmount:           s.TotalAmount,
		InstallmentCount:      s.InstallmentCount,
		RemainingInstallments: s.RemainingInstallments,
		IntervalDays:          s.IntervalDays,
		NextDueDate:           s.NextDueDate,
		Status:                string(s.Status),
		CreatedAt:             s.CreatedAt,
		CreatedBy:             s.CreatedBy,
		LastUpdatedAt:         s.LastUpdatedAt,
		LastUpdatedBy:         s.LastUpdatedBy,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
