package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
)

// OperationCompletedEvent is emitted after an operation or reversal commits.
// Rendering and delivery of the customer notification belong to downstream
// consumers.
type OperationCompletedEvent struct {
	Kind        domain.OperationKind `json:"kind"`
	Record      domain.AuditRecord   `json:"record"`
	NotifyEmail string               `json:"notifyEmail,omitempty"`
}

// NotificationPublisher is the fire-and-forget sink for completion events.
// Publish failures are logged and dropped; they never roll back a commit.
type NotificationPublisher interface {
	PublishOperationCompleted(ctx context.Context, event OperationCompletedEvent) error
}
