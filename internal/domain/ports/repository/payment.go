package repository

import (
	"context"
	"time"

	"internship-marketplace/internal/domain/model"
)

// PaymentRepository owns payment persistence. Callers operate on values it
// returns, never raw storage handles.
type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	FindByTxRef(ctx context.Context, tx Tx, txRef string) (*model.Payment, error)

	// UpdateStatusIfPending atomically moves a payment to the given terminal
	// status only while it is still pending, and reports whether the row
	// transitioned. Concurrent duplicate callbacks serialize on this: exactly
	// one caller observes true.
	UpdateStatusIfPending(ctx context.Context, tx Tx, id string, status model.PaymentStatus, paidAt *time.Time) (bool, error)

	ListPendingOlderThan(ctx context.Context, tx Tx, olderThan time.Time, limit int) ([]*model.Payment, error)
	SumCompletedSince(ctx context.Context, tx Tx, since time.Time) (int64, error)
}
