package repository

import (
	"context"

	"internship-marketplace/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	// SetSubscriptionPlan writes the active plan reference; called only on the
	// first transition of a payment to completed.
	SetSubscriptionPlan(ctx context.Context, tx Tx, userID, planID string) error
	CountUsers(ctx context.Context, tx Tx) (int, error)
}
