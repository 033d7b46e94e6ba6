package repository

import (
	"context"

	"internship-marketplace/internal/domain/model"
)

// PlanRepository is the port for plan catalog persistence.
type PlanRepository interface {
	Save(ctx context.Context, plan *model.Plan) error
	FindByID(ctx context.Context, id string) (*model.Plan, error)
	ListAll(ctx context.Context) ([]*model.Plan, error)
	Delete(ctx context.Context, id string) error
}
