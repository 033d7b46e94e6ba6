package usecase

import (
	"context"

	"github.com/google/uuid"

	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ PlanUseCase = (*planUC)(nil)

type PlanUseCase interface {
	Create(ctx context.Context, tier string, price int64, description string) (*model.Plan, error)
	Update(ctx context.Context, id, tier string, price int64, description string) (*model.Plan, error)
	Get(ctx context.Context, id string) (*model.Plan, error)
	List(ctx context.Context) ([]*model.Plan, error)
	Delete(ctx context.Context, id string) error
}

type planUC struct {
	plans repository.PlanRepository
}

func NewPlanUseCase(plans repository.PlanRepository) *planUC {
	return &planUC{plans: plans}
}

func (u *planUC) Create(ctx context.Context, tier string, price int64, description string) (*model.Plan, error) {
	plan, err := model.NewPlan(uuid.NewString(), tier, price, description)
	if err != nil {
		return nil, err
	}
	if err := u.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *planUC) Update(ctx context.Context, id, tier string, price int64, description string) (*model.Plan, error) {
	plan, err := u.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := model.NewPlan(plan.ID, tier, price, description)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = plan.CreatedAt
	if err := u.plans.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *planUC) Get(ctx context.Context, id string) (*model.Plan, error) {
	return u.plans.FindByID(ctx, id)
}

func (u *planUC) List(ctx context.Context) ([]*model.Plan, error) {
	return u.plans.ListAll(ctx)
}

func (u *planUC) Delete(ctx context.Context, id string) error {
	return u.plans.Delete(ctx, id)
}
