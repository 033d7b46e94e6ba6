package usecase

import (
	"context"
	"time"

	"internship-marketplace/internal/domain/ports/repository"
)

var _ StatsUseCase = (*statsUC)(nil)

// Revenue totals in whole currency units for trailing periods.
type Revenue struct {
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
	Year  int64 `json:"year"`
}

type StatsUseCase interface {
	Totals(ctx context.Context) (users int, revenue Revenue, err error)
}

type statsUC struct {
	users    repository.UserRepository
	payments repository.PaymentRepository
}

func NewStatsUseCase(users repository.UserRepository, payments repository.PaymentRepository) *statsUC {
	return &statsUC{users: users, payments: payments}
}

func (u *statsUC) Totals(ctx context.Context) (int, Revenue, error) {
	users, err := u.users.CountUsers(ctx, repository.NoTX)
	if err != nil {
		return 0, Revenue{}, err
	}

	now := time.Now()
	var rev Revenue
	if rev.Week, err = u.payments.SumCompletedSince(ctx, repository.NoTX, now.AddDate(0, 0, -7)); err != nil {
		return 0, Revenue{}, err
	}
	if rev.Month, err = u.payments.SumCompletedSince(ctx, repository.NoTX, now.AddDate(0, -1, 0)); err != nil {
		return 0, Revenue{}, err
	}
	if rev.Year, err = u.payments.SumCompletedSince(ctx, repository.NoTX, now.AddDate(-1, 0, 0)); err != nil {
		return 0, Revenue{}, err
	}
	return users, rev, nil
}
