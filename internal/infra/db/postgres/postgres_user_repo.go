package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (id, name, email, phone, role, registered_at, subscription_plan)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  name=$2, email=$3, phone=$4, role=$5, subscription_plan=$7;`

	_, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Name, u.Email, u.Phone, u.Role, u.RegisteredAt, u.SubscriptionPlan)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	const q = `SELECT id, name, email, phone, role, registered_at, subscription_plan FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.RegisteredAt, &u.SubscriptionPlan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return u, nil
}

func (r *userRepo) SetSubscriptionPlan(ctx context.Context, tx repository.Tx, userID, planID string) error {
	const q = `UPDATE users SET subscription_plan=$2 WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, userID, planID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(1) FROM users;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var cnt int
	if err := row.Scan(&cnt); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return cnt, nil
}
