package postgres

import (
	"context"
	"fmt"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.PlanRepository = (*PostgresPlanRepo)(nil)

type PostgresPlanRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPlanRepo(pool *pgxpool.Pool) *PostgresPlanRepo {
	return &PostgresPlanRepo{pool: pool}
}

func (r *PostgresPlanRepo) Save(ctx context.Context, plan *model.Plan) error {
	const sql = `
INSERT INTO plans (id, tier, price, description, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
  SET tier        = EXCLUDED.tier,
      price       = EXCLUDED.price,
      description = EXCLUDED.description;
`
	_, err := r.pool.Exec(ctx, sql, plan.ID, plan.Tier, plan.Price, plan.Description, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("Save plan: %w", err)
	}
	return nil
}

func (r *PostgresPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	const sql = `
SELECT id, tier, price, description, created_at
  FROM plans
 WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, sql, id)
	var p model.Plan
	if err := row.Scan(&p.ID, &p.Tier, &p.Price, &p.Description, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("FindByID plan: %w", err)
	}
	return &p, nil
}

func (r *PostgresPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	const sql = `
SELECT id, tier, price, description, created_at
  FROM plans
 ORDER BY price ASC;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll plans: %w", err)
	}
	defer rows.Close()
	var out []*model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Tier, &p.Price, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, nil
}

func (r *PostgresPlanRepo) Delete(ctx context.Context, id string) error {
	// Refuse to delete plans that users actively hold.
	const countSQL = `SELECT COUNT(1) FROM users WHERE subscription_plan = $1;`
	var cnt int
	if err := r.pool.QueryRow(ctx, countSQL, id).Scan(&cnt); err != nil {
		return fmt.Errorf("postgres count plan holders: %w", err)
	}
	if cnt > 0 {
		return fmt.Errorf("cannot delete plan %s: %d active subscribers exist", id, cnt)
	}

	const delSQL = `DELETE FROM plans WHERE id = $1;`
	ct, err := r.pool.Exec(ctx, delSQL, id)
	if err != nil {
		return fmt.Errorf("postgres Delete plan: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
