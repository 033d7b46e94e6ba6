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

var _ repository.CompanyApplicationRepository = (*companyApplicationRepo)(nil)

type companyApplicationRepo struct{ pool *pgxpool.Pool }

func NewCompanyApplicationRepo(pool *pgxpool.Pool) *companyApplicationRepo {
	return &companyApplicationRepo{pool: pool}
}

const companyAppColumns = `id, user_id, name, slogan, description, industry, location, manager_name, job_title, contact_number, website, plan_id, status, created_at`

func (r *companyApplicationRepo) Save(ctx context.Context, tx repository.Tx, ca *model.CompanyApplication) error {
	const q = `
INSERT INTO company_applications (` + companyAppColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET status=$13;`

	_, err := execSQL(ctx, r.pool, tx, q, ca.ID, ca.UserID, ca.Name, ca.Slogan, ca.Description, ca.Industry, ca.Location, ca.ManagerName, ca.JobTitle, ca.ContactNumber, ca.Website, ca.PlanID, ca.Status, ca.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *companyApplicationRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.CompanyApplication, error) {
	const q = `SELECT ` + companyAppColumns + ` FROM company_applications WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	ca := &model.CompanyApplication{}
	if err := row.Scan(&ca.ID, &ca.UserID, &ca.Name, &ca.Slogan, &ca.Description, &ca.Industry, &ca.Location, &ca.ManagerName, &ca.JobTitle, &ca.ContactNumber, &ca.Website, &ca.PlanID, &ca.Status, &ca.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return ca, nil
}

func (r *companyApplicationRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.CompanyApplication, error) {
	const q = `SELECT ` + companyAppColumns + ` FROM company_applications WHERE status='pending' ORDER BY created_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()

	var out []*model.CompanyApplication
	for rows.Next() {
		ca := new(model.CompanyApplication)
		if err := rows.Scan(&ca.ID, &ca.UserID, &ca.Name, &ca.Slogan, &ca.Description, &ca.Industry, &ca.Location, &ca.ManagerName, &ca.JobTitle, &ca.ContactNumber, &ca.Website, &ca.PlanID, &ca.Status, &ca.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, ca)
	}
	return out, nil
}

func (r *companyApplicationRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.CompanyApplicationStatus) error {
	const q = `UPDATE company_applications SET status=$2 WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, status)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
