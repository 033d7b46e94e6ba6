package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ repository.ApplicationRepository = (*applicationRepo)(nil)

type applicationRepo struct{ pool *pgxpool.Pool }

func NewApplicationRepo(pool *pgxpool.Pool) *applicationRepo {
	return &applicationRepo{pool: pool}
}

const applicationColumns = `id, internship_id, student_id, cover_letter, resume_path, portfolio_url, status, created_at`

func (r *applicationRepo) Save(ctx context.Context, tx repository.Tx, a *model.Application) error {
	const q = `
INSERT INTO applications (` + applicationColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET status=$7;`

	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.InternshipID, a.StudentID, a.CoverLetter, a.ResumePath, a.PortfolioURL, a.Status, a.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *applicationRepo) ListByStudent(ctx context.Context, tx repository.Tx, studentID string) ([]*model.Application, error) {
	const q = `SELECT ` + applicationColumns + ` FROM applications WHERE student_id=$1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, studentID)
}

func (r *applicationRepo) ListByInternship(ctx context.Context, tx repository.Tx, internshipID string) ([]*model.Application, error) {
	const q = `SELECT ` + applicationColumns + ` FROM applications WHERE internship_id=$1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, internshipID)
}

func (r *applicationRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Application, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()

	var out []*model.Application
	for rows.Next() {
		a := new(model.Application)
		if err := rows.Scan(&a.ID, &a.InternshipID, &a.StudentID, &a.CoverLetter, &a.ResumePath, &a.PortfolioURL, &a.Status, &a.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, a)
	}
	return out, nil
}
