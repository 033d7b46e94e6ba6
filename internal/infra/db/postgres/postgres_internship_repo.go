package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ repository.InternshipRepository = (*internshipRepo)(nil)

type internshipRepo struct{ pool *pgxpool.Pool }

func NewInternshipRepo(pool *pgxpool.Pool) *internshipRepo {
	return &internshipRepo{pool: pool}
}

const internshipColumns = `id, company_id, title, description, location, industry, type, payment, created_at`

func (r *internshipRepo) Save(ctx context.Context, tx repository.Tx, in *model.Internship) error {
	const q = `
INSERT INTO internships (` + internshipColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  title=$3, description=$4, location=$5, industry=$6, type=$7, payment=$8;`

	_, err := execSQL(ctx, r.pool, tx, q, in.ID, in.CompanyID, in.Title, in.Description, in.Location, in.Industry, in.Type, in.Payment, in.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *internshipRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Internship, error) {
	const q = `SELECT ` + internshipColumns + ` FROM internships WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	in := &model.Internship{}
	if err := row.Scan(&in.ID, &in.CompanyID, &in.Title, &in.Description, &in.Location, &in.Industry, &in.Type, &in.Payment, &in.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInternshipNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return in, nil
}

// List builds the WHERE clause from the non-empty filter fields only.
func (r *internshipRepo) List(ctx context.Context, tx repository.Tx, filter model.InternshipFilter) ([]*model.Internship, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("location", filter.Location)
	add("industry", filter.Industry)
	add("type", filter.Type)
	add("payment", filter.Payment)
	add("company_id", filter.CompanyID)

	q := `SELECT ` + internshipColumns + ` FROM internships`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC;"

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

	var out []*model.Internship
	for rows.Next() {
		in := new(model.Internship)
		if err := rows.Scan(&in.ID, &in.CompanyID, &in.Title, &in.Description, &in.Location, &in.Industry, &in.Type, &in.Payment, &in.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, in)
	}
	return out, nil
}
