package repository

import (
	"context"

	"internship-marketplace/internal/domain/model"
)

type InternshipRepository interface {
	Save(ctx context.Context, tx Tx, in *model.Internship) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Internship, error)
	List(ctx context.Context, tx Tx, filter model.InternshipFilter) ([]*model.Internship, error)
}

type ApplicationRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Application) error
	ListByStudent(ctx context.Context, tx Tx, studentID string) ([]*model.Application, error)
	ListByInternship(ctx context.Context, tx Tx, internshipID string) ([]*model.Application, error)
}

type CompanyApplicationRepository interface {
	Save(ctx context.Context, tx Tx, ca *model.CompanyApplication) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.CompanyApplication, error)
	ListPending(ctx context.Context, tx Tx) ([]*model.CompanyApplication, error)
	UpdateStatus(ctx context.Context, tx Tx, id string, status model.CompanyApplicationStatus) error
}
