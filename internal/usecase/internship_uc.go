package usecase

import (
	"context"

	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ InternshipUseCase = (*internshipUC)(nil)

type InternshipUseCase interface {
	Create(ctx context.Context, companyID, title, description, location, industry, typ, payment string) (*model.Internship, error)
	Get(ctx context.Context, id string) (*model.Internship, error)
	List(ctx context.Context, filter model.InternshipFilter) ([]*model.Internship, error)
	// Apply records a student's application against an existing listing.
	Apply(ctx context.Context, studentID, internshipID, coverLetter, resumePath, portfolioURL string) (*model.Application, error)
	ApplicationsByStudent(ctx context.Context, studentID string) ([]*model.ApplicationDetail, error)
}

type internshipUC struct {
	internships  repository.InternshipRepository
	applications repository.ApplicationRepository
}

func NewInternshipUseCase(internships repository.InternshipRepository, applications repository.ApplicationRepository) *internshipUC {
	return &internshipUC{internships: internships, applications: applications}
}

func (u *internshipUC) Create(ctx context.Context, companyID, title, description, location, industry, typ, payment string) (*model.Internship, error) {
	in, err := model.NewInternship(companyID, title, description, location, industry, typ, payment)
	if err != nil {
		return nil, err
	}
	if err := u.internships.Save(ctx, repository.NoTX, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (u *internshipUC) Get(ctx context.Context, id string) (*model.Internship, error) {
	return u.internships.FindByID(ctx, repository.NoTX, id)
}

func (u *internshipUC) List(ctx context.Context, filter model.InternshipFilter) ([]*model.Internship, error) {
	return u.internships.List(ctx, repository.NoTX, filter)
}

func (u *internshipUC) Apply(ctx context.Context, studentID, internshipID, coverLetter, resumePath, portfolioURL string) (*model.Application, error) {
	// The listing must exist before an application is accepted.
	if _, err := u.internships.FindByID(ctx, repository.NoTX, internshipID); err != nil {
		return nil, err
	}
	app, err := model.NewApplication(internshipID, studentID, coverLetter, resumePath, portfolioURL)
	if err != nil {
		return nil, err
	}
	if err := u.applications.Save(ctx, repository.NoTX, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ApplicationsByStudent assembles each application with its internship via
// explicit repository fetches.
func (u *internshipUC) ApplicationsByStudent(ctx context.Context, studentID string) ([]*model.ApplicationDetail, error) {
	apps, err := u.applications.ListByStudent(ctx, repository.NoTX, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.ApplicationDetail, 0, len(apps))
	for _, a := range apps {
		detail := &model.ApplicationDetail{Application: a}
		if in, err := u.internships.FindByID(ctx, repository.NoTX, a.InternshipID); err == nil {
			detail.Internship = in
		}
		out = append(out, detail)
	}
	return out, nil
}
