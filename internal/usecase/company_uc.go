package usecase

import (
	"context"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
)

var _ CompanyUseCase = (*companyUC)(nil)

// CompanyRegistration is the application form a user submits to register a
// company under a plan.
type CompanyRegistration struct {
	Name          string
	Slogan        string
	Description   string
	Industry      string
	Location      string
	ManagerName   string
	JobTitle      string
	ContactNumber string
	Website       string
	PlanID        string
}

type CompanyUseCase interface {
	Apply(ctx context.Context, userID string, reg CompanyRegistration) (*model.CompanyApplication, error)
	ListPending(ctx context.Context) ([]*model.CompanyApplication, error)
	Review(ctx context.Context, id string, approve bool) (*model.CompanyApplication, error)
}

type companyUC struct {
	companyApps repository.CompanyApplicationRepository
	plans       repository.PlanRepository
	users       repository.UserRepository
}

func NewCompanyUseCase(companyApps repository.CompanyApplicationRepository, plans repository.PlanRepository, users repository.UserRepository) *companyUC {
	return &companyUC{companyApps: companyApps, plans: plans, users: users}
}

func (u *companyUC) Apply(ctx context.Context, userID string, reg CompanyRegistration) (*model.CompanyApplication, error) {
	if _, err := u.plans.FindByID(ctx, reg.PlanID); err != nil {
		return nil, err
	}
	ca, err := model.NewCompanyApplication(userID, reg.Name, reg.Industry, reg.Location, reg.ManagerName, reg.ContactNumber, reg.PlanID)
	if err != nil {
		return nil, err
	}
	ca.Slogan = reg.Slogan
	ca.Description = reg.Description
	ca.JobTitle = reg.JobTitle
	ca.Website = reg.Website
	if err := u.companyApps.Save(ctx, repository.NoTX, ca); err != nil {
		return nil, err
	}
	return ca, nil
}

func (u *companyUC) ListPending(ctx context.Context) ([]*model.CompanyApplication, error) {
	return u.companyApps.ListPending(ctx, repository.NoTX)
}

// Review approves or rejects a pending application. Approval promotes the
// submitting user to the company role.
func (u *companyUC) Review(ctx context.Context, id string, approve bool) (*model.CompanyApplication, error) {
	ca, err := u.companyApps.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if ca.Status != model.CompanyApplicationPending {
		return nil, domain.ErrInvalidArgument
	}

	status := model.CompanyApplicationRejected
	if approve {
		status = model.CompanyApplicationApproved
	}
	if err := u.companyApps.UpdateStatus(ctx, repository.NoTX, id, status); err != nil {
		return nil, err
	}
	ca.Status = status

	if approve {
		user, err := u.users.FindByID(ctx, repository.NoTX, ca.UserID)
		if err != nil {
			return nil, err
		}
		user.Role = model.RoleCompany
		if err := u.users.Save(ctx, repository.NoTX, user); err != nil {
			return nil, err
		}
	}
	return ca, nil
}
