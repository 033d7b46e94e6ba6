package model

import (
	"time"

	"internship-marketplace/internal/domain"

	"github.com/google/uuid"
)

type CompanyApplicationStatus string

const (
	CompanyApplicationPending  CompanyApplicationStatus = "pending"
	CompanyApplicationApproved CompanyApplicationStatus = "approved"
	CompanyApplicationRejected CompanyApplicationStatus = "rejected"
)

// CompanyApplication is a user's request to register a company under a
// subscription plan; an admin approves or rejects it.
type CompanyApplication struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"user_id"`
	Name          string                   `json:"name"`
	Slogan        string                   `json:"slogan,omitempty"`
	Description   string                   `json:"description,omitempty"`
	Industry      string                   `json:"industry"`
	Location      string                   `json:"location"`
	ManagerName   string                   `json:"manager_name"`
	JobTitle      string                   `json:"job_title,omitempty"`
	ContactNumber string                   `json:"contact_number"`
	Website       string                   `json:"website,omitempty"`
	PlanID        string                   `json:"plan_id"`
	Status        CompanyApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

func NewCompanyApplication(userID, name, industry, location, managerName, contactNumber, planID string) (*CompanyApplication, error) {
	if userID == "" || name == "" || planID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &CompanyApplication{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Industry:      industry,
		Location:      location,
		ManagerName:   managerName,
		ContactNumber: contactNumber,
		PlanID:        planID,
		Status:        CompanyApplicationPending,
		CreatedAt:     time.Now(),
	}, nil
}
