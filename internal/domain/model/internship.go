package model

import (
	"time"

	"internship-marketplace/internal/domain"

	"github.com/google/uuid"
)

// Internship is a listing posted by a registered company.
type Internship struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	Type        string    `json:"type"`    // full-time | part-time | remote
	Payment     string    `json:"payment"` // paid | unpaid
	CreatedAt   time.Time `json:"created_at"`
}

func NewInternship(companyID, title, description, location, industry, typ, payment string) (*Internship, error) {
	if companyID == "" || title == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Internship{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Title:       title,
		Description: description,
		Location:    location,
		Industry:    industry,
		Type:        typ,
		Payment:     payment,
		CreatedAt:   time.Now(),
	}, nil
}

// InternshipFilter narrows List queries; zero-valued fields are ignored.
type InternshipFilter struct {
	Location  string
	Industry  string
	Type      string
	Payment   string
	CompanyID string
}
