package model

import (
	"time"

	"internship-marketplace/internal/domain"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// Application is a student's submission against one internship listing.
type Application struct {
	ID           string            `json:"id"`
	InternshipID string            `json:"internship_id"`
	StudentID    string            `json:"student_id"`
	CoverLetter  string            `json:"cover_letter"`
	ResumePath   string            `json:"resume_path,omitempty"`
	PortfolioURL string            `json:"portfolio_url,omitempty"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func NewApplication(internshipID, studentID, coverLetter, resumePath, portfolioURL string) (*Application, error) {
	if internshipID == "" || studentID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Application{
		ID:           uuid.NewString(),
		InternshipID: internshipID,
		StudentID:    studentID,
		CoverLetter:  coverLetter,
		ResumePath:   resumePath,
		PortfolioURL: portfolioURL,
		Status:       ApplicationStatusSubmitted,
		CreatedAt:    time.Now(),
	}, nil
}

// ApplicationDetail joins an application with its internship for list views.
type ApplicationDetail struct {
	Application *Application `json:"application"`
	Internship  *Internship  `json:"internship,omitempty"`
}
