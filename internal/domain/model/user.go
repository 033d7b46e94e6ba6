package model

import (
	"time"

	"internship-marketplace/internal/domain"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleCompany UserRole = "company"
	RoleAdmin   UserRole = "admin"
)

// User is owned by the auth subsystem; this service reads contact fields for
// gateway requests and writes SubscriptionPlan on the first successful payment.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         UserRole  `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
	// SubscriptionPlan is nil until a payment completes.
	SubscriptionPlan *string `json:"subscription_plan,omitempty"`
}

func NewUser(id, name, email, phone string, role UserRole) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" || email == "" {
		return nil, domain.ErrInvalidArgument
	}
	if role == "" {
		role = RoleStudent
	}
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         role,
		RegisteredAt: time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
