package model

import (
	"time"

	"internship-marketplace/internal/domain"
)

// Plan is a purchasable subscription tier with a fixed price in whole ETB.
type Plan struct {
	ID          string    `json:"id"`
	Tier        string    `json:"tier"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// NewPlan validates and constructs a plan.
func NewPlan(id, tier string, price int64, description string) (*Plan, error) {
	if id == "" || tier == "" || price <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Plan{
		ID:          id,
		Tier:        tier,
		Price:       price,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}
