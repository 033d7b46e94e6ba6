package model

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"internship-marketplace/internal/domain"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // created locally; awaiting the gateway callback
	PaymentStatusCompleted PaymentStatus = "completed" // gateway reported success (terminal)
	PaymentStatusFailed    PaymentStatus = "failed"    // gateway reported failure or payment went stale (terminal)
)

// IsTerminal reports whether no further transition is allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Payment records one attempt to pay for a plan. Amount and currency are
// copied from the plan at creation time and never change afterwards; a later
// plan price edit does not affect an in-flight payment.
type Payment struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	PlanID    string        `json:"plan_id"`
	Provider  string        `json:"provider"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	TxRef     string        `json:"tx_ref"` // correlation key shared with the gateway
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
}

// NewTxRef generates a fresh transaction reference. ULIDs are unique and
// lexically time-ordered, which keeps gateway-side transaction lists sorted.
func NewTxRef() string {
	return "tx-" + ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// NewPayment constructs a pending payment with a fresh transaction reference.
func NewPayment(userID, planID, provider, currency string, amount int64) (*Payment, error) {
	if userID == "" || planID == "" || provider == "" || len(currency) != 3 || amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Payment{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    planID,
		Provider:  provider,
		Amount:    amount,
		Currency:  currency,
		TxRef:     NewTxRef(),
		Status:    PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
