// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/adapter"
	"internship-marketplace/internal/domain/ports/repository"
	"internship-marketplace/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// CallbackResult is what the callback handler needs to answer the gateway:
// the payment's (possibly already terminal) state and, on success, where to
// send the payer's browser.
type CallbackResult struct {
	Payment     *model.Payment
	RedirectURL string
	// Transitioned is false when the payment was already terminal and the
	// callback was a no-op.
	Transitioned bool
}

type PaymentUseCase interface {
	// Initiate creates a pending payment for the plan and returns the
	// gateway checkout URL the user is redirected to.
	Initiate(ctx context.Context, userID, planID string) (*model.Payment, string, error)
	// HandleCallback reconciles the gateway's asynchronous outcome report
	// for the given transaction reference. Safe under duplicate delivery.
	HandleCallback(ctx context.Context, txRef, reportedStatus string) (*CallbackResult, error)
	// FailStalePending moves pending payments older than the cutoff to
	// failed; used by the reconciliation sweep.
	FailStalePending(ctx context.Context, olderThan time.Time, limit int) (int, error)
}

// PaymentURLs carries the externally visible endpoints baked into each
// gateway request.
type PaymentURLs struct {
	// CallbackBase is this API's public base; the gateway calls
	// <CallbackBase>/api/payment/callback?tx_ref=<ref>.
	CallbackBase string
	// FrontendBase is where the payer's browser lands after checkout.
	FrontendBase string
}

type paymentUC struct {
	payments repository.PaymentRepository
	plans    repository.PlanRepository
	users    repository.UserRepository
	gateway  adapter.PaymentGateway
	tm       repository.TransactionManager
	currency string
	urls     PaymentURLs
	log      *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
	currency string,
	urls PaymentURLs,
	logger *zerolog.Logger,
) *paymentUC {
	return &paymentUC{
		payments: payments,
		plans:    plans,
		users:    users,
		gateway:  gateway,
		tm:       tm,
		currency: currency,
		urls:     urls,
		log:      logger,
	}
}

func (u *paymentUC) Initiate(ctx context.Context, userID, planID string) (*model.Payment, string, error) {
	plan, err := u.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, "", err
	}

	// Amount is copied from the plan now; a later price edit must not touch
	// an in-flight payment.
	p, err := model.NewPayment(user.ID, plan.ID, u.gateway.Name(), u.currency, plan.Price)
	if err != nil {
		return nil, "", err
	}
	if err := u.payments.Save(ctx, repository.NoTX, p); err != nil {
		return nil, "", err
	}
	metrics.IncPayment(string(p.Status))

	checkoutURL, err := u.gateway.InitializeTransaction(ctx, u.buildRequest(p, plan, user))
	if err != nil {
		// Fail forward: the gateway may have partially processed the request,
		// so the pending record stays for the reconciliation sweep.
		u.log.Error().Err(err).Str("payment_id", p.ID).Str("tx_ref", p.TxRef).Msg("gateway initialize failed; payment left pending")
		return nil, "", fmt.Errorf("initialize transaction %s: %w", p.TxRef, err)
	}

	u.log.Info().Str("payment_id", p.ID).Str("tx_ref", p.TxRef).Int64("amount", p.Amount).Msg("payment initiated")
	return p, checkoutURL, nil
}

// buildRequest shapes the gateway contract. Prices are whole-unit integers,
// serialized as plain decimal strings with no separators.
func (u *paymentUC) buildRequest(p *model.Payment, plan *model.Plan, user *model.User) adapter.TransactionRequest {
	return adapter.TransactionRequest{
		Amount:      strconv.FormatInt(p.Amount, 10),
		Currency:    p.Currency,
		Email:       user.Email,
		FirstName:   user.Name,
		PhoneNumber: user.Phone,
		TxRef:       p.TxRef,
		CallbackURL: fmt.Sprintf("%s/api/payment/callback?tx_ref=%s", u.urls.CallbackBase, p.TxRef),
		ReturnURL:   fmt.Sprintf("%s/student/apply-company-form/%s", u.urls.FrontendBase, plan.ID),
		Customization: adapter.Customization{
			Title:       "Payment Plan",
			Description: fmt.Sprintf("Payment for %s plan", plan.Tier),
		},
	}
}

func (u *paymentUC) HandleCallback(ctx context.Context, txRef, reportedStatus string) (*CallbackResult, error) {
	p, err := u.payments.FindByTxRef(ctx, repository.NoTX, txRef)
	if err != nil {
		// Forged or stale reference; nothing was mutated.
		metrics.IncCallback("unknown_ref")
		return nil, err
	}

	if reportedStatus == "success" {
		return u.complete(ctx, p)
	}
	return u.fail(ctx, p)
}

// complete transitions the payment and grants the plan to its owner as one
// transactional unit. The conditional status update decides whether the grant
// runs: a duplicate or racing callback sees transitioned=false and the user
// row untouched.
func (u *paymentUC) complete(ctx context.Context, p *model.Payment) (*CallbackResult, error) {
	var transitioned bool
	now := time.Now()
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		transitioned, err = u.payments.UpdateStatusIfPending(ctx, tx, p.ID, model.PaymentStatusCompleted, &now)
		if err != nil {
			return err
		}
		if !transitioned {
			return nil
		}
		return u.users.SetSubscriptionPlan(ctx, tx, p.UserID, p.PlanID)
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		p.Status = model.PaymentStatusCompleted
		p.PaidAt = &now
		p.UpdatedAt = now
		metrics.IncPayment(string(p.Status))
		metrics.IncCallback("completed")
		u.log.Info().Str("payment_id", p.ID).Str("tx_ref", p.TxRef).Msg("payment completed")
	} else {
		metrics.IncCallback("duplicate")
	}

	return &CallbackResult{
		Payment:      p,
		RedirectURL:  fmt.Sprintf("%s/payment-success?planId=%s&status=success", u.urls.FrontendBase, p.PlanID),
		Transitioned: transitioned,
	}, nil
}

func (u *paymentUC) fail(ctx context.Context, p *model.Payment) (*CallbackResult, error) {
	transitioned, err := u.payments.UpdateStatusIfPending(ctx, repository.NoTX, p.ID, model.PaymentStatusFailed, nil)
	if err != nil {
		return nil, err
	}
	if transitioned {
		p.Status = model.PaymentStatusFailed
		p.UpdatedAt = time.Now()
		metrics.IncPayment(string(p.Status))
		metrics.IncCallback("failed")
		u.log.Info().Str("payment_id", p.ID).Str("tx_ref", p.TxRef).Msg("payment failed")
	} else {
		metrics.IncCallback("duplicate")
	}
	return &CallbackResult{Payment: p, Transitioned: transitioned}, nil
}

// FailStalePending is the reconciliation sweep: pending payments the gateway
// never reported on eventually fail instead of hanging forever.
func (u *paymentUC) FailStalePending(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	stale, err := u.payments.ListPendingOlderThan(ctx, repository.NoTX, olderThan, limit)
	if err != nil {
		return 0, err
	}
	var n int
	for _, p := range stale {
		transitioned, err := u.payments.UpdateStatusIfPending(ctx, repository.NoTX, p.ID, model.PaymentStatusFailed, nil)
		if err != nil {
			u.log.Error().Err(err).Str("payment_id", p.ID).Msg("stale payment sweep failed")
			continue
		}
		if transitioned {
			n++
			metrics.IncPayment(string(model.PaymentStatusFailed))
		}
	}
	if n > 0 {
		u.log.Info().Int("count", n).Msg("stale pending payments failed")
	}
	return n, nil
}
