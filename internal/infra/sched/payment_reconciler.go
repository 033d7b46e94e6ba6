package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	red "internship-marketplace/internal/infra/redis"
	"internship-marketplace/internal/usecase"
)

const reconcilerLockKey = "lock:payment_reconciler"

// PaymentReconciler periodically sweeps stale pending payments and fails
// them. This covers callbacks that never arrived or a process that crashed
// mid-reconcile; initiation deliberately does not roll back (fail forward).
// A redis lock keeps the sweep to one replica at a time.
type PaymentReconciler struct {
	uc         usecase.PaymentUseCase
	locker     red.Locker
	interval   time.Duration
	staleAfter time.Duration
	log        *zerolog.Logger
}

func NewPaymentReconciler(uc usecase.PaymentUseCase, locker red.Locker, interval, staleAfter time.Duration, logger *zerolog.Logger) *PaymentReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}
	return &PaymentReconciler{uc: uc, locker: locker, interval: interval, staleAfter: staleAfter, log: logger}
}

func (w *PaymentReconciler) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *PaymentReconciler) tick(ctx context.Context) {
	token, err := w.locker.TryLock(ctx, reconcilerLockKey, w.interval)
	if err != nil {
		if err != red.ErrLockHeld {
			w.log.Error().Err(err).Msg("payment-reconciler: lock error")
		}
		return
	}
	defer func() { _ = w.locker.Unlock(ctx, reconcilerLockKey, token) }()

	cutoff := time.Now().Add(-w.staleAfter)
	n, err := w.uc.FailStalePending(ctx, cutoff, 200)
	if err != nil {
		w.log.Error().Err(err).Msg("payment-reconciler: sweep error")
		return
	}
	if n > 0 {
		w.log.Info().Int("failed", n).Msg("payment-reconciler: swept stale payments")
	}
}
