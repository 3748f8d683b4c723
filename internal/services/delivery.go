package services

import (
	"context"
	"errors"
	"time"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// defaultRetryDelays is the fixed backoff schedule; the number of delivery
// attempts per token equals its length.
var defaultRetryDelays = []time.Duration{time.Second, 3 * time.Second, 8 * time.Second}

// SessionManager supplies bearer tokens for outbound delivery.
type SessionManager interface {
	GetValidToken(ctx context.Context) (string, bool)
	ReLogin(ctx context.Context) (string, error)
}

// TransactionSender posts a single transaction to the remote ledger.
type TransactionSender interface {
	Send(ctx context.Context, tx models.Transaction, token string) error
}

// DeliveryService sends one transaction under an authenticated session with
// bounded retry and a single re-login-and-retry cycle on 401.
type DeliveryService struct {
	auth   SessionManager
	sender TransactionSender
	delays []time.Duration
}

// NewDeliveryService creates a new DeliveryService. Nil delays fall back to
// the default [1s, 3s, 8s] schedule.
func NewDeliveryService(auth SessionManager, sender TransactionSender, delays []time.Duration) *DeliveryService {
	if len(delays) == 0 {
		delays = defaultRetryDelays
	}
	return &DeliveryService{auth: auth, sender: sender, delays: delays}
}

// Send delivers one transaction. A rejected token triggers exactly one
// re-login and one retry with the fresh token; a second 401 is terminal for
// this attempt. All other failures are retried on the backoff schedule and
// returned classified (network vs server) when exhausted.
func (svc *DeliveryService) Send(ctx context.Context, tx models.Transaction) error {
	token, ok := svc.auth.GetValidToken(ctx)
	if !ok {
		var err error
		token, err = svc.auth.ReLogin(ctx)
		if err != nil {
			logger.Log.Errorw("cannot deliver without a session", "trx_id", tx.TrxID, "error", err)
			return err
		}
	}

	err := svc.sendWithRetry(ctx, tx, token)
	if !errors.Is(err, facades.ErrUnauthorized) {
		return err
	}

	logger.Log.Warnw("token rejected mid-flight, re-authenticating", "trx_id", tx.TrxID)
	token, loginErr := svc.auth.ReLogin(ctx)
	if loginErr != nil {
		return loginErr
	}

	err = svc.sender.Send(ctx, tx, token)
	if errors.Is(err, facades.ErrUnauthorized) {
		// a fresh token was rejected too; do not loop
		return &facades.SendError{Class: facades.ClassServer, Message: "unauthorized"}
	}
	return err
}

// sendWithRetry attempts delivery once per schedule slot, stopping early on
// success or on a 401 (which is handled by the caller, not retried here).
func (svc *DeliveryService) sendWithRetry(ctx context.Context, tx models.Transaction, token string) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = svc.sender.Send(ctx, tx, token)
		if err == nil || errors.Is(err, facades.ErrUnauthorized) {
			return err
		}
		if attempt >= len(svc.delays)-1 {
			return err
		}

		logger.Log.Warnw("send failed, retrying",
			"trx_id", tx.TrxID,
			"attempt", attempt+1,
			"delay", svc.delays[attempt],
			"error", err,
		)
		if !sleepCtx(ctx, svc.delays[attempt]) {
			return err
		}
	}
}

// sleepCtx waits for d unless ctx is done first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
