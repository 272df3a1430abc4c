package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"payrail/internal/domain"
	"payrail/internal/models"
	"payrail/pkg/money"
	"payrail/pkg/paystack"
	"payrail/pkg/reference"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrOrphanedSession: the gateway accepted the transaction but the local
	// record could not be persisted. The checkout session exists with no
	// record behind it; surface loudly, never retry silently.
	ErrOrphanedSession = errors.New("gateway session created but payment not persisted")
)

const maxReferenceAttempts = 3

type PaymentStore interface {
	Create(p *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	UpdateStatus(id, status string, paidAt *time.Time) (*models.Payment, error)
}

type PaymentDraft struct {
	Name   string
	Email  string
	Amount float64
}

// PaymentService owns all payment state transitions: it initializes checkout
// sessions and reconciles pending records against the gateway's verification
// result.
type PaymentService struct {
	store   PaymentStore
	gateway paystack.Gateway
}

func NewPaymentService(store PaymentStore, gateway paystack.Gateway) *PaymentService {
	return &PaymentService{store: store, gateway: gateway}
}

// Create opens a gateway checkout session and persists the payment in
// pending state, returning the record and the authorization URL to redirect
// the customer to. The gateway call and the insert are one logical unit:
// when the gateway fails nothing is persisted. A reference collision on
// insert regenerates the token and re-initializes, bounded at
// maxReferenceAttempts.
func (s *PaymentService) Create(ctx context.Context, draft PaymentDraft) (*models.Payment, string, error) {
	amountMinor := money.ToMinorUnits(draft.Amount)
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		ref, err := reference.New()
		if err != nil {
			return nil, "", fmt.Errorf("generate reference: %w", err)
		}
		init, err := s.gateway.Initialize(ctx, ref, draft.Email, amountMinor)
		if err != nil {
			return nil, "", err
		}
		p := &models.Payment{
			Name:      draft.Name,
			Email:     draft.Email,
			Amount:    draft.Amount,
			Reference: ref,
			Status:    domain.PaymentStatusPending,
		}
		if err := s.store.Create(p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Printf("[PAYMENT] reference collision on attempt %d, regenerating", attempt)
				continue
			}
			return nil, "", fmt.Errorf("%w: reference=%s: %v", ErrOrphanedSession, ref, err)
		}
		return p, init.AuthorizationURL, nil
	}
	return nil, "", fmt.Errorf("no unique reference after %d attempts", maxReferenceAttempts)
}

// Retrieve returns the payment, first reconciling it against the gateway if
// it is still pending. Finalized records are returned as-is without a
// gateway call. A verification failure at the transport level is surfaced as
// an error and the record is left untouched.
func (s *PaymentService) Retrieve(ctx context.Context, id string) (*models.Payment, error) {
	p, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if domain.IsFinal(p.Status) {
		// Reconciliation is a one-shot transition; finalized records are
		// never re-verified.
		return p, nil
	}

	res, err := s.gateway.Verify(ctx, p.Reference)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentStatusFailed
	var paidAt *time.Time
	if res.Status == paystack.StatusSuccess {
		expected := money.ToMinorUnits(p.Amount)
		if res.AmountMinor == expected {
			status = domain.PaymentStatusSuccess
			paidAt = res.PaidAt
			if paidAt == nil {
				now := time.Now()
				paidAt = &now
			}
		} else {
			// Amount integrity trumps the gateway's own label: a paid amount
			// that does not match what we charged is a failed payment.
			log.Printf("[PAYMENT] amount mismatch for %s: expected %d minor units, gateway reported %d", p.ID, expected, res.AmountMinor)
		}
	}
	return s.store.UpdateStatus(p.ID, status, paidAt)
}
