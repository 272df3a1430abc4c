package paystack

import (
	"context"
	"sync"
	"time"
)

// StubGateway is a no-op gateway for development when no secret key is
// configured. Every initialize succeeds with a fake checkout URL; verify
// reports success with the amount the reference was initialized for.
type StubGateway struct {
	mu      sync.Mutex
	amounts map[string]int64
}

func NewStubGateway() *StubGateway {
	return &StubGateway{amounts: make(map[string]int64)}
}

func (s *StubGateway) Initialize(ctx context.Context, reference, email string, amountMinor int64) (*InitResult, error) {
	s.mu.Lock()
	s.amounts[reference] = amountMinor
	s.mu.Unlock()
	return &InitResult{
		AuthorizationURL: "https://checkout.example/pay/" + reference,
		AccessCode:       "stub_" + reference[:min(8, len(reference))],
		Reference:        reference,
	}, nil
}

func (s *StubGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	s.mu.Lock()
	amount, ok := s.amounts[reference]
	s.mu.Unlock()
	if !ok {
		return nil, &GatewayError{Op: "verify", Message: "unknown reference " + reference}
	}
	now := time.Now()
	return &VerifyResult{Status: StatusSuccess, AmountMinor: amount, PaidAt: &now}, nil
}
