package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/hirewise/internal/store"
)

const (
	TypeTopup   = "Top Up"
	TypePayment = "Payment"

	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusFailed    = "Failed"

	MethodMpesa = "M-Pesa"
	MethodCard  = "Card"
)

var (
	ErrInvalidAmount  = errors.New("payments: amount must be positive")
	ErrUnknownMethod  = errors.New("payments: unknown payment method")
	ErrProviderDenied = errors.New("payments: provider declined the charge")
)

// Payment is one money movement on an account.
type Payment struct {
	ID      string    `json:"id"`
	User    string    `json:"user"`
	Type    string    `json:"type"`
	Amount  float64   `json:"amount"`
	Method  string    `json:"method"`
	Status  string    `json:"status"`
	Ref     string    `json:"ref,omitempty"`
	Created time.Time `json:"created"`
}

// Provider charges an account with an external payment rail and returns a
// provider reference on success.
type Provider interface {
	Charge(ctx context.Context, user string, amount float64) (ref string, err error)
}

// MpesaProvider simulates an STK-push charge. Every charge succeeds and gets
// a synthetic receipt number; swapping in the real Daraja client only needs a
// new Provider.
type MpesaProvider struct{}

func (MpesaProvider) Charge(ctx context.Context, user string, amount float64) (string, error) {
	ref := "MP" + uuid.NewString()[:10]
	log.Printf("payments: simulated M-Pesa charge of %.2f for %s (ref %s)", amount, user, ref)
	return ref, nil
}

type Service struct {
	store    store.Store
	provider Provider
	now      func() time.Time
	newID    func() string
}

func NewService(st store.Store, provider Provider) *Service {
	if provider == nil {
		provider = MpesaProvider{}
	}
	return &Service{
		store:    st,
		provider: provider,
		now:      time.Now,
		newID:    func() string { return uuid.NewString()[:8] },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.newID = gen
	return s
}

// Topup charges the user through the provider and records the outcome. A
// declined charge still leaves a Failed record behind.
func (s *Service) Topup(ctx context.Context, user string, amount float64, method string) (Payment, error) {
	if amount <= 0 {
		return Payment{}, ErrInvalidAmount
	}
	if method != MethodMpesa && method != MethodCard {
		return Payment{}, ErrUnknownMethod
	}

	payment := Payment{
		ID:      s.newID(),
		User:    user,
		Type:    TypeTopup,
		Amount:  amount,
		Method:  method,
		Status:  StatusConfirmed,
		Created: s.now(),
	}

	ref, chargeErr := s.provider.Charge(ctx, user, amount)
	if chargeErr != nil {
		payment.Status = StatusFailed
	} else {
		payment.Ref = ref
	}

	err := s.store.Update(ctx, func(tx store.Tx) error {
		return tx.Put(store.Payments, payment.ID, payment)
	})
	if err != nil {
		return Payment{}, err
	}
	if chargeErr != nil {
		return payment, fmt.Errorf("payments: topup: %w", chargeErr)
	}
	return payment, nil
}

// History lists the user's payments in insertion order.
func (s *Service) History(ctx context.Context, user string) ([]Payment, error) {
	var all []Payment
	if err := s.store.List(ctx, store.Payments, &all); err != nil {
		return nil, err
	}
	out := make([]Payment, 0)
	for _, p := range all {
		if p.User == user {
			out = append(out, p)
		}
	}
	return out, nil
}
