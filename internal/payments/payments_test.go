package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sudo-init-do/hirewise/internal/store"
	"github.com/sudo-init-do/hirewise/internal/store/jsonstore"
)

type fakeProvider struct {
	ref string
	err error
}

func (p fakeProvider) Charge(ctx context.Context, user string, amount float64) (string, error) {
	return p.ref, p.err
}

func newTestService(t *testing.T, provider Provider) (*Service, store.Store) {
	t.Helper()
	st, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seq := 0
	svc := NewService(st, provider).
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }).
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("p-%d", seq) })
	return svc, st
}

func TestTopupConfirmed(t *testing.T) {
	svc, _ := newTestService(t, fakeProvider{ref: "MP123"})

	payment, err := svc.Topup(context.Background(), "u@example.com", 500, MethodMpesa)
	if err != nil {
		t.Fatalf("Topup: %v", err)
	}
	if payment.Status != StatusConfirmed || payment.Ref != "MP123" {
		t.Fatalf("payment = %+v", payment)
	}
	if payment.Type != TypeTopup || payment.Amount != 500 {
		t.Fatalf("payment = %+v", payment)
	}
}

func TestTopupDeclinedLeavesFailedRecord(t *testing.T) {
	svc, _ := newTestService(t, fakeProvider{err: ErrProviderDenied})

	payment, err := svc.Topup(context.Background(), "u@example.com", 500, MethodMpesa)
	if !errors.Is(err, ErrProviderDenied) {
		t.Fatalf("err = %v, want ErrProviderDenied", err)
	}
	if payment.Status != StatusFailed {
		t.Fatalf("status = %q, want Failed", payment.Status)
	}

	history, err := svc.History(context.Background(), "u@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Status != StatusFailed {
		t.Fatalf("history = %+v, want the failed record kept", history)
	}
}

func TestTopupValidation(t *testing.T) {
	svc, _ := newTestService(t, fakeProvider{ref: "MP123"})
	ctx := context.Background()

	if _, err := svc.Topup(ctx, "u@example.com", 0, MethodMpesa); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: err = %v", err)
	}
	if _, err := svc.Topup(ctx, "u@example.com", -5, MethodCard); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount: err = %v", err)
	}
	if _, err := svc.Topup(ctx, "u@example.com", 100, "Barter"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("unknown method: err = %v", err)
	}
}

func TestHistoryFiltersByUser(t *testing.T) {
	svc, _ := newTestService(t, fakeProvider{ref: "MP123"})
	ctx := context.Background()

	svc.Topup(ctx, "a@example.com", 100, MethodMpesa)
	svc.Topup(ctx, "b@example.com", 200, MethodCard)
	svc.Topup(ctx, "a@example.com", 300, MethodMpesa)

	history, err := svc.History(ctx, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].Amount != 100 || history[1].Amount != 300 {
		t.Fatalf("history = %+v", history)
	}
}
