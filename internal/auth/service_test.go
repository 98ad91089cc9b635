package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sudo-init-do/hirewise/internal/store"
	"github.com/sudo-init-do/hirewise/internal/store/jsonstore"
)

type staticLocator struct {
	area string
}

func (l staticLocator) Resolve(ctx context.Context) (string, error) {
	return l.area, nil
}

type authFixture struct {
	svc *Service
	st  store.Store
	now time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	st, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	f := &authFixture{st: st, now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	f.svc = NewService(st, nil, staticLocator{area: "Westlands"}, "test-secret").
		WithClock(func() time.Time { return f.now }).
		WithCodeGenerator(func() string { return "ABC123" })
	return f
}

func validSignup() SignupParams {
	return SignupParams{
		Name:     "Njeri",
		Email:    "njeri@example.com",
		Contact:  "0712345678",
		Password: "s3cret",
		Type:     TypeClient,
	}
}

func (f *authFixture) signupAndVerify(t *testing.T) string {
	t.Helper()
	if err := f.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := f.svc.Verify(context.Background(), "njeri@example.com", "ABC123")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return token
}

func TestSignupThenVerifyCreatesAccount(t *testing.T) {
	f := newAuthFixture(t)
	token := f.signupAndVerify(t)
	if token == "" {
		t.Fatal("empty token")
	}

	user, err := f.svc.Account(context.Background(), "njeri@example.com")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if !user.Verified || user.Location != "Westlands" || user.Type != TypeClient {
		t.Fatalf("account = %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked from Account")
	}
}

func TestSignupDoesNotCreateAccountBeforeVerify(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	var user User
	err := f.st.Get(context.Background(), store.Users, "njeri@example.com", &user)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("account exists before verification: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signupAndVerify(t)

	err := f.svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignupValidation(t *testing.T) {
	f := newAuthFixture(t)

	params := validSignup()
	params.Type = "Wizard"
	if err := f.svc.Signup(context.Background(), params); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}

	params = validSignup()
	params.Contact = ""
	if err := f.svc.Signup(context.Background(), params); err == nil {
		t.Fatal("signup without contact succeeded")
	}
}

func TestVerifyWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Verify(context.Background(), "njeri@example.com", "WRONG0"); !errors.Is(err, ErrBadCode) {
		t.Fatalf("err = %v, want ErrBadCode", err)
	}
}

func TestVerifyCodeIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Verify(context.Background(), "njeri@example.com", "abc123"); err != nil {
		t.Fatalf("Verify lowercase: %v", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatal(err)
	}

	f.now = f.now.Add(16 * time.Minute)
	if _, err := f.svc.Verify(context.Background(), "njeri@example.com", "ABC123"); !errors.Is(err, ErrBadCode) {
		t.Fatalf("err = %v, want ErrBadCode after expiry", err)
	}
}

func TestResendCodeWithoutPendingSignup(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.ResendCode(context.Background(), "ghost@example.com"); !errors.Is(err, ErrBadCode) {
		t.Fatalf("err = %v, want ErrBadCode", err)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.signupAndVerify(t)

	token, err := f.svc.Login(context.Background(), "njeri@example.com", "s3cret")
	if err != nil || token == "" {
		t.Fatalf("Login: %q, %v", token, err)
	}

	if _, err := f.svc.Login(context.Background(), "njeri@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v", err)
	}
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.signupAndVerify(t)

	err := f.st.Update(context.Background(), func(tx store.Tx) error {
		var user User
		if err := tx.Get(store.Users, "njeri@example.com", &user); err != nil {
			return err
		}
		user.Suspended = true
		return tx.Put(store.Users, "njeri@example.com", user)
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Login(context.Background(), "njeri@example.com", "s3cret"); !errors.Is(err, ErrAccountSuspended) {
		t.Fatalf("err = %v, want ErrAccountSuspended", err)
	}
}
