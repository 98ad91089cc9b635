package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/hirewise/internal/alerts"
	"github.com/sudo-init-do/hirewise/internal/store"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrAccountSuspended   = errors.New("auth: account suspended")
	ErrBadCode            = errors.New("auth: invalid or expired verification code")
	ErrUnknownType        = errors.New("auth: unknown account type")
)

// LocationResolver turns the signup request into a human-readable location
// string. Implementations live in the geo package; accuracy is advisory only.
type LocationResolver interface {
	Resolve(ctx context.Context) (string, error)
}

const (
	tokenTTL        = 72 * time.Hour
	verificationTTL = 15 * time.Minute
)

type pendingSignup struct {
	user    User
	code    string
	expires time.Time
}

type Service struct {
	store    store.Store
	notifier alerts.Notifier
	locator  LocationResolver
	secret   []byte
	now      func() time.Time
	newCode  func() string

	mu      sync.Mutex
	pending map[string]pendingSignup
}

func NewService(st store.Store, notifier alerts.Notifier, locator LocationResolver, secret string) *Service {
	if notifier == nil {
		notifier = alerts.LogNotifier{}
	}
	return &Service{
		store:    st,
		notifier: notifier,
		locator:  locator,
		secret:   []byte(secret),
		now:      time.Now,
		newCode:  func() string { return strings.ToUpper(uuid.NewString()[:6]) },
		pending:  make(map[string]pendingSignup),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithCodeGenerator(gen func() string) *Service {
	s.newCode = gen
	return s
}

type SignupParams struct {
	Name     string
	Email    string
	Contact  string
	Password string
	Type     string
}

// Signup validates the request, parks the account as pending, and dispatches a
// verification code. The account only exists once Verify succeeds.
func (s *Service) Signup(ctx context.Context, params SignupParams) error {
	if params.Name == "" || params.Email == "" || params.Contact == "" || params.Password == "" {
		return fmt.Errorf("auth: name, email, contact and password are required")
	}
	if params.Type != TypeClient && params.Type != TypeProfessional {
		return ErrUnknownType
	}

	var existing User
	err := s.store.Get(ctx, store.Users, params.Email, &existing)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("auth: check existing account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	code := s.newCode()
	s.mu.Lock()
	s.pending[params.Email] = pendingSignup{
		user: User{
			Name:         params.Name,
			Email:        params.Email,
			Contact:      params.Contact,
			Type:         params.Type,
			PasswordHash: string(hashed),
		},
		code:    code,
		expires: s.now().Add(verificationTTL),
	}
	s.mu.Unlock()

	body := fmt.Sprintf("Welcome to HireWise!\n\nYour verification code is: %s", code)
	return s.notifier.Notify(ctx, params.Email, alerts.SubjectVerification, body)
}

// ResendCode issues a fresh code for a pending signup.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	s.mu.Lock()
	p, ok := s.pending[email]
	if !ok {
		s.mu.Unlock()
		return ErrBadCode
	}
	p.code = s.newCode()
	p.expires = s.now().Add(verificationTTL)
	s.pending[email] = p
	s.mu.Unlock()

	body := fmt.Sprintf("Your new verification code is: %s", p.code)
	return s.notifier.Notify(ctx, email, alerts.SubjectVerification, body)
}

// Verify checks the code, resolves the signup location, persists the account,
// and returns a session token.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	s.mu.Lock()
	p, ok := s.pending[email]
	s.mu.Unlock()
	if !ok || !strings.EqualFold(code, p.code) || s.now().After(p.expires) {
		return "", ErrBadCode
	}

	user := p.user
	user.Location = "Location not set"
	if s.locator != nil {
		if loc, err := s.locator.Resolve(ctx); err == nil && loc != "" {
			user.Location = loc
		}
	}
	user.Verified = true
	user.Created = s.now()

	err := s.store.Update(ctx, func(tx store.Tx) error {
		var existing User
		if err := tx.Get(store.Users, email, &existing); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("auth: check existing account: %w", err)
		}
		return tx.Put(store.Users, email, user)
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	delete(s.pending, email)
	s.mu.Unlock()

	return s.issueToken(user)
}

// Login authenticates by email and password and returns a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var user User
	if err := s.store.Get(ctx, store.Users, email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth: load account: %w", err)
	}
	if user.Suspended {
		return "", ErrAccountSuspended
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// Account returns the stored record for an authenticated email.
func (s *Service) Account(ctx context.Context, email string) (User, error) {
	var user User
	if err := s.store.Get(ctx, store.Users, email, &user); err != nil {
		return User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) issueToken(user User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  user.Type,
		"exp":   s.now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}
