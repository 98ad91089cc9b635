package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/store"
)

var ErrNotProfessional = errors.New("profile: account is not a professional")

// Certification requires an ID number of at least this many characters at
// profile-save time. The badge is derived then and never revisited, except by
// an admin override.
const minIDNumberLen = 8

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type SaveParams struct {
	Service  string
	Bio      string
	Price    string
	IDNumber string
	License  string
}

// Save creates or updates the caller's provider profile. Name and location
// come from the account record; rating state survives re-saves.
func (s *Service) Save(ctx context.Context, email string, params SaveParams) (Professional, error) {
	if params.Bio == "" {
		return Professional{}, fmt.Errorf("profile: bio is required")
	}
	if !ValidService(params.Service) {
		return Professional{}, fmt.Errorf("profile: unknown service %q", params.Service)
	}
	if !ValidPriceRange(params.Price) {
		return Professional{}, fmt.Errorf("profile: unknown price range %q", params.Price)
	}

	var saved Professional
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var account auth.User
		if err := tx.Get(store.Users, email, &account); err != nil {
			return err
		}
		if account.Type != auth.TypeProfessional {
			return ErrNotProfessional
		}

		idNumber := strings.TrimSpace(params.IDNumber)
		pro := Professional{
			Email:       email,
			Name:        account.Name,
			Service:     params.Service,
			Bio:         params.Bio,
			Price:       params.Price,
			Location:    account.Location,
			Rating:      5.0,
			Certified:   len(idNumber) >= minIDNumberLen,
			IDNumber:    idNumber,
			License:     strings.TrimSpace(params.License),
		}

		var existing Professional
		switch err := tx.Get(store.Professionals, email, &existing); {
		case err == nil:
			pro.Rating = existing.Rating
			pro.RatingCount = existing.RatingCount
		case errors.Is(err, store.ErrNotFound):
			// fresh profile keeps the 5.0 default
		default:
			return err
		}

		saved = pro
		return tx.Put(store.Professionals, email, pro)
	})
	if err != nil {
		return Professional{}, err
	}
	return saved, nil
}

// Get returns one provider profile.
func (s *Service) Get(ctx context.Context, email string) (Professional, error) {
	var pro Professional
	if err := s.store.Get(ctx, store.Professionals, email, &pro); err != nil {
		return Professional{}, err
	}
	return pro, nil
}

// List returns every provider profile in insertion order.
func (s *Service) List(ctx context.Context) ([]Professional, error) {
	var pros []Professional
	if err := s.store.List(ctx, store.Professionals, &pros); err != nil {
		return nil, err
	}
	return pros, nil
}

// Search lists profiles and applies the filter predicates.
func (s *Service) Search(ctx context.Context, f Filter) ([]Professional, error) {
	pros, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(pros), nil
}
