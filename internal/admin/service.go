package admin

import (
	"context"

	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/marketplace"
	"github.com/sudo-init-do/hirewise/internal/payments"
	"github.com/sudo-init-do/hirewise/internal/profile"
	"github.com/sudo-init-do/hirewise/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Stats is the moderation dashboard snapshot.
type Stats struct {
	Users         int            `json:"users"`
	Professionals int            `json:"professionals"`
	Jobs          int            `json:"jobs"`
	OpenJobs      int            `json:"open_jobs"`
	Quotes        int            `json:"quotes"`
	Reviews       int            `json:"reviews"`
	Payments      int            `json:"payments"`
	JobsByService map[string]int `json:"jobs_by_service"`
}

// Stats counts platform records and breaks jobs down by service.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		users   []auth.User
		pros    []profile.Professional
		jobs    []marketplace.Job
		quotes  []marketplace.Quote
		reviews []marketplace.Review
		ledger  []payments.Payment
	)
	if err := s.store.List(ctx, store.Users, &users); err != nil {
		return Stats{}, err
	}
	if err := s.store.List(ctx, store.Professionals, &pros); err != nil {
		return Stats{}, err
	}
	if err := s.store.List(ctx, store.Jobs, &jobs); err != nil {
		return Stats{}, err
	}
	if err := s.store.List(ctx, store.Quotes, &quotes); err != nil {
		return Stats{}, err
	}
	if err := s.store.List(ctx, store.Reviews, &reviews); err != nil {
		return Stats{}, err
	}
	if err := s.store.List(ctx, store.Payments, &ledger); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Users:         len(users),
		Professionals: len(pros),
		Jobs:          len(jobs),
		Quotes:        len(quotes),
		Reviews:       len(reviews),
		Payments:      len(ledger),
		JobsByService: make(map[string]int),
	}
	for _, j := range jobs {
		stats.JobsByService[j.Service]++
		if j.Status == marketplace.JobOpen {
			stats.OpenJobs++
		}
	}
	return stats, nil
}

// ListUsers returns every account without password material.
func (s *Service) ListUsers(ctx context.Context) ([]auth.User, error) {
	var users []auth.User
	if err := s.store.List(ctx, store.Users, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ListProfessionals returns every provider profile.
func (s *Service) ListProfessionals(ctx context.Context) ([]profile.Professional, error) {
	var pros []profile.Professional
	if err := s.store.List(ctx, store.Professionals, &pros); err != nil {
		return nil, err
	}
	return pros, nil
}

// SetCertified overrides a professional's certification badge.
func (s *Service) SetCertified(ctx context.Context, email string, certified bool) (profile.Professional, error) {
	var pro profile.Professional
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Get(store.Professionals, email, &pro); err != nil {
			return err
		}
		pro.Certified = certified
		return tx.Put(store.Professionals, email, pro)
	})
	if err != nil {
		return profile.Professional{}, err
	}
	return pro, nil
}

// SetSuspended flips an account's suspended flag. Suspended accounts cannot
// log in; existing tokens keep working until they expire.
func (s *Service) SetSuspended(ctx context.Context, email string, suspended bool) (auth.User, error) {
	var user auth.User
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Get(store.Users, email, &user); err != nil {
			return err
		}
		user.Suspended = suspended
		return tx.Put(store.Users, email, user)
	})
	if err != nil {
		return auth.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Promote makes an existing account an admin.
func (s *Service) Promote(ctx context.Context, email string) (auth.User, error) {
	var user auth.User
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Get(store.Users, email, &user); err != nil {
			return err
		}
		user.Type = auth.TypeAdmin
		return tx.Put(store.Users, email, user)
	})
	if err != nil {
		return auth.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
