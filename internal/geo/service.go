package geo

import (
	"context"
	"sort"

	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/marketplace"
	"github.com/sudo-init-do/hirewise/internal/profile"
	"github.com/sudo-init-do/hirewise/internal/store"
)

// StaticResolver resolves every signup to a fixed area. It stands in for a
// device- or IP-based locator, which the API has no access to.
type StaticResolver struct {
	Area string
}

func (r StaticResolver) Resolve(ctx context.Context) (string, error) {
	if r.Area == "" {
		return DefaultOrigin, nil
	}
	return r.Area, nil
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// RankedProfessional pairs a provider profile with its distance from the
// caller's area.
type RankedProfessional struct {
	profile.Professional
	DistanceKm float64 `json:"distance_km"`
}

// RankedJob pairs an open job with the distance to its client's area.
type RankedJob struct {
	marketplace.Job
	DistanceKm float64 `json:"distance_km"`
}

// NearestProfessionals lists provider profiles ordered by distance from the
// given area, closest first. Ties keep insertion order. A non-empty service
// narrows the listing to that trade.
func (s *Service) NearestProfessionals(ctx context.Context, from, service string, limit int) ([]RankedProfessional, error) {
	if from == "" {
		from = DefaultOrigin
	}
	var pros []profile.Professional
	if err := s.store.List(ctx, store.Professionals, &pros); err != nil {
		return nil, err
	}

	ranked := make([]RankedProfessional, 0, len(pros))
	for _, p := range pros {
		if service != "" && service != "All" && p.Service != service {
			continue
		}
		ranked = append(ranked, RankedProfessional{
			Professional: p,
			DistanceKm:   Distance(from, p.Location),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// NearestJobs lists open jobs ordered by distance from the given area to the
// posting client's area, closest first.
func (s *Service) NearestJobs(ctx context.Context, from string, limit int) ([]RankedJob, error) {
	if from == "" {
		from = DefaultOrigin
	}
	var jobs []marketplace.Job
	if err := s.store.List(ctx, store.Jobs, &jobs); err != nil {
		return nil, err
	}
	var users []auth.User
	if err := s.store.List(ctx, store.Users, &users); err != nil {
		return nil, err
	}
	locations := make(map[string]string, len(users))
	for _, u := range users {
		locations[u.Email] = u.Location
	}

	ranked := make([]RankedJob, 0, len(jobs))
	for _, j := range jobs {
		if j.Status != marketplace.JobOpen {
			continue
		}
		ranked = append(ranked, RankedJob{
			Job:        j,
			DistanceKm: Distance(from, locations[j.Client]),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
