package marketplace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/hirewise/internal/alerts"
	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/profile"
	"github.com/sudo-init-do/hirewise/internal/store"
)

var (
	ErrJobNotOpen     = errors.New("marketplace: job is not open")
	ErrJobNotAssigned = errors.New("marketplace: job is not assigned")
	ErrNotJobOwner    = errors.New("marketplace: job belongs to another client")
	ErrQuoteMismatch  = errors.New("marketplace: quote does not belong to job")
	ErrInvalidRating  = errors.New("marketplace: rating must be 1, 2, 3, 4 or 5")
)

type Service struct {
	store    store.Store
	notifier alerts.Notifier
	now      func() time.Time
	newID    func() string
}

func NewService(st store.Store, notifier alerts.Notifier) *Service {
	if notifier == nil {
		notifier = alerts.LogNotifier{}
	}
	return &Service{
		store:    st,
		notifier: notifier,
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

type PostJobParams struct {
	Service     string
	Description string
	Budget      string
	Timing      string
}

// PostJob appends a new job with status Open.
func (s *Service) PostJob(ctx context.Context, client string, params PostJobParams) (Job, error) {
	if params.Description == "" {
		return Job{}, fmt.Errorf("marketplace: description is required")
	}
	if !profile.ValidService(params.Service) {
		return Job{}, fmt.Errorf("marketplace: unknown service %q", params.Service)
	}
	if !validBudget(params.Budget) {
		return Job{}, fmt.Errorf("marketplace: unknown budget range %q", params.Budget)
	}
	if !validTiming(params.Timing) {
		return Job{}, fmt.Errorf("marketplace: unknown timing %q", params.Timing)
	}

	job := Job{
		ID:          s.newID(),
		Client:      client,
		Service:     params.Service,
		Description: params.Description,
		Budget:      params.Budget,
		Timing:      params.Timing,
		Status:      JobOpen,
		Created:     s.now(),
	}
	err := s.store.Update(ctx, func(tx store.Tx) error {
		return tx.Put(store.Jobs, job.ID, job)
	})
	if err != nil {
		return Job{}, err
	}
	return job, nil
}

// Job returns a single job record.
func (s *Service) Job(ctx context.Context, jobID string) (Job, error) {
	var job Job
	if err := s.store.Get(ctx, store.Jobs, jobID, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// OpenJobs lists jobs still accepting quotes, in insertion order.
func (s *Service) OpenJobs(ctx context.Context) ([]Job, error) {
	jobs, err := s.allJobs(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == JobOpen {
			open = append(open, job)
		}
	}
	return open, nil
}

// JobsByClient lists the jobs a client has posted.
func (s *Service) JobsByClient(ctx context.Context, client string) ([]Job, error) {
	jobs, err := s.allJobs(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]Job, 0)
	for _, job := range jobs {
		if job.Client == client {
			mine = append(mine, job)
		}
	}
	return mine, nil
}

func (s *Service) allJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := s.store.List(ctx, store.Jobs, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

type SendQuoteParams struct {
	JobID        string
	Amount       float64
	Message      string
	Availability string
}

// SendQuote appends a quote with status Sent. The referenced job must exist
// and still be open.
func (s *Service) SendQuote(ctx context.Context, professional string, params SendQuoteParams) (Quote, error) {
	if params.Message == "" {
		return Quote{}, fmt.Errorf("marketplace: message is required")
	}
	if params.Amount <= 0 {
		return Quote{}, fmt.Errorf("marketplace: amount must be positive")
	}
	if !validAvailability(params.Availability) {
		return Quote{}, fmt.Errorf("marketplace: unknown availability %q", params.Availability)
	}

	quote := Quote{
		ID:           s.newID(),
		JobID:        params.JobID,
		Professional: professional,
		Amount:       params.Amount,
		Message:      params.Message,
		Availability: params.Availability,
		Status:       QuoteSent,
		Created:      s.now(),
	}
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var job Job
		if err := tx.Get(store.Jobs, params.JobID, &job); err != nil {
			return err
		}
		if job.Status != JobOpen {
			return ErrJobNotOpen
		}
		return tx.Put(store.Quotes, quote.ID, quote)
	})
	if err != nil {
		return Quote{}, err
	}
	return quote, nil
}

// QuotesForJob lists every quote submitted against a job.
func (s *Service) QuotesForJob(ctx context.Context, jobID string) ([]Quote, error) {
	quotes, err := s.allQuotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quote, 0)
	for _, q := range quotes {
		if q.JobID == jobID {
			out = append(out, q)
		}
	}
	return out, nil
}

// QuotesByProfessional lists the quotes a professional has sent.
func (s *Service) QuotesByProfessional(ctx context.Context, professional string) ([]Quote, error) {
	quotes, err := s.allQuotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quote, 0)
	for _, q := range quotes {
		if q.Professional == professional {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *Service) allQuotes(ctx context.Context) ([]Quote, error) {
	var quotes []Quote
	if err := s.store.List(ctx, store.Quotes, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// AcceptQuote assigns the job to the chosen quote's professional and settles
// every quote on the job in one atomic update: the chosen one becomes
// Accepted, all siblings become Rejected.
func (s *Service) AcceptQuote(ctx context.Context, client, jobID, quoteID string) (Job, error) {
	var (
		job      Job
		accepted Quote
	)
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Get(store.Jobs, jobID, &job); err != nil {
			return err
		}
		if job.Client != client {
			return ErrNotJobOwner
		}
		if job.Status != JobOpen {
			return ErrJobNotOpen
		}

		if err := tx.Get(store.Quotes, quoteID, &accepted); err != nil {
			return err
		}
		if accepted.JobID != jobID {
			return ErrQuoteMismatch
		}

		var quotes []Quote
		if err := tx.List(store.Quotes, &quotes); err != nil {
			return err
		}
		for _, q := range quotes {
			if q.JobID != jobID {
				continue
			}
			if q.ID == quoteID {
				q.Status = QuoteAccepted
			} else {
				q.Status = QuoteRejected
			}
			if err := tx.Put(store.Quotes, q.ID, q); err != nil {
				return err
			}
		}
		accepted.Status = QuoteAccepted

		job.Status = JobAssigned
		job.AssignedTo = accepted.Professional
		return tx.Put(store.Jobs, jobID, job)
	})
	if err != nil {
		return Job{}, err
	}

	// Best-effort notification; the assignment already committed.
	body := fmt.Sprintf("Your quote of %.0f for job %s was accepted.", accepted.Amount, jobID)
	if err := s.notifier.Notify(ctx, accepted.Professional, alerts.SubjectQuoteAccepted, body); err != nil {
		log.Printf("marketplace: notify accepted quote: %v", err)
	}
	return job, nil
}

// CompleteJob moves an assigned job to Completed. The transition happens
// unconditionally when the client marks the job done; feedback from either
// party is collected afterwards and does not gate it.
func (s *Service) CompleteJob(ctx context.Context, client, jobID string) (Job, error) {
	var job Job
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Get(store.Jobs, jobID, &job); err != nil {
			return err
		}
		if job.Client != client {
			return ErrNotJobOwner
		}
		if job.Status != JobAssigned {
			return ErrJobNotAssigned
		}
		job.Status = JobCompleted
		return tx.Put(store.Jobs, jobID, job)
	})
	if err != nil {
		return Job{}, err
	}

	if job.AssignedTo != "" {
		body := fmt.Sprintf("Job %s was marked completed. Please rate your experience.", jobID)
		if err := s.notifier.Notify(ctx, job.AssignedTo, alerts.SubjectJobCompleted, body); err != nil {
			log.Printf("marketplace: notify job completed: %v", err)
		}
	}
	return job, nil
}

type FeedbackParams struct {
	JobID        string
	Reviewer     string
	Reviewed     string
	ReviewerType string
	Rating       float64
	Text         string

	// ReviewedIsProfessional selects which collection carries the reviewed
	// party's aggregate: the professionals profile or the client account.
	ReviewedIsProfessional bool
}

// SubmitFeedback appends an immutable review and folds the rating into the
// reviewed party's running average inside the same update.
func (s *Service) SubmitFeedback(ctx context.Context, params FeedbackParams) (Review, error) {
	if params.Rating != math.Trunc(params.Rating) || params.Rating < 1 || params.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if params.ReviewerType != ReviewerClient && params.ReviewerType != ReviewerProfessional {
		return Review{}, fmt.Errorf("marketplace: unknown reviewer type %q", params.ReviewerType)
	}

	review := Review{
		ID:           s.newID(),
		JobID:        params.JobID,
		Reviewer:     params.Reviewer,
		Reviewed:     params.Reviewed,
		ReviewerType: params.ReviewerType,
		Rating:       params.Rating,
		Text:         params.Text,
		Created:      s.now(),
	}

	err := s.store.Update(ctx, func(tx store.Tx) error {
		var job Job
		if err := tx.Get(store.Jobs, params.JobID, &job); err != nil {
			return err
		}

		if err := tx.Put(store.Reviews, review.ID, review); err != nil {
			return err
		}

		if params.ReviewedIsProfessional {
			var pro profile.Professional
			if err := tx.Get(store.Professionals, params.Reviewed, &pro); err != nil {
				return err
			}
			pro.Rating, pro.RatingCount = foldRating(pro.Rating, pro.RatingCount, params.Rating)
			return tx.Put(store.Professionals, params.Reviewed, pro)
		}

		var user auth.User
		if err := tx.Get(store.Users, params.Reviewed, &user); err != nil {
			return err
		}
		user.Rating, user.RatingCount = foldRating(user.Rating, user.RatingCount, params.Rating)
		return tx.Put(store.Users, params.Reviewed, user)
	})
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

// ReviewsFor lists the reviews written about a party, in insertion order.
func (s *Service) ReviewsFor(ctx context.Context, reviewed string) ([]Review, error) {
	var reviews []Review
	if err := s.store.List(ctx, store.Reviews, &reviews); err != nil {
		return nil, err
	}
	out := make([]Review, 0)
	for _, r := range reviews {
		if r.Reviewed == reviewed {
			out = append(out, r)
		}
	}
	return out, nil
}

// foldRating folds one new rating into a running average. With count zero the
// result is the new rating exactly, so a profile's display default never
// leaks into the aggregate. Rounding is to one decimal, half away from zero
// (math.Round); see DESIGN.md.
func foldRating(average float64, count int, rating float64) (float64, int) {
	total := average*float64(count) + rating
	newCount := count + 1
	return math.Round(total/float64(newCount)*10) / 10, newCount
}
