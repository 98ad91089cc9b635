package marketplace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/profile"
	"github.com/sudo-init-do/hirewise/internal/store"
	"github.com/sudo-init-do/hirewise/internal/store/jsonstore"
)

type sentAlert struct {
	to      string
	subject string
}

type recordingNotifier struct {
	sent []sentAlert
}

func (r *recordingNotifier) Notify(ctx context.Context, to, subject, body string) error {
	r.sent = append(r.sent, sentAlert{to: to, subject: subject})
	return nil
}

type fixture struct {
	svc      *Service
	st       store.Store
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	notifier := &recordingNotifier{}
	seq := 0
	svc := NewService(st, notifier).
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }).
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) })

	err = st.Update(context.Background(), func(tx store.Tx) error {
		users := []auth.User{
			{Email: "client@example.com", Name: "Njeri", Type: auth.TypeClient, Location: "Kilimani"},
			{Email: "pro1@example.com", Name: "Kamau", Type: auth.TypeProfessional},
			{Email: "pro2@example.com", Name: "Otieno", Type: auth.TypeProfessional},
		}
		for _, u := range users {
			if err := tx.Put(store.Users, u.Email, u); err != nil {
				return err
			}
		}
		pros := []profile.Professional{
			{Email: "pro1@example.com", Service: "Plumber", Rating: 5.0},
			{Email: "pro2@example.com", Service: "Plumber", Rating: 5.0},
		}
		for _, p := range pros {
			if err := tx.Put(store.Professionals, p.Email, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &fixture{svc: svc, st: st, notifier: notifier}
}

func validJob() PostJobParams {
	return PostJobParams{
		Service:     "Plumber",
		Description: "Leaking kitchen tap",
		Budget:      "50-100",
		Timing:      "Urgent",
	}
}

func (f *fixture) postJob(t *testing.T) Job {
	t.Helper()
	job, err := f.svc.PostJob(context.Background(), "client@example.com", validJob())
	if err != nil {
		t.Fatalf("PostJob: %v", err)
	}
	return job
}

func (f *fixture) sendQuote(t *testing.T, pro, jobID string, amount float64) Quote {
	t.Helper()
	q, err := f.svc.SendQuote(context.Background(), pro, SendQuoteParams{
		JobID: jobID, Amount: amount, Message: "Can do", Availability: "Immediately",
	})
	if err != nil {
		t.Fatalf("SendQuote: %v", err)
	}
	return q
}

func TestPostJobStartsOpen(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)

	if job.Status != JobOpen {
		t.Fatalf("status = %q, want Open", job.Status)
	}
	open, err := f.svc.OpenJobs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != job.ID {
		t.Fatalf("open jobs = %+v", open)
	}
}

func TestPostJobValidation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name   string
		mutate func(*PostJobParams)
	}{
		{"empty description", func(p *PostJobParams) { p.Description = "" }},
		{"unknown service", func(p *PostJobParams) { p.Service = "Tailor" }},
		{"unknown budget", func(p *PostJobParams) { p.Budget = "1-2" }},
		{"unknown timing", func(p *PostJobParams) { p.Timing = "Someday" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validJob()
			tc.mutate(&params)
			if _, err := f.svc.PostJob(context.Background(), "client@example.com", params); err == nil {
				t.Fatal("PostJob succeeded")
			}
		})
	}
}

func TestSendQuoteRequiresOpenJob(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q1 := f.sendQuote(t, "pro1@example.com", job.ID, 100)

	if _, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q1.ID); err != nil {
		t.Fatalf("AcceptQuote: %v", err)
	}

	_, err := f.svc.SendQuote(context.Background(), "pro2@example.com", SendQuoteParams{
		JobID: job.ID, Amount: 150, Message: "Me too", Availability: "24 hours",
	})
	if !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("err = %v, want ErrJobNotOpen", err)
	}
}

func TestSendQuoteUnknownJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SendQuote(context.Background(), "pro1@example.com", SendQuoteParams{
		JobID: "missing", Amount: 100, Message: "hi", Availability: "1 week",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// Accepting one quote must settle every sibling in the same step: exactly one
// Accepted, the rest Rejected, and the job assigned to the accepted
// professional.
func TestAcceptQuoteIsExclusive(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q1 := f.sendQuote(t, "pro1@example.com", job.ID, 100)
	q2 := f.sendQuote(t, "pro2@example.com", job.ID, 150)

	updated, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q1.ID)
	if err != nil {
		t.Fatalf("AcceptQuote: %v", err)
	}
	if updated.Status != JobAssigned || updated.AssignedTo != "pro1@example.com" {
		t.Fatalf("job after accept = %+v", updated)
	}

	quotes, err := f.svc.QuotesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatal(err)
	}
	statuses := map[string]string{}
	for _, q := range quotes {
		statuses[q.ID] = q.Status
	}
	if statuses[q1.ID] != QuoteAccepted || statuses[q2.ID] != QuoteRejected {
		t.Fatalf("quote statuses = %v", statuses)
	}
}

func TestAcceptQuoteNotifiesProfessional(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q := f.sendQuote(t, "pro1@example.com", job.ID, 100)

	if _, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q.ID); err != nil {
		t.Fatal(err)
	}
	if len(f.notifier.sent) == 0 {
		t.Fatal("no notification sent")
	}
	last := f.notifier.sent[len(f.notifier.sent)-1]
	if last.to != "pro1@example.com" {
		t.Fatalf("notified %s, want pro1", last.to)
	}
}

func TestAcceptQuoteOwnerOnly(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q := f.sendQuote(t, "pro1@example.com", job.ID, 100)

	_, err := f.svc.AcceptQuote(context.Background(), "intruder@example.com", job.ID, q.ID)
	if !errors.Is(err, ErrNotJobOwner) {
		t.Fatalf("err = %v, want ErrNotJobOwner", err)
	}
}

func TestAcceptQuoteWrongJob(t *testing.T) {
	f := newFixture(t)
	jobA := f.postJob(t)
	jobB := f.postJob(t)
	q := f.sendQuote(t, "pro1@example.com", jobB.ID, 100)

	_, err := f.svc.AcceptQuote(context.Background(), "client@example.com", jobA.ID, q.ID)
	if !errors.Is(err, ErrQuoteMismatch) {
		t.Fatalf("err = %v, want ErrQuoteMismatch", err)
	}
}

func TestAcceptQuoteTwice(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q1 := f.sendQuote(t, "pro1@example.com", job.ID, 100)
	q2 := f.sendQuote(t, "pro2@example.com", job.ID, 150)

	if _, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q1.ID); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q2.ID)
	if !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("err = %v, want ErrJobNotOpen", err)
	}
}

func TestCompleteJob(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t)
	q := f.sendQuote(t, "pro1@example.com", job.ID, 100)

	if _, err := f.svc.CompleteJob(context.Background(), "client@example.com", job.ID); !errors.Is(err, ErrJobNotAssigned) {
		t.Fatalf("completing open job: err = %v, want ErrJobNotAssigned", err)
	}

	if _, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q.ID); err != nil {
		t.Fatal(err)
	}
	done, err := f.svc.CompleteJob(context.Background(), "client@example.com", job.ID)
	if err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}
	if done.Status != JobCompleted {
		t.Fatalf("status = %q, want Completed", done.Status)
	}
}

func (f *fixture) completedJob(t *testing.T) Job {
	t.Helper()
	job := f.postJob(t)
	q := f.sendQuote(t, "pro1@example.com", job.ID, 100)
	if _, err := f.svc.AcceptQuote(context.Background(), "client@example.com", job.ID, q.ID); err != nil {
		t.Fatal(err)
	}
	done, err := f.svc.CompleteJob(context.Background(), "client@example.com", job.ID)
	if err != nil {
		t.Fatal(err)
	}
	return done
}

func (f *fixture) rate(t *testing.T, job Job, rating float64) {
	t.Helper()
	_, err := f.svc.SubmitFeedback(context.Background(), FeedbackParams{
		JobID:                  job.ID,
		Reviewer:               "client@example.com",
		Reviewed:               "pro1@example.com",
		ReviewerType:           ReviewerClient,
		Rating:                 rating,
		ReviewedIsProfessional: true,
	})
	if err != nil {
		t.Fatalf("SubmitFeedback(%v): %v", rating, err)
	}
}

func (f *fixture) proRating(t *testing.T) (float64, int) {
	t.Helper()
	var pro profile.Professional
	if err := f.st.Get(context.Background(), store.Professionals, "pro1@example.com", &pro); err != nil {
		t.Fatal(err)
	}
	return pro.Rating, pro.RatingCount
}

// The display default of 5.0 carries no weight: the first real rating replaces
// it outright.
func TestFirstRatingReplacesDefault(t *testing.T) {
	f := newFixture(t)
	job := f.completedJob(t)

	f.rate(t, job, 4)
	if rating, count := f.proRating(t); rating != 4.0 || count != 1 {
		t.Fatalf("rating = %v/%d, want 4.0/1", rating, count)
	}
}

func TestRatingFoldSequence(t *testing.T) {
	f := newFixture(t)
	job := f.completedJob(t)

	f.rate(t, job, 5)
	f.rate(t, job, 4)
	if rating, count := f.proRating(t); rating != 4.5 || count != 2 {
		t.Fatalf("after 5,4: %v/%d, want 4.5/2", rating, count)
	}

	f.rate(t, job, 4)
	// (4.5*2 + 4) / 3 = 4.333..., rounded to one decimal.
	if rating, count := f.proRating(t); rating != 4.3 || count != 3 {
		t.Fatalf("after 5,4,4: %v/%d, want 4.3/3", rating, count)
	}
}

// The same multiset of ratings lands on the same aggregate whatever order
// they arrive in.
func TestRatingFoldOrderIndependent(t *testing.T) {
	orders := [][]float64{
		{5, 4, 4},
		{4, 5, 4},
		{4, 4, 5},
	}
	for _, ratings := range orders {
		f := newFixture(t)
		job := f.completedJob(t)
		for _, r := range ratings {
			f.rate(t, job, r)
		}
		if rating, count := f.proRating(t); rating != 4.3 || count != 3 {
			t.Fatalf("order %v: %v/%d, want 4.3/3", ratings, rating, count)
		}
	}
}

func TestFeedbackFoldsIntoClientAccount(t *testing.T) {
	f := newFixture(t)
	job := f.completedJob(t)

	_, err := f.svc.SubmitFeedback(context.Background(), FeedbackParams{
		JobID:                  job.ID,
		Reviewer:               "pro1@example.com",
		Reviewed:               "client@example.com",
		ReviewerType:           ReviewerProfessional,
		Rating:                 3,
		ReviewedIsProfessional: false,
	})
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}

	var user auth.User
	if err := f.st.Get(context.Background(), store.Users, "client@example.com", &user); err != nil {
		t.Fatal(err)
	}
	if user.Rating != 3.0 || user.RatingCount != 1 {
		t.Fatalf("client rating = %v/%d, want 3.0/1", user.Rating, user.RatingCount)
	}
}

func TestFeedbackValidation(t *testing.T) {
	f := newFixture(t)
	job := f.completedJob(t)

	for _, rating := range []float64{0, 6, 4.5, -1} {
		_, err := f.svc.SubmitFeedback(context.Background(), FeedbackParams{
			JobID: job.ID, Reviewer: "client@example.com", Reviewed: "pro1@example.com",
			ReviewerType: ReviewerClient, Rating: rating, ReviewedIsProfessional: true,
		})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %v: err = %v, want ErrInvalidRating", rating, err)
		}
	}

	_, err := f.svc.SubmitFeedback(context.Background(), FeedbackParams{
		JobID: job.ID, Reviewer: "client@example.com", Reviewed: "pro1@example.com",
		ReviewerType: "stranger", Rating: 4, ReviewedIsProfessional: true,
	})
	if err == nil {
		t.Fatal("unknown reviewer type accepted")
	}
}

func TestFeedbackRequiresJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SubmitFeedback(context.Background(), FeedbackParams{
		JobID: "missing", Reviewer: "client@example.com", Reviewed: "pro1@example.com",
		ReviewerType: ReviewerClient, Rating: 4, ReviewedIsProfessional: true,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReviewsForListsInOrder(t *testing.T) {
	f := newFixture(t)
	job := f.completedJob(t)
	f.rate(t, job, 5)
	f.rate(t, job, 3)

	reviews, err := f.svc.ReviewsFor(context.Background(), "pro1@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 2 || reviews[0].Rating != 5 || reviews[1].Rating != 3 {
		t.Fatalf("reviews = %+v", reviews)
	}
}

func TestFoldRating(t *testing.T) {
	cases := []struct {
		average   float64
		count     int
		rating    float64
		wantAvg   float64
		wantCount int
	}{
		{5.0, 0, 4, 4.0, 1},   // first rating replaces the default
		{4.0, 1, 5, 4.5, 2},
		{4.5, 2, 4, 4.3, 3},   // 13/3 rounds down
		{4.8, 2, 5, 4.9, 3},   // 14.6/3 = 4.866... rounds up
		{3.0, 1, 4, 3.5, 2},   // .5 rounds away from zero
	}
	for _, tc := range cases {
		gotAvg, gotCount := foldRating(tc.average, tc.count, tc.rating)
		if gotAvg != tc.wantAvg || gotCount != tc.wantCount {
			t.Errorf("foldRating(%v, %d, %v) = %v/%d, want %v/%d",
				tc.average, tc.count, tc.rating, gotAvg, gotCount, tc.wantAvg, tc.wantCount)
		}
	}
}
