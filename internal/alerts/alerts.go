// Package alerts dispatches short notifications (verification codes, quote and
// job events) to users. Delivery is best-effort: the marketplace records the
// outcome of an operation regardless of whether the notification went out.
package alerts

import (
	"context"
	"log"
)

// Subjects used across the platform.
const (
	SubjectVerification  = "HireWise Email Verification"
	SubjectQuoteAccepted = "Your quote was accepted"
	SubjectJobCompleted  = "Job marked as completed"
	SubjectNewMessage    = "New message on HireWise"
)

// Notifier delivers a plain-text notification to a recipient address.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// LogNotifier writes notifications to the process log. It is the fallback
// when no mail transport is configured and doubles as the test double.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, to, subject, body string) error {
	log.Printf("notify %s: %s: %s", to, subject, body)
	return nil
}
