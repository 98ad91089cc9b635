package marketplace

import "time"

// Job lifecycle. Status only ever advances Open -> Assigned -> Completed.
const (
	JobOpen      = "Open"
	JobAssigned  = "Assigned"
	JobCompleted = "Completed"
)

// Quote lifecycle. At most one quote per job holds Accepted; accepting one
// rejects every sibling in the same step.
const (
	QuoteSent     = "Sent"
	QuoteAccepted = "Accepted"
	QuoteRejected = "Rejected"
)

// Reviewer sides for feedback records.
const (
	ReviewerClient       = "client"
	ReviewerProfessional = "professional"
)

var (
	Budgets        = []string{"0-50", "50-100", "100-300", "300-500", "500+"}
	Timings        = []string{"Urgent", "Scheduled"}
	Availabilities = []string{"Immediately", "24 hours", "1 week"}
)

// Job is a work request posted by a client, open for quotes until assigned.
type Job struct {
	ID          string    `json:"id"`
	Client      string    `json:"client"`
	Service     string    `json:"service"`
	Description string    `json:"description"`
	Budget      string    `json:"budget"`
	Timing      string    `json:"timing"`
	Status      string    `json:"status"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Created     time.Time `json:"created"`
}

// Quote is a priced offer from a professional against an open job.
type Quote struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	Professional string    `json:"professional"`
	Amount       float64   `json:"amount"`
	Message      string    `json:"message"`
	Availability string    `json:"availability"`
	Status       string    `json:"status"`
	Created      time.Time `json:"created"`
}

// Review is an immutable feedback record. Aggregates on the reviewed party
// are derived from these and updated in the same step that appends one.
type Review struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	Reviewer     string    `json:"reviewer"`
	Reviewed     string    `json:"reviewed"`
	ReviewerType string    `json:"reviewer_type"`
	Rating       float64   `json:"rating"`
	Text         string    `json:"text"`
	Created      time.Time `json:"created"`
}

func validBudget(b string) bool {
	for _, v := range Budgets {
		if v == b {
			return true
		}
	}
	return false
}

func validTiming(t string) bool {
	for _, v := range Timings {
		if v == t {
			return true
		}
	}
	return false
}

func validAvailability(a string) bool {
	for _, v := range Availabilities {
		if v == a {
			return true
		}
	}
	return false
}
