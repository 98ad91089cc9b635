package store

import (
	"context"
	"errors"
)

// Collection names. Every entity type lives in its own collection; records are
// whole JSON documents keyed by a short generated id (or email for accounts).
const (
	Users         = "users"
	Professionals = "professionals"
	Jobs          = "jobs"
	Quotes        = "quotes"
	Reviews       = "reviews"
	Messages      = "messages"
	Payments      = "payments"
)

// Collections lists every known collection. Backends create all of them up
// front so a missing file or table is always a startup problem, not a runtime
// surprise.
var Collections = []string{
	Users,
	Professionals,
	Jobs,
	Quotes,
	Reviews,
	Messages,
	Payments,
}

var ErrNotFound = errors.New("store: record not found")

// Tx gives read-write access to collections inside a single atomic update.
// Writes become visible only when the update commits.
type Tx interface {
	Get(collection, id string, out any) error
	Put(collection, id string, record any) error
	List(collection string, out any) error
}

// Store persists whole-record documents grouped into named collections.
// List returns records in insertion order. Update runs fn with exclusive
// write access and applies all of its writes as one unit, so multi-collection
// changes (accepting a quote touches jobs and quotes) never land half-applied.
type Store interface {
	Get(ctx context.Context, collection, id string, out any) error
	List(ctx context.Context, collection string, out any) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}
