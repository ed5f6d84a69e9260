package recommender

import (
	"context"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

// EventOrder selects the ordering of an UpcomingEvents query.
type EventOrder int

const (
	// OrderStartAsc sorts soonest first, event ID as tie-break.
	OrderStartAsc EventOrder = iota
	// OrderRegistrationsDesc sorts by registration count, then soonest first.
	OrderRegistrationsDesc
)

// EventFilter narrows an UpcomingEvents query. A zero Limit means the
// store's own bound applies.
type EventFilter struct {
	MinStart   time.Time
	Category   string
	ExcludeIDs []int64
	Order      EventOrder
	Limit      int
}

// PeerRegistrations is one other user's registered event IDs, in
// registration order.
type PeerRegistrations struct {
	UserID   int64
	EventIDs []int64
}

// Store is the read-only view of the event catalog the engine works
// against. All returned events carry their current RegistrationCount.
// The repository package implements it over PostgreSQL; tests use an
// in-memory fake.
type Store interface {
	// UserEvents returns the events the user is registered for, in
	// registration order.
	UserEvents(ctx context.Context, userID int64) ([]domain.Event, error)

	// UpcomingEvents returns events matching the filter.
	UpcomingEvents(ctx context.Context, f EventFilter) ([]domain.Event, error)

	// PeerRegistrations returns every other user holding at least one
	// registration, with their registered event IDs.
	PeerRegistrations(ctx context.Context, excludeUserID int64) ([]PeerRegistrations, error)

	// EventsByIDs resolves event IDs to events. Missing IDs are skipped.
	EventsByIDs(ctx context.Context, ids []int64) ([]domain.Event, error)

	// Categories returns all distinct event categories, sorted.
	Categories(ctx context.Context) ([]string, error)

	// TrendingCounts returns upcoming events that accrued at least one
	// registration since the given time, with RegistrationCount set to
	// the count inside that window, ordered by count descending then
	// soonest first.
	TrendingCounts(ctx context.Context, minStart, since time.Time, limit int) ([]domain.Event, error)
}
