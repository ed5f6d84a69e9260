package recommender

import (
	"context"
	"testing"

	"github.com/campusevents/recommendation-service/internal/domain"
)

func TestTrendingRanksByRecentCount(t *testing.T) {
	// Only event 2 has registrations; the rest of the list is padded
	// with the soonest upcoming zero-registration events.
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Main Auditorium", 1, 100, 0),
			event(2, "Cultural", "Student Center", 5, 100, 0),
			event(3, "Sports", "Sports Complex", 3, 100, 0),
			event(4, "Seminar", "Library Hall", 8, 100, 0),
		},
	}
	register(store, 1, 2)
	register(store, 2, 2)
	engine := newTestEngine(t, store, DefaultConfig())

	trending, err := engine.GetTrendingEvents(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetTrendingEvents: %v", err)
	}
	if len(trending) != 3 {
		t.Fatalf("expected 3 trending events, got %d", len(trending))
	}

	if trending[0].EventID != 2 || trending[0].RegistrationCount != 2 {
		t.Errorf("expected event 2 with 2 registrations first, got event %d with %d",
			trending[0].EventID, trending[0].RegistrationCount)
	}
	// Padding: soonest upcoming events not already listed.
	if trending[1].EventID != 1 || trending[2].EventID != 3 {
		t.Errorf("expected padding events 1 and 3, got %d and %d",
			trending[1].EventID, trending[2].EventID)
	}
}

func TestTrendingWindowExcludesOldRegistrations(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Main Auditorium", 2, 100, 0),
			event(2, "Cultural", "Student Center", 4, 100, 0),
		},
	}
	// Event 2's only registration is outside the 7-day window.
	store.registrations = append(store.registrations, registration{
		userID: 1, eventID: 2, at: testNow.AddDate(0, 0, -30),
	})
	register(store, 2, 1)
	engine := newTestEngine(t, store, DefaultConfig())

	trending, err := engine.GetTrendingEvents(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetTrendingEvents: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("expected 2 trending events, got %d", len(trending))
	}
	if trending[0].EventID != 1 {
		t.Errorf("expected recently-registered event 1 first, got %d", trending[0].EventID)
	}
	if trending[1].EventID != 2 {
		t.Errorf("expected event 2 only as padding, got %d", trending[1].EventID)
	}
}

func TestTrendingExcludesPastEvents(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Main Auditorium", -1, 100, 0),
			event(2, "Cultural", "Student Center", 4, 100, 0),
		},
	}
	register(store, 1, 1)
	register(store, 2, 2)
	engine := newTestEngine(t, store, DefaultConfig())

	trending, err := engine.GetTrendingEvents(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetTrendingEvents: %v", err)
	}
	for _, ev := range trending {
		if ev.StartTime.Before(testNow) {
			t.Errorf("event %d starts in the past", ev.EventID)
		}
	}
}

func TestTrendingAggregationFailureFallsBack(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Main Auditorium", 1, 100, 7),
			event(2, "Cultural", "Student Center", 2, 100, 3),
		},
		failTrending: true,
	}
	engine := newTestEngine(t, store, DefaultConfig())

	trending, err := engine.GetTrendingEvents(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected degraded trending result, got %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("expected 2 events from the fallback, got %d", len(trending))
	}
	// Fallback orders soonest first with the stored total counts.
	if trending[0].EventID != 1 || trending[0].RegistrationCount != 7 {
		t.Errorf("expected event 1 with count 7 first, got event %d count %d",
			trending[0].EventID, trending[0].RegistrationCount)
	}
}

func TestTrendingDefaultLimit(t *testing.T) {
	store := &fakeStore{}
	for i := int64(1); i <= 15; i++ {
		store.events = append(store.events,
			event(i, "Technical", "Main Auditorium", int(i), 100, 0))
	}
	engine := newTestEngine(t, store, DefaultConfig())

	trending, err := engine.GetTrendingEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetTrendingEvents: %v", err)
	}
	if len(trending) != DefaultTrendingLimit {
		t.Errorf("expected default limit %d, got %d", DefaultTrendingLimit, len(trending))
	}
}
