package recommender

import (
	"context"
	"math"
	"testing"

	"github.com/campusevents/recommendation-service/internal/domain"
)

func TestPopularityScore(t *testing.T) {
	// 95 of 100 spots taken, starting tomorrow:
	// 0.95 * (1 - 1/90) ≈ 0.939.
	store := &fakeStore{
		events: []domain.Event{event(1, "Technical", "Main Auditorium", 1, 100, 95)},
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.popularity(context.Background(), testNow, nil, 5)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	want := 0.95 * (1 - 1.0/90.0)
	if math.Abs(recs[0].Score-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, recs[0].Score)
	}
	if recs[0].Reason != "popular event with 95 registrations" {
		t.Errorf("unexpected reason %q", recs[0].Reason)
	}
}

func TestPopularityDefaultCapacity(t *testing.T) {
	// Unset capacity falls back to the assumed default of 50.
	store := &fakeStore{
		events: []domain.Event{event(1, "Technical", "Main Auditorium", 1, 0, 25)},
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.popularity(context.Background(), testNow, nil, 5)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	want := 0.5 * (1 - 1.0/90.0)
	if math.Abs(recs[0].Score-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, recs[0].Score)
	}
}

func TestPopularityDecayFloor(t *testing.T) {
	// 200 days out: the decay floors at 0.3 instead of going negative.
	store := &fakeStore{
		events: []domain.Event{event(1, "Technical", "Main Auditorium", 200, 100, 50)},
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.popularity(context.Background(), testNow, nil, 5)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	want := 0.5 * 0.3
	if math.Abs(recs[0].Score-want) > 1e-9 {
		t.Errorf("expected floored score %v, got %v", want, recs[0].Score)
	}
}

func TestPopularityExcludesRegistered(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Main Auditorium", 1, 100, 90),
			event(2, "Technical", "Main Auditorium", 2, 100, 10),
		},
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.popularity(context.Background(), testNow, map[int64]bool{1: true}, 5)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(recs) != 1 || recs[0].EventID != 2 {
		t.Fatalf("expected only event 2, got %v", recs)
	}
}

func TestPopularitySortedAndTruncated(t *testing.T) {
	store := &fakeStore{}
	for i := int64(1); i <= 12; i++ {
		store.events = append(store.events,
			event(i, "Technical", "Main Auditorium", int(i), 100, int(i)*5))
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.popularity(context.Background(), testNow, nil, 3)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Score < recs[i].Score {
			t.Errorf("results not sorted: %v < %v", recs[i-1].Score, recs[i].Score)
		}
	}
}
