package recommender

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/campusevents/recommendation-service/internal/domain"
)

func TestContentBasedScoring(t *testing.T) {
	// History: 3 Technical, 1 Cultural, all at the Engineering Block.
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Engineering Block", -30, 100, 1),
			event(2, "Technical", "Engineering Block", -20, 100, 1),
			event(3, "Technical", "Engineering Block", -10, 100, 1),
			event(4, "Cultural", "Engineering Block", -5, 100, 1),
			// Candidate: Technical at the Engineering Block in 2 days,
			// nearly empty.
			event(5, "Technical", "Engineering Block", 2, 100, 10),
			// Candidate: Cultural elsewhere in 20 days, half full.
			event(6, "Cultural", "Student Center", 20, 100, 50),
		},
	}
	register(store, 1, 1, 2, 3, 4)
	engine := newTestEngine(t, store, DefaultConfig())
	registered, _ := store.UserEvents(context.Background(), 1)

	recs, err := engine.contentBased(context.Background(), testNow, registered, eventIDSet(registered), 10)
	if err != nil {
		t.Fatalf("contentBased: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	// Event 5: 3/4*0.8 (category) + 4/4*0.3 (location) + 0.4 (≤3 days)
	// + 0.15 (90% free) = 1.45, capped at 1.0.
	if recs[0].EventID != 5 {
		t.Fatalf("expected event 5 first, got %d", recs[0].EventID)
	}
	if recs[0].Score != 1.0 {
		t.Errorf("expected capped score 1.0, got %v", recs[0].Score)
	}

	// Event 6: 1/4*0.8 (category) + 0.2 (≤30 days), no location or
	// availability boost = 0.4.
	if recs[1].EventID != 6 {
		t.Fatalf("expected event 6 second, got %d", recs[1].EventID)
	}
	if math.Abs(recs[1].Score-0.4) > 1e-9 {
		t.Errorf("expected score 0.4, got %v", recs[1].Score)
	}
}

func TestContentBasedReasons(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Engineering Block", -10, 100, 1),
			event(2, "Technical", "Engineering Block", 2, 100, 0),
		},
	}
	register(store, 1, 1)
	engine := newTestEngine(t, store, DefaultConfig())
	registered, _ := store.UserEvents(context.Background(), 1)

	recs, err := engine.contentBased(context.Background(), testNow, registered, eventIDSet(registered), 10)
	if err != nil {
		t.Fatalf("contentBased: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	reason := recs[0].Reason
	for _, want := range []string{
		"based on your interest in Technical events",
		"you often attend events at Engineering Block",
		"happening very soon",
		"plenty of spots available",
	} {
		if !strings.Contains(reason, want) {
			t.Errorf("reason %q missing %q", reason, want)
		}
	}
	if strings.Count(reason, " and ") != 3 {
		t.Errorf("expected 4 factors joined with \"and\", got %q", reason)
	}
}

func TestContentBasedEmptyHistory(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{event(1, "Technical", "Library Hall", 2, 100, 0)},
	}
	engine := newTestEngine(t, store, DefaultConfig())

	recs, err := engine.contentBased(context.Background(), testNow, nil, nil, 10)
	if err != nil {
		t.Fatalf("contentBased: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result for empty history, got %d", len(recs))
	}
}

func TestContentBasedDropsWeakCandidates(t *testing.T) {
	store := &fakeStore{
		events: []domain.Event{
			event(1, "Technical", "Engineering Block", -10, 100, 1),
			// No category or location match, 40 days out, half full:
			// 0.1 total, at the threshold, dropped.
			event(2, "Cultural", "Student Center", 40, 100, 50),
		},
	}
	register(store, 1, 1)
	engine := newTestEngine(t, store, DefaultConfig())
	registered, _ := store.UserEvents(context.Background(), 1)

	recs, err := engine.contentBased(context.Background(), testNow, registered, eventIDSet(registered), 10)
	if err != nil {
		t.Fatalf("contentBased: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected weak candidate to be dropped, got %d results", len(recs))
	}
}
