package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

// popularity ranks upcoming events by how full they are, decayed over a
// 90-day horizon so far-off events do not dominate. The pool is widened
// to 2x the limit before the final cut so capping effects resolve.
func (e *Engine) popularity(ctx context.Context, now time.Time, registeredIDs map[int64]bool, limit int) ([]domain.Recommendation, error) {
	candidates, err := e.store.UpcomingEvents(ctx, EventFilter{
		MinStart:   now,
		ExcludeIDs: idSetToSlice(registeredIDs),
		Order:      OrderRegistrationsDesc,
		Limit:      limit * 3,
	})
	if err != nil {
		return nil, fmt.Errorf("popularity: fetch candidates: %w", err)
	}

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, ev := range candidates {
		capacity := ev.MaxCapacity
		if capacity <= 0 {
			capacity = assumedCapacity
		}
		ratio := float64(ev.RegistrationCount) / float64(capacity)

		decay := 1 - daysUntil(now, ev.StartTime)/popularityDecayHorizon
		if decay < popularityDecayFloor {
			decay = popularityDecayFloor
		}

		score := ratio * decay
		if score > 1.0 {
			score = 1.0
		}

		reason := fmt.Sprintf("popular event with %d registrations", ev.RegistrationCount)
		recs = append(recs, newRecommendation(ev, score, reason))
	}

	sortByScoreDesc(recs)
	return truncate(recs, limit), nil
}
