package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

const diversityPerCategory = 2

// diversity surfaces events from categories the user has never touched,
// scored purely by how popular they are within that category.
func (e *Engine) diversity(ctx context.Context, now time.Time, registered []domain.Event, registeredIDs map[int64]bool, limit int) ([]domain.Recommendation, error) {
	known := make(map[string]bool, len(registered))
	for _, ev := range registered {
		known[ev.Category] = true
	}

	categories, err := e.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("diversity: fetch categories: %w", err)
	}

	excludeIDs := idSetToSlice(registeredIDs)
	var recs []domain.Recommendation
	for _, category := range categories {
		if known[category] {
			continue
		}
		events, err := e.store.UpcomingEvents(ctx, EventFilter{
			MinStart:   now,
			Category:   category,
			ExcludeIDs: excludeIDs,
			Order:      OrderRegistrationsDesc,
			Limit:      diversityPerCategory,
		})
		if err != nil {
			return nil, fmt.Errorf("diversity: fetch %s events: %w", category, err)
		}

		for _, ev := range events {
			capacity := ev.MaxCapacity
			if capacity < 1 {
				capacity = 1
			}
			score := float64(ev.RegistrationCount) / float64(capacity)
			if score > 1.0 {
				score = 1.0
			}
			reason := fmt.Sprintf("Explore %s events - expand your interests!", category)
			recs = append(recs, newRecommendation(ev, score, reason))
		}
	}

	sortByScoreDesc(recs)
	return truncate(recs, limit), nil
}
