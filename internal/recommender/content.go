package recommender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

// contentBased scores upcoming events against the user's category and
// location history. Raw scores land in (0, 1]; events that score at or
// below the meaningful threshold are dropped.
func (e *Engine) contentBased(ctx context.Context, now time.Time, registered []domain.Event, registeredIDs map[int64]bool, limit int) ([]domain.Recommendation, error) {
	if len(registered) == 0 {
		return nil, nil
	}

	categoryCounts := make(map[string]int)
	locationCounts := make(map[string]int)
	for _, ev := range registered {
		categoryCounts[ev.Category]++
		locationCounts[ev.Location]++
	}
	total := float64(len(registered))

	candidates, err := e.store.UpcomingEvents(ctx, EventFilter{
		MinStart:   now,
		ExcludeIDs: idSetToSlice(registeredIDs),
		Order:      OrderStartAsc,
		Limit:      e.cfg.CandidatePool,
	})
	if err != nil {
		return nil, fmt.Errorf("content: fetch candidates: %w", err)
	}

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, ev := range candidates {
		var score float64
		var reasons []string

		if n, ok := categoryCounts[ev.Category]; ok && n > 0 {
			score += float64(n) / total * 0.8
			reasons = append(reasons, fmt.Sprintf("based on your interest in %s events", ev.Category))
		}
		if n, ok := locationCounts[ev.Location]; ok && n > 0 {
			score += float64(n) / total * 0.3
			reasons = append(reasons, fmt.Sprintf("you often attend events at %s", ev.Location))
		}

		days := daysUntil(now, ev.StartTime)
		switch {
		case days <= 3:
			score += 0.4
			reasons = append(reasons, "happening very soon")
		case days <= 7:
			score += 0.3
			reasons = append(reasons, "happening this week")
		case days <= 30:
			score += 0.2
		default:
			score += 0.1
		}

		if ev.MaxCapacity > 0 {
			free := float64(ev.MaxCapacity-ev.RegistrationCount) / float64(ev.MaxCapacity)
			if free > 0.8 {
				score += 0.15
				reasons = append(reasons, "plenty of spots available")
			} else if free > 0.5 {
				score += 0.1
			}
		}

		if score <= minMeaningfulScore {
			continue
		}
		if score > 1.0 {
			score = 1.0
		}

		reason := "recommended for you"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, " and ")
		}
		recs = append(recs, newRecommendation(ev, score, reason))
	}

	sortByScoreDesc(recs)
	return truncate(recs, limit), nil
}
