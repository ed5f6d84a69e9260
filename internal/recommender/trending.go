package recommender

import (
	"context"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
	"github.com/campusevents/recommendation-service/internal/metrics"
)

// DefaultTrendingLimit is the trending list size when the caller does
// not ask for a specific count.
const DefaultTrendingLimit = 10

// GetTrendingEvents ranks upcoming events by registrations accrued in
// the trailing window, soonest start as tie-break. If fewer events than
// requested saw any recent registrations, the list is padded with the
// soonest upcoming events not yet included.
func (e *Engine) GetTrendingEvents(ctx context.Context, limit int) ([]domain.TrendingEvent, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	now := e.now()
	since := now.AddDate(0, 0, -e.cfg.TrendingWindowDays)

	events, err := e.store.TrendingCounts(ctx, now, since, limit)
	if err != nil {
		// Degrade to soonest upcoming events with their total counts.
		e.log.Error().Err(err).Msg("trending aggregation failed, serving soonest upcoming")
		metrics.TrendingRequests.WithLabelValues("degraded").Inc()
		return e.trendingFallback(ctx, now, nil, limit)
	}

	trending := make([]domain.TrendingEvent, 0, limit)
	for _, ev := range events {
		trending = append(trending, newTrendingEvent(ev))
	}

	if len(trending) < limit {
		seen := make(map[int64]bool, len(trending))
		for _, t := range trending {
			seen[t.EventID] = true
		}
		padding, err := e.trendingFallback(ctx, now, seen, limit-len(trending))
		if err != nil {
			return nil, err
		}
		trending = append(trending, padding...)
	}

	if len(trending) > limit {
		trending = trending[:limit]
	}
	metrics.TrendingRequests.WithLabelValues("ok").Inc()
	return trending, nil
}

func (e *Engine) trendingFallback(ctx context.Context, now time.Time, exclude map[int64]bool, count int) ([]domain.TrendingEvent, error) {
	if count <= 0 {
		return nil, nil
	}
	events, err := e.store.UpcomingEvents(ctx, EventFilter{
		MinStart:   now,
		ExcludeIDs: idSetToSlice(exclude),
		Order:      OrderStartAsc,
		Limit:      count,
	})
	if err != nil {
		return nil, err
	}
	trending := make([]domain.TrendingEvent, 0, len(events))
	for _, ev := range events {
		trending = append(trending, newTrendingEvent(ev))
	}
	return trending, nil
}

func newTrendingEvent(ev domain.Event) domain.TrendingEvent {
	return domain.TrendingEvent{
		EventID:           ev.ID,
		Title:             ev.Title,
		Category:          ev.Category,
		Location:          ev.Location,
		StartTime:         ev.StartTime,
		RegistrationCount: ev.RegistrationCount,
	}
}
