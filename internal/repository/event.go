package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusevents/recommendation-service/internal/domain"
	"github.com/campusevents/recommendation-service/internal/recommender"
)

// maxQueryLimit bounds unlimited filter queries so no call scans the
// whole catalog.
const maxQueryLimit = 500

const eventColumns = `e.id, e.title, e.category, e.location, e.start_time, e.end_time,
		e.max_capacity, e.creator_id, e.created_at, COUNT(r.user_id) AS registration_count`

// UpcomingEvents returns events matching the filter, each annotated
// with its total registration count.
func (r *Repository) UpcomingEvents(ctx context.Context, f recommender.EventFilter) ([]domain.Event, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds = append(conds, "e.start_time >= "+arg(f.MinStart))
	if f.Category != "" {
		conds = append(conds, "e.category = "+arg(f.Category))
	}
	if len(f.ExcludeIDs) > 0 {
		conds = append(conds, "NOT (e.id = ANY("+arg(f.ExcludeIDs)+"))")
	}

	order := "e.start_time ASC, e.id ASC"
	if f.Order == recommender.OrderRegistrationsDesc {
		order = "COUNT(r.user_id) DESC, e.start_time ASC, e.id ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	query := `SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY e.id
		ORDER BY ` + order + `
		LIMIT ` + arg(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query upcoming events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventsByIDs resolves event IDs to events with registration counts.
// Missing IDs are silently skipped.
func (r *Repository) EventsByIDs(ctx context.Context, ids []int64) ([]domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		WHERE e.id = ANY($1)
		GROUP BY e.id
		ORDER BY e.id`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query events by ids: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Categories returns all distinct event categories, sorted.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM events ORDER BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// TrendingCounts returns upcoming events with at least one registration
// since the given time; RegistrationCount holds the in-window count.
func (r *Repository) TrendingCounts(ctx context.Context, minStart, since time.Time, limit int) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.title, e.category, e.location, e.start_time, e.end_time,
			e.max_capacity, e.creator_id, e.created_at, COUNT(r.user_id) AS registration_count
		FROM events e
		JOIN event_registrations r ON r.event_id = e.id AND r.registered_at >= $2
		WHERE e.start_time >= $1
		GROUP BY e.id
		HAVING COUNT(r.user_id) > 0
		ORDER BY COUNT(r.user_id) DESC, e.start_time ASC, e.id ASC
		LIMIT $3`, minStart, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query trending counts: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		err := rows.Scan(&ev.ID, &ev.Title, &ev.Category, &ev.Location, &ev.StartTime,
			&ev.EndTime, &ev.MaxCapacity, &ev.CreatorID, &ev.CreatedAt, &ev.RegistrationCount)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
