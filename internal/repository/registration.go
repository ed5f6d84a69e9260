package repository

import (
	"context"
	"fmt"

	"github.com/campusevents/recommendation-service/internal/domain"
	"github.com/campusevents/recommendation-service/internal/recommender"
)

// UserEvents returns the events a user is registered for, in
// registration order, each with its total registration count.
func (r *Repository) UserEvents(ctx context.Context, userID int64) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.title, e.category, e.location, e.start_time, e.end_time,
			e.max_capacity, e.creator_id, e.created_at, COUNT(r2.user_id) AS registration_count
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		LEFT JOIN event_registrations r2 ON r2.event_id = e.id
		WHERE r.user_id = $1
		GROUP BY e.id, r.registered_at
		ORDER BY r.registered_at ASC, e.id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// PeerRegistrations returns every other user with at least one
// registration, with their registered event IDs in registration order.
func (r *Repository) PeerRegistrations(ctx context.Context, excludeUserID int64) ([]recommender.PeerRegistrations, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, array_agg(event_id ORDER BY registered_at, event_id)
		FROM event_registrations
		WHERE user_id <> $1
		GROUP BY user_id
		ORDER BY user_id`, excludeUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("query peer registrations: %w", err)
	}
	defer rows.Close()

	var peers []recommender.PeerRegistrations
	for rows.Next() {
		var p recommender.PeerRegistrations
		if err := rows.Scan(&p.UserID, &p.EventIDs); err != nil {
			return nil, fmt.Errorf("scan peer registrations: %w", err)
		}
		peers = append(peers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate peer registrations: %w", err)
	}
	return peers, nil
}
