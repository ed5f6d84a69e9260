// Package repository is the read-only PostgreSQL adapter behind the
// recommendation engine. It never writes; registrations and events are
// owned by the main application.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/recommendation-service/internal/recommender"
)

type Repository struct {
	pool *pgxpool.Pool
}

var _ recommender.Store = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
