// Package recommender implements the event recommendation engine: four
// independent scoring strategies blended into one ranked list, with a
// low-confidence fallback when richer strategies come up short.
package recommender

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusevents/recommendation-service/internal/domain"
	"github.com/campusevents/recommendation-service/internal/metrics"
)

const (
	// DefaultLimit is the number of recommendations returned when the
	// caller does not ask for a specific count.
	DefaultLimit = 5

	defaultPeerLimit       = 10
	defaultCandidatePool   = 200
	defaultTrendingWindow  = 7 // days
	fallbackScore          = 0.1
	minMeaningfulScore     = 0.1
	similarityThreshold    = 0.1
	assumedCapacity        = 50
	fallbackReason         = "upcoming event you might find interesting"
	collaborativeReason    = "users with similar interests also registered for this event"
	popularityDecayHorizon = 90.0 // days
	popularityDecayFloor   = 0.3
)

// Config carries the engine's tunables. Zero values fall back to the
// defaults above.
type Config struct {
	Weights Weights `koanf:"weights"`

	// PeerLimit caps how many similar users contribute to the
	// collaborative strategy.
	PeerLimit int `koanf:"peer_limit"`

	// CandidatePool bounds the upcoming-event pool each strategy scores.
	CandidatePool int `koanf:"candidate_pool"`

	// TrendingWindowDays is the trailing window for trending counts.
	TrendingWindowDays int `koanf:"trending_window_days"`
}

func DefaultConfig() Config {
	return Config{
		Weights:            DefaultWeights(),
		PeerLimit:          defaultPeerLimit,
		CandidatePool:      defaultCandidatePool,
		TrendingWindowDays: defaultTrendingWindow,
	}
}

func (c Config) withDefaults() Config {
	if c.PeerLimit <= 0 {
		c.PeerLimit = defaultPeerLimit
	}
	if c.CandidatePool <= 0 {
		c.CandidatePool = defaultCandidatePool
	}
	if c.TrendingWindowDays <= 0 {
		c.TrendingWindowDays = defaultTrendingWindow
	}
	return c
}

// Engine blends the scoring strategies. It is stateless between calls
// and safe for concurrent use; every invocation only reads the store
// and works on local scratch state.
type Engine struct {
	store Store
	cfg   Config
	log   zerolog.Logger

	// now is swapped out in tests for deterministic clocks.
	now func() time.Time
}

func New(store Store, cfg Config, logger zerolog.Logger) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		store: store,
		cfg:   cfg,
		log:   logger.With().Str("component", "recommender").Logger(),
		now:   time.Now,
	}, nil
}

// GetUserRecommendations returns at most limit unique recommendations
// for the user, sorted by blended score descending. Strategy errors are
// absorbed: the caller always gets a list as long as the fallback query
// itself succeeds.
func (e *Engine) GetUserRecommendations(ctx context.Context, user *domain.User, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	now := e.now()

	registered, err := e.store.UserEvents(ctx, user.ID)
	if err != nil {
		// Whole-pipeline degradation: only the minimal upcoming-events
		// query stands between the user and an empty page.
		e.log.Error().Err(err).Int64("user_id", user.ID).Msg("loading registrations failed, serving fallback")
		metrics.RecommendationRequests.WithLabelValues("degraded").Inc()
		return e.fallback(ctx, now, nil, nil, limit)
	}

	registeredIDs := eventIDSet(registered)

	// Cold start: without history the personalized strategies are
	// meaningless, so go straight to soonest-first upcoming events.
	if len(registered) == 0 {
		metrics.RecommendationRequests.WithLabelValues("cold_start").Inc()
		return e.fallback(ctx, now, nil, nil, limit)
	}

	w := e.cfg.Weights
	pool := make([]domain.Recommendation, 0, 4*limit)
	pool = e.runStrategy(pool, "content", w.Content, func() ([]domain.Recommendation, error) {
		return e.contentBased(ctx, now, registered, registeredIDs, limit*2)
	})
	pool = e.runStrategy(pool, "collaborative", w.Collaborative, func() ([]domain.Recommendation, error) {
		return e.collaborative(ctx, now, user.ID, registeredIDs, limit)
	})
	pool = e.runStrategy(pool, "popularity", w.Popularity, func() ([]domain.Recommendation, error) {
		return e.popularity(ctx, now, registeredIDs, limit)
	})
	pool = e.runStrategy(pool, "diversity", w.Diversity, func() ([]domain.Recommendation, error) {
		return e.diversity(ctx, now, registered, registeredIDs, limit)
	})

	// Highest weighted score first; stable so equal scores keep the
	// strategy discovery order and the merge stays deterministic.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	// Deduplicate by event: the first (highest-scoring) instance wins.
	seen := make(map[int64]bool, len(pool))
	unique := pool[:0]
	for _, rec := range pool {
		if seen[rec.EventID] {
			continue
		}
		seen[rec.EventID] = true
		unique = append(unique, rec)
	}

	if len(unique) < limit {
		padding, err := e.fallback(ctx, now, registeredIDs, seen, limit-len(unique))
		if err != nil {
			return nil, err
		}
		unique = append(unique, padding...)
	}

	if len(unique) > limit {
		unique = unique[:limit]
	}
	for i := range unique {
		unique[i].Score = round3(unique[i].Score)
	}
	metrics.RecommendationRequests.WithLabelValues("ok").Inc()
	return unique, nil
}

// runStrategy invokes one scorer, scales its scores by the strategy
// weight, and appends to the merge pool. Errors are logged and counted,
// never propagated: a broken strategy contributes nothing.
func (e *Engine) runStrategy(pool []domain.Recommendation, name string, weight float64, score func() ([]domain.Recommendation, error)) []domain.Recommendation {
	if weight <= 0 {
		return pool
	}
	recs, err := score()
	if err != nil {
		e.log.Warn().Err(err).Str("strategy", name).Msg("strategy failed, contribution dropped")
		metrics.StrategyFailures.WithLabelValues(name).Inc()
		return pool
	}
	for _, rec := range recs {
		rec.Score *= weight
		pool = append(pool, rec)
	}
	return pool
}

// fallback pads results with soonest-first upcoming events at a fixed
// low score, skipping the user's registrations and anything already
// selected. Its errors propagate: there is no further degradation path.
func (e *Engine) fallback(ctx context.Context, now time.Time, registeredIDs, exclude map[int64]bool, count int) ([]domain.Recommendation, error) {
	if count <= 0 {
		return nil, nil
	}
	excludeIDs := make([]int64, 0, len(registeredIDs)+len(exclude))
	for id := range registeredIDs {
		excludeIDs = append(excludeIDs, id)
	}
	for id := range exclude {
		if !registeredIDs[id] {
			excludeIDs = append(excludeIDs, id)
		}
	}

	events, err := e.store.UpcomingEvents(ctx, EventFilter{
		MinStart:   now,
		ExcludeIDs: excludeIDs,
		Order:      OrderStartAsc,
		Limit:      count,
	})
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, 0, len(events))
	for _, ev := range events {
		recs = append(recs, newRecommendation(ev, fallbackScore, fallbackReason))
	}
	return recs, nil
}

func newRecommendation(ev domain.Event, score float64, reason string) domain.Recommendation {
	return domain.Recommendation{
		EventID:   ev.ID,
		Title:     ev.Title,
		Category:  ev.Category,
		Location:  ev.Location,
		StartTime: ev.StartTime,
		Score:     score,
		Reason:    reason,
	}
}

func eventIDSet(events []domain.Event) map[int64]bool {
	ids := make(map[int64]bool, len(events))
	for _, ev := range events {
		ids[ev.ID] = true
	}
	return ids
}

func idSetToSlice(ids map[int64]bool) []int64 {
	out := make([]int64, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

func daysUntil(now, start time.Time) float64 {
	return start.Sub(now).Hours() / 24.0
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func sortByScoreDesc(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}

func truncate(recs []domain.Recommendation, limit int) []domain.Recommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
