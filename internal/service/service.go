package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusevents/recommendation-service/internal/cache"
	"github.com/campusevents/recommendation-service/internal/domain"
	"github.com/campusevents/recommendation-service/internal/metrics"
	"github.com/campusevents/recommendation-service/internal/recommender"
	"github.com/campusevents/recommendation-service/internal/repository"
)

const (
	maxRecLimit      = 20
	maxTrendingLimit = 50
)

type Service struct {
	repo   *repository.Repository
	cache  *cache.Cache
	engine *recommender.Engine
	log    zerolog.Logger
}

func NewService(repo *repository.Repository, cache *cache.Cache, engine *recommender.Engine, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		engine: engine,
		log:    logger.With().Str("component", "service").Logger(),
	}
}

// GetRecommendations serves a user's recommendations, cache first.
// Cache errors are logged and treated as misses.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = recommender.DefaultLimit
	} else if limit > maxRecLimit {
		limit = maxRecLimit
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	cached, found, err := s.cache.GetRecommendations(ctx, userID, limit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
	}
	if found {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return &domain.RecommendationResult{
			Recommendations: cached,
			CacheHit:        true,
		}, nil
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	recs, err := s.engine.GetUserRecommendations(ctx, user, limit)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	if cacheErr := s.cache.SetRecommendations(ctx, userID, limit, recs); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("user_id", userID).Msg("cache set failed")
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		CacheHit:        false,
	}, nil
}

// GetTrendingEvents serves the trending list. It is user-independent,
// so it is cached under a single key per limit.
func (s *Service) GetTrendingEvents(ctx context.Context, limit int) (*domain.TrendingResult, error) {
	if limit <= 0 {
		limit = recommender.DefaultTrendingLimit
	} else if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	cached, found, err := s.cache.GetTrending(ctx, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("trending cache get failed")
	}
	if found {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return &domain.TrendingResult{Events: cached, CacheHit: true}, nil
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	events, err := s.engine.GetTrendingEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("generate trending events: %w", err)
	}

	if cacheErr := s.cache.SetTrending(ctx, limit, events); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Msg("trending cache set failed")
	}

	return &domain.TrendingResult{Events: events, CacheHit: false}, nil
}

// InvalidateUser drops a user's cached recommendations. The write side
// calls this when a registration is added or removed.
func (s *Service) InvalidateUser(ctx context.Context, userID int64) error {
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		return fmt.Errorf("invalidate user %d: %w", userID, err)
	}
	return nil
}
