package domain

import "time"

// Recommendation is the flat, serializable projection of a suggested event.
// It is built fresh per request and never persisted outside the cache.
type Recommendation struct {
	EventID   int64     `json:"event_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time"`
	Score     float64   `json:"score"`
	Reason    string    `json:"reason"`
}

type TrendingEvent struct {
	EventID           int64     `json:"event_id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	StartTime         time.Time `json:"start_time"`
	RegistrationCount int       `json:"registration_count"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []Recommendation
	CacheHit        bool
}

type TrendingResult struct {
	Events   []TrendingEvent
	CacheHit bool
}
