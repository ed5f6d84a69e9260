package recommender

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

type peerSimilarity struct {
	peer       PeerRegistrations
	similarity float64
	common     int
}

// collaborative recommends events that users with overlapping
// registration sets signed up for. Peers are ranked by Jaccard
// similarity; each kept peer contributes similarity * (1 + ln(common))
// to every upcoming event of theirs the target has not registered for.
func (e *Engine) collaborative(ctx context.Context, now time.Time, userID int64, registeredIDs map[int64]bool, limit int) ([]domain.Recommendation, error) {
	if len(registeredIDs) == 0 {
		return nil, nil
	}

	peers, err := e.store.PeerRegistrations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collaborative: fetch peers: %w", err)
	}

	similar := make([]peerSimilarity, 0, len(peers))
	for _, p := range peers {
		if len(p.EventIDs) == 0 {
			continue
		}
		sim, common := jaccard(registeredIDs, p.EventIDs)
		if sim <= similarityThreshold {
			continue
		}
		similar = append(similar, peerSimilarity{peer: p, similarity: sim, common: common})
	}

	// Stable sort keeps the store's peer ordering for equal similarities.
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].similarity > similar[j].similarity
	})
	if len(similar) > e.cfg.PeerLimit {
		similar = similar[:e.cfg.PeerLimit]
	}

	// Accumulate per-event weight; several peers may push the same event.
	scores := make(map[int64]float64)
	var order []int64
	for _, s := range similar {
		weight := s.similarity * (1 + math.Log(float64(s.common)))
		for _, eventID := range s.peer.EventIDs {
			if registeredIDs[eventID] {
				continue
			}
			if _, ok := scores[eventID]; !ok {
				order = append(order, eventID)
			}
			scores[eventID] += weight
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	events, err := e.store.EventsByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("collaborative: fetch candidate events: %w", err)
	}
	byID := make(map[int64]domain.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	recs := make([]domain.Recommendation, 0, len(order))
	for _, eventID := range order {
		ev, ok := byID[eventID]
		if !ok || ev.StartTime.Before(now) {
			continue
		}
		score := scores[eventID]
		if score > 1.0 {
			score = 1.0
		}
		recs = append(recs, newRecommendation(ev, score, collaborativeReason))
	}

	sortByScoreDesc(recs)
	return truncate(recs, limit), nil
}

// jaccard returns |A∩B| / |A∪B| and the intersection size for the
// target's registration set against a peer's event ID list.
func jaccard(target map[int64]bool, peerEvents []int64) (float64, int) {
	intersection := 0
	union := len(target)
	for _, id := range peerEvents {
		if target[id] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, 0
	}
	return float64(intersection) / float64(union), intersection
}
