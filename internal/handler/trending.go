package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusevents/recommendation-service/internal/domain"
)

// GET /events/trending
func (h *Handler) GetTrendingEvents(w http.ResponseWriter, r *http.Request) {
	// Parse and validate limit
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.service.GetTrendingEvents(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	resp := TrendingResponse{
		Events: result.Events,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Events),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
