package handlers

import (
	"errors"
	"net/http"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func includeThemed(r *http.Request) bool {
	return r.URL.Query().Get("themed") == "true"
}

func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	stats, err := h.statsService.UserStats(r.Context(), userID, includeThemed(r))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "No user found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GlobalStats(r.Context(), includeThemed(r))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) WatchlistStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.WatchlistStats(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": stats})
}
