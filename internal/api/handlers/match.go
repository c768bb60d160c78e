package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/service"
)

type MatchHandler struct {
	matchService *service.MatchService
	perfService  *service.PerformanceService
}

func NewMatchHandler(matchService *service.MatchService, perfService *service.PerformanceService) *MatchHandler {
	return &MatchHandler{matchService: matchService, perfService: perfService}
}

type CreateMatchRequest struct {
	EventID uint `json:"eventId"`
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	match, err := h.matchService.Create(r.Context(), req.EventID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, match)
}

func (h *MatchHandler) Patch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	var patch domain.MatchPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	match, err := h.matchService.ApplyPatch(r.Context(), matchID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			http.Error(w, "No match found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		switch {
		case errors.Is(err, domain.ErrMatchNotFound):
			http.Error(w, "No match found", http.StatusNotFound)
		case errors.Is(err, domain.ErrMatchStarted):
			http.Error(w, "Match has already started", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Match deleted")
}

type CreatePerformanceRequest struct {
	MatchID uint   `json:"matchId"`
	UserID  string `json:"userId"`
}

func (h *MatchHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req CreatePerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	publicID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	perf, err := h.perfService.Create(r.Context(), req.MatchID, publicID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMatchNotFound):
			http.Error(w, "No match found", http.StatusNotFound)
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "No user found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, perf)
}

func (h *MatchHandler) PatchPerformance(w http.ResponseWriter, r *http.Request) {
	perfID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid performance ID", http.StatusBadRequest)
		return
	}

	var patch domain.PerformancePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	perf, err := h.perfService.ApplyPatch(r.Context(), perfID, patch)
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			http.Error(w, "No performance found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, perf)
}

func (h *MatchHandler) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	perfID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid performance ID", http.StatusBadRequest)
		return
	}

	if err := h.perfService.Delete(r.Context(), perfID); err != nil {
		switch {
		case errors.Is(err, service.ErrPerformanceNotFound):
			http.Error(w, "No performance found", http.StatusNotFound)
		case errors.Is(err, domain.ErrMatchStarted):
			http.Error(w, "Match has already started", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Performance deleted")
}

func (h *MatchHandler) ListPerformances(w http.ResponseWriter, r *http.Request) {
	matchID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	perfs, err := h.perfService.GetByMatch(r.Context(), matchID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, perfs)
}
