package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"github.com/mike/commander-league-api/internal/service"
)

type EventHandler struct {
	eventService *service.EventService
	themeRepo    repository.ThemeRepository
}

func NewEventHandler(eventService *service.EventService, themeRepo repository.ThemeRepository) *EventHandler {
	return &EventHandler{eventService: eventService, themeRepo: themeRepo}
}

type CreateEventRequest struct {
	Name   string `json:"name"`
	Themed bool   `json:"themed"`
	Weekly bool   `json:"weekly"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.Create(r.Context(), service.CreateEventInput{
		Name:   req.Name,
		Themed: req.Themed,
		Weekly: req.Weekly,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventExistsToday) {
			http.Error(w, "Event already created for today", http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	detail, err := h.eventService.GetDetail(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			http.Error(w, "No event found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *EventHandler) Patch(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var patch domain.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.ApplyPatch(r.Context(), eventID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			http.Error(w, "No event found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, themes)
}
