package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/service"
)

type CardHandler struct {
	cardService  *service.CardService
	colorService *service.ColorService
}

func NewCardHandler(cardService *service.CardService, colorService *service.ColorService) *CardHandler {
	return &CardHandler{cardService: cardService, colorService: colorService}
}

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.cardService.GetCard(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			http.Error(w, "No card found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.colorService.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, colors)
}
