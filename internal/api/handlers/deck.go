package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/api/middleware"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/service"
)

type DeckHandler struct {
	deckService *service.DeckService
	userService *service.UserService
}

func NewDeckHandler(deckService *service.DeckService, userService *service.UserService) *DeckHandler {
	return &DeckHandler{deckService: deckService, userService: userService}
}

type CreateDeckRequest struct {
	Name string `json:"name"`
	List string `json:"list"`
	// User optionally builds the deck for another player (a league admin
	// entering lists collected on paper).
	User string `json:"user"`
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	owner := current
	if req.User != "" {
		publicID, err := uuid.Parse(req.User)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		if owner, err = h.userService.GetByPublicID(r.Context(), publicID); err != nil {
			http.Error(w, "No user found", http.StatusNotFound)
			return
		}
	}

	deck, err := h.deckService.BuildDeck(r.Context(), service.BuildDeckInput{
		UserID: owner.ID,
		Name:   req.Name,
		List:   req.List,
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "New deck created",
		"deckid":  deck.ID,
	})
}

func (h *DeckHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	decks, err := h.deckService.GetUserDecks(r.Context(), current.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, decks)
}

func (h *DeckHandler) GetUserDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := uintParam(r, "userId")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	decks, err := h.deckService.GetUserDecks(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, decks)
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deckID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid deck ID", http.StatusBadRequest)
		return
	}

	detail, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		if errors.Is(err, domain.ErrDeckNotFound) {
			http.Error(w, "No deck found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

type RebuildListRequest struct {
	List string `json:"list"`
}

func (h *DeckHandler) RebuildList(w http.ResponseWriter, r *http.Request) {
	deckID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid deck ID", http.StatusBadRequest)
		return
	}

	var req RebuildListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	deck, err := h.deckService.RebuildList(r.Context(), deckID, req.List)
	if err != nil {
		if errors.Is(err, domain.ErrDeckNotFound) {
			http.Error(w, "No deck found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Patch(w http.ResponseWriter, r *http.Request) {
	deckID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid deck ID", http.StatusBadRequest)
		return
	}

	var patch domain.DeckPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	deck, err := h.deckService.ApplyPatch(r.Context(), deckID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeckNotFound):
			http.Error(w, "No deck found", http.StatusNotFound)
		case errors.Is(err, domain.ErrCardNotFound):
			http.Error(w, "Card is not in this deck", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deckID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid deck ID", http.StatusBadRequest)
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDeckNotFound):
			http.Error(w, "No deck found", http.StatusNotFound)
		case errors.Is(err, domain.ErrDeckInUse):
			http.Error(w, "Deck cannot be deleted. It is used in matches", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Deck deleted")
}
