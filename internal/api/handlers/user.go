package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mike/commander-league-api/internal/api/middleware"
	"github.com/mike/commander-league-api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Create(r.Context(), actor, service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			http.Error(w, "Admin privileges required", http.StatusForbidden)
		case errors.Is(err, service.ErrUsernameExists):
			http.Error(w, "User already exists", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		ID:       user.ID,
		PublicID: user.PublicID.String(),
		Username: user.Username,
		Admin:    user.Admin,
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
