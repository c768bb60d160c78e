package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/mike/commander-league-api/internal/service"
	"github.com/mike/commander-league-api/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The frontend is served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, authService: authService}
}

// Serve upgrades the connection. Browsers cannot set headers on websocket
// requests, so the token rides in a query param.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	publicIDStr, _ := (*claims)["sub"].(string)
	publicID, err := uuid.Parse(publicIDStr)
	if err != nil {
		http.Error(w, "Invalid token claims", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetUserByPublicID(r.Context(), publicID)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [WebSocketHandler.Serve] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, user.ID)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
