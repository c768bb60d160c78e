package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mike/commander-league-api/internal/api/handlers"
	"github.com/mike/commander-league-api/internal/api/middleware"
	"github.com/mike/commander-league-api/internal/config"
	"github.com/mike/commander-league-api/internal/repository"
	"github.com/mike/commander-league-api/internal/service"
	"github.com/mike/commander-league-api/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	deckHandler := handlers.NewDeckHandler(services.Deck, services.User)
	cardHandler := handlers.NewCardHandler(services.Card, services.Color)
	eventHandler := handlers.NewEventHandler(services.Event, repos.Theme)
	matchHandler := handlers.NewMatchHandler(services.Match, services.Performance)
	statsHandler := handlers.NewStatsHandler(services.Stats)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Color identities are static reference data and stay public
		r.Get("/colors", cardHandler.ListColors)

		// Live league-night updates
		r.Get("/ws", wsHandler.Serve)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.Create)
				r.Get("/", userHandler.List)
				r.Get("/{userId}/decks", deckHandler.GetUserDecks)
			})

			r.Route("/decks", func(r chi.Router) {
				r.Post("/", deckHandler.Create)
				r.Get("/", deckHandler.GetMine)
				r.Get("/{id}", deckHandler.Get)
				r.Put("/{id}/list", deckHandler.RebuildList)
				r.Patch("/{id}", deckHandler.Patch)
				r.Delete("/{id}", deckHandler.Delete)
			})

			r.Get("/cards/{id}", cardHandler.Get)

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Create)
				r.Get("/", eventHandler.List)
				r.Get("/{id}", eventHandler.Get)
				r.Patch("/{id}", eventHandler.Patch)
			})

			r.Get("/themes", eventHandler.ListThemes)

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", matchHandler.Create)
				r.Patch("/{id}", matchHandler.Patch)
				r.Delete("/{id}", matchHandler.Delete)
				r.Get("/{id}/performances", matchHandler.ListPerformances)
			})

			r.Route("/performances", func(r chi.Router) {
				r.Post("/", matchHandler.CreatePerformance)
				r.Patch("/{id}", matchHandler.PatchPerformance)
				r.Delete("/{id}", matchHandler.DeletePerformance)
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/users/{id}", statsHandler.UserStats)
				r.Get("/global", statsHandler.GlobalStats)
				r.Get("/watchlist", statsHandler.WatchlistStats)
			})
		})
	})

	return r
}
