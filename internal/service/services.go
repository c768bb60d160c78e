package service

import (
	"github.com/mike/commander-league-api/internal/config"
	"github.com/mike/commander-league-api/internal/repository"
)

type Services struct {
	Auth        *AuthService
	User        *UserService
	Color       *ColorService
	Card        *CardService
	Deck        *DeckService
	Event       *EventService
	Match       *MatchService
	Performance *PerformanceService
	Stats       *StatsService
}

func NewServices(repos *repository.Repositories, lookup CardLookup, broadcast Broadcaster, cfg *config.Config) *Services {
	colors := NewColorService(repos.ColorIdentity)
	cards := NewCardService(repos.Card, repos.Printing, colors, lookup)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg),
		User:        NewUserService(repos.User),
		Color:       colors,
		Card:        cards,
		Deck:        NewDeckService(repos, cards, colors, cfg),
		Event:       NewEventService(repos),
		Match:       NewMatchService(repos.Match, repos.Performance, broadcast),
		Performance: NewPerformanceService(repos.Performance, repos.Match, repos.User, broadcast),
		Stats:       NewStatsService(repos.Stats, repos.User, repos.Card),
	}
}
