package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uint) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type CardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	GetByName(ctx context.Context, name string) (*domain.Card, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Card, error)
	GetWatchlist(ctx context.Context) ([]*domain.Card, error)
	Upsert(ctx context.Context, card *domain.Card) error
}

type ColorIdentityRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.ColorIdentity, error)
	GetByFlags(ctx context.Context, flags domain.ColorFlags) (*domain.ColorIdentity, error)
	GetAll(ctx context.Context) ([]*domain.ColorIdentity, error)
	Seed(ctx context.Context, identities []*domain.ColorIdentity) error
}

type PrintingRepository interface {
	GetByCardID(ctx context.Context, cardID string) ([]*domain.Printing, error)
	UpsertMany(ctx context.Context, printings []*domain.Printing) error
}

type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uint) (*domain.Deck, error)
	GetByUserID(ctx context.Context, userID uint) ([]*domain.Deck, error)
	GetAll(ctx context.Context) ([]*domain.Deck, error)
	Update(ctx context.Context, deck *domain.Deck) error
	Delete(ctx context.Context, id uint) error
}

type DecklistRepository interface {
	UpsertEntry(ctx context.Context, entry *domain.DecklistEntry) error
	GetByDeckID(ctx context.Context, deckID uint) ([]*domain.DecklistEntry, error)
	GetEntry(ctx context.Context, deckID uint, cardID string) (*domain.DecklistEntry, error)
	UpdateEntry(ctx context.Context, entry *domain.DecklistEntry) error
	DeleteByDeckID(ctx context.Context, deckID uint) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uint) (*domain.Event, error)
	GetAll(ctx context.Context) ([]*domain.Event, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountWeekly(ctx context.Context) (int64, error)
	Update(ctx context.Context, event *domain.Event) error
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uint) (*domain.Match, error)
	GetByEventID(ctx context.Context, eventID uint) ([]*domain.Match, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	Update(ctx context.Context, match *domain.Match) error
	Delete(ctx context.Context, id uint) error
}

type PerformanceRepository interface {
	Create(ctx context.Context, perf *domain.Performance) error
	GetByID(ctx context.Context, id uint) (*domain.Performance, error)
	GetByMatchID(ctx context.Context, matchID uint) ([]*domain.Performance, error)
	GetByUserID(ctx context.Context, userID uint) ([]*domain.Performance, error)
	CountByDeckID(ctx context.Context, deckID uint) (int64, error)
	Update(ctx context.Context, perf *domain.Performance) error
	Delete(ctx context.Context, id uint) error
	DeleteByMatchID(ctx context.Context, matchID uint) error
}

type ThemeRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.Theme, error)
	GetAll(ctx context.Context) ([]*domain.Theme, error)
}

// StatsRepository runs the read-only joins behind the stats endpoints.
type StatsRepository interface {
	PerformanceIdentities(ctx context.Context, userID *uint, includeThemed bool) ([]PerformanceIdentity, error)
	FinishedMatches(ctx context.Context, includeThemed bool) ([]*domain.Match, error)
	WatchlistPerformances(ctx context.Context) ([]WatchlistPerformance, error)
}

// PerformanceIdentity is one performance joined with the deck's color
// identity, the unit the color play-count and win-rate stats are built from.
type PerformanceIdentity struct {
	Placement  *int
	IdentityID uint
	White      bool
	Blue       bool
	Black      bool
	Red        bool
	Green      bool
}

// WatchlistPerformance is one performance of a deck that runs a watchlisted
// card.
type WatchlistPerformance struct {
	CardID    string
	CardName  string
	Placement *int
}

type Repositories struct {
	User          UserRepository
	Session       SessionRepository
	Card          CardRepository
	ColorIdentity ColorIdentityRepository
	Printing      PrintingRepository
	Deck          DeckRepository
	Decklist      DecklistRepository
	Event         EventRepository
	Match         MatchRepository
	Performance   PerformanceRepository
	Theme         ThemeRepository
	Stats         StatsRepository
}
