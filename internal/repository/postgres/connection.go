package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration and seeds the coloridentity table with
// all 32 flag combinations. Legality resolution depends on the table being
// complete, so seeding is part of startup rather than an operator step.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.ColorIdentity{},
		&domain.Card{},
		&domain.Printing{},
		&domain.Deck{},
		&domain.DecklistEntry{},
		&domain.Theme{},
		&domain.Event{},
		&domain.Match{},
		&domain.Performance{},
	)
	if err != nil {
		return err
	}

	return NewColorIdentityRepository(db).Seed(context.Background(), domain.AllColorIdentities())
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:          NewUserRepository(db),
		Session:       NewSessionRepository(db),
		Card:          NewCardRepository(db),
		ColorIdentity: NewColorIdentityRepository(db),
		Printing:      NewPrintingRepository(db),
		Deck:          NewDeckRepository(db),
		Decklist:      NewDecklistRepository(db),
		Event:         NewEventRepository(db),
		Match:         NewMatchRepository(db),
		Performance:   NewPerformanceRepository(db),
		Theme:         NewThemeRepository(db),
		Stats:         NewStatsRepository(db),
	}
}
