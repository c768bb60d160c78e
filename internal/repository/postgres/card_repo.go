package postgres

import (
	"context"
	"strings"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByName(ctx context.Context, name string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).First(&card, "name = ?", strings.TrimSpace(name)).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).Find(&cards, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID, nil
}

func (r *cardRepository) GetWatchlist(ctx context.Context) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).Where("watchlist = ?", true).Order("name ASC").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Upsert keys on the oracle ID so two requests resolving the same new card
// concurrently cannot create duplicates.
func (r *cardRepository) Upsert(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(card).Error
}
