package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type decklistRepository struct {
	db *gorm.DB
}

func NewDecklistRepository(db *gorm.DB) *decklistRepository {
	return &decklistRepository{db: db}
}

// UpsertEntry keys on (deck_id, card_id) so rebuilding a deck from an updated
// list replaces entries instead of duplicating them.
func (r *decklistRepository) UpsertEntry(ctx context.Context, entry *domain.DecklistEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "deck_id"}, {Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "is_commander", "is_companion", "is_sideboard"}),
	}).Create(entry).Error
}

func (r *decklistRepository) GetByDeckID(ctx context.Context, deckID uint) ([]*domain.DecklistEntry, error) {
	var entries []*domain.DecklistEntry
	err := r.db.WithContext(ctx).Where("deck_id = ?", deckID).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *decklistRepository) GetEntry(ctx context.Context, deckID uint, cardID string) (*domain.DecklistEntry, error) {
	var entry domain.DecklistEntry
	err := r.db.WithContext(ctx).First(&entry, "deck_id = ? AND card_id = ?", deckID, cardID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *decklistRepository) UpdateEntry(ctx context.Context, entry *domain.DecklistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *decklistRepository) DeleteByDeckID(ctx context.Context, deckID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.DecklistEntry{}, "deck_id = ?", deckID).Error
}
