package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type printingRepository struct {
	db *gorm.DB
}

func NewPrintingRepository(db *gorm.DB) *printingRepository {
	return &printingRepository{db: db}
}

func (r *printingRepository) GetByCardID(ctx context.Context, cardID string) ([]*domain.Printing, error) {
	var printings []*domain.Printing
	err := r.db.WithContext(ctx).Where("card_id = ?", cardID).Order("release_date DESC").Find(&printings).Error
	if err != nil {
		return nil, err
	}
	return printings, nil
}

func (r *printingRepository) UpsertMany(ctx context.Context, printings []*domain.Printing) error {
	if len(printings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(printings).Error
}
