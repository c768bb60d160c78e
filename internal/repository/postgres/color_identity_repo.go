package postgres

import (
	"context"
	"errors"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type colorIdentityRepository struct {
	db *gorm.DB
}

func NewColorIdentityRepository(db *gorm.DB) *colorIdentityRepository {
	return &colorIdentityRepository{db: db}
}

func (r *colorIdentityRepository) GetByID(ctx context.Context, id uint) (*domain.ColorIdentity, error) {
	var identity domain.ColorIdentity
	err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrColorIdentityMissing
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// GetByFlags is an exact match on all five flags, never partial.
func (r *colorIdentityRepository) GetByFlags(ctx context.Context, flags domain.ColorFlags) (*domain.ColorIdentity, error) {
	var identity domain.ColorIdentity
	err := r.db.WithContext(ctx).
		Where("white = ? AND blue = ? AND black = ? AND red = ? AND green = ?",
			flags.White, flags.Blue, flags.Black, flags.Red, flags.Green).
		First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrColorIdentityMissing
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *colorIdentityRepository) GetAll(ctx context.Context) ([]*domain.ColorIdentity, error) {
	var identities []*domain.ColorIdentity
	err := r.db.WithContext(ctx).Order("id ASC").Find(&identities).Error
	if err != nil {
		return nil, err
	}
	return identities, nil
}

func (r *colorIdentityRepository) Seed(ctx context.Context, identities []*domain.ColorIdentity) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(identities).Error
}
