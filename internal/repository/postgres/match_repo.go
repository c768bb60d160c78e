package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *matchRepository) GetByID(ctx context.Context, id uint) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByEventID(ctx context.Context, eventID uint) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id ASC").Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Match{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

func (r *matchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Match{}, "id = ?", id).Error
}
