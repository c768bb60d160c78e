package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
)

type performanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *performanceRepository {
	return &performanceRepository{db: db}
}

func (r *performanceRepository) Create(ctx context.Context, perf *domain.Performance) error {
	return r.db.WithContext(ctx).Create(perf).Error
}

func (r *performanceRepository) GetByID(ctx context.Context, id uint) (*domain.Performance, error) {
	var perf domain.Performance
	err := r.db.WithContext(ctx).First(&perf, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &perf, nil
}

func (r *performanceRepository) GetByMatchID(ctx context.Context, matchID uint) ([]*domain.Performance, error) {
	var perfs []*domain.Performance
	err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("turn_order ASC").Find(&perfs).Error
	if err != nil {
		return nil, err
	}
	return perfs, nil
}

func (r *performanceRepository) GetByUserID(ctx context.Context, userID uint) ([]*domain.Performance, error) {
	var perfs []*domain.Performance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&perfs).Error
	if err != nil {
		return nil, err
	}
	return perfs, nil
}

func (r *performanceRepository) CountByDeckID(ctx context.Context, deckID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Performance{}).Where("deck_id = ?", deckID).Count(&count).Error
	return count, err
}

func (r *performanceRepository) Update(ctx context.Context, perf *domain.Performance) error {
	return r.db.WithContext(ctx).Save(perf).Error
}

func (r *performanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Performance{}, "id = ?", id).Error
}

func (r *performanceRepository) DeleteByMatchID(ctx context.Context, matchID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Performance{}, "match_id = ?", matchID).Error
}
