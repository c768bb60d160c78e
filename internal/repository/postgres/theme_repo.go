package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"gorm.io/gorm"
)

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *themeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) GetByID(ctx context.Context, id uint) (*domain.Theme, error) {
	var theme domain.Theme
	err := r.db.WithContext(ctx).First(&theme, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) GetAll(ctx context.Context) ([]*domain.Theme, error) {
	var themes []*domain.Theme
	err := r.db.WithContext(ctx).Order("name ASC").Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}
