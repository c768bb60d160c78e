package postgres

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

// PerformanceIdentities joins performances with their deck's color identity.
// Themed events are excluded unless includeThemed is set; userID nil means
// league-wide.
func (r *statsRepository) PerformanceIdentities(ctx context.Context, userID *uint, includeThemed bool) ([]repository.PerformanceIdentity, error) {
	q := r.db.WithContext(ctx).
		Table("performances").
		Select("performances.placement, decks.identity_id, coloridentities.white, coloridentities.blue, coloridentities.black, coloridentities.red, coloridentities.green").
		Joins("JOIN matches ON matches.id = performances.match_id").
		Joins("JOIN events ON events.id = matches.event_id").
		Joins("JOIN decks ON decks.id = performances.deck_id").
		Joins("JOIN coloridentities ON coloridentities.id = decks.identity_id")

	if !includeThemed {
		q = q.Where("events.themed = ?", false)
	}
	if userID != nil {
		q = q.Where("performances.user_id = ?", *userID)
	}

	var rows []repository.PerformanceIdentity
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) FinishedMatches(ctx context.Context, includeThemed bool) ([]*domain.Match, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Joins("JOIN events ON events.id = matches.event_id").
		Where("matches.end_time IS NOT NULL")
	if !includeThemed {
		q = q.Where("events.themed = ?", false)
	}

	var matches []*domain.Match
	if err := q.Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *statsRepository) WatchlistPerformances(ctx context.Context) ([]repository.WatchlistPerformance, error) {
	var rows []repository.WatchlistPerformance
	err := r.db.WithContext(ctx).
		Table("performances").
		Select("cards.id AS card_id, cards.name AS card_name, performances.placement").
		Joins("JOIN decks ON decks.id = performances.deck_id").
		Joins("JOIN decklist_entries ON decklist_entries.deck_id = decks.id").
		Joins("JOIN cards ON cards.id = decklist_entries.card_id").
		Where("cards.watchlist = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
