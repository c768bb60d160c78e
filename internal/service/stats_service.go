package service

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
	cardRepo  repository.CardRepository
}

func NewStatsService(statsRepo repository.StatsRepository, userRepo repository.UserRepository, cardRepo repository.CardRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		cardRepo:  cardRepo,
	}
}

// ColorStats is a per-color tally; Colorless counts decks whose identity is
// the colorless row, not an absence of data.
type ColorStats struct {
	White     float64 `json:"w"`
	Blue      float64 `json:"u"`
	Black     float64 `json:"b"`
	Red       float64 `json:"r"`
	Green     float64 `json:"g"`
	Colorless float64 `json:"c"`
}

type UserStats struct {
	MatchesPlayed    int        `json:"matchesplayed"`
	MatchesWon       int        `json:"matcheswon"`
	AveragePlacement float64    `json:"averageplacement"`
	ColorPlayCounts  ColorStats `json:"colorplaycount"`
	ColorWinRates    ColorStats `json:"colorwinrates"`
}

type GlobalStats struct {
	MatchesPlayed    int        `json:"matchesplayed"`
	AverageMatchSize float64    `json:"averagematchsize"`
	AverageMatchTime float64    `json:"averagematchtime"`
	ColorPlayCounts  ColorStats `json:"colorplaycount"`
	ColorWinRates    ColorStats `json:"colorwinrates"`
}

type WatchlistCardStats struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	PlayCount        int     `json:"playcount"`
	WinCount         int     `json:"wincount"`
	AveragePlacement float64 `json:"average"`
}

func (c *ColorStats) add(row repository.PerformanceIdentity) {
	if row.White {
		c.White++
	}
	if row.Blue {
		c.Blue++
	}
	if row.Black {
		c.Black++
	}
	if row.Red {
		c.Red++
	}
	if row.Green {
		c.Green++
	}
	if row.IdentityID == domain.ColorlessIdentityID {
		c.Colorless++
	}
}

func (c *ColorStats) divideBy(counts ColorStats) {
	div := func(sum, count float64) float64 {
		if count > 0 {
			return sum / count
		}
		return 0
	}
	c.White = div(c.White, counts.White)
	c.Blue = div(c.Blue, counts.Blue)
	c.Black = div(c.Black, counts.Black)
	c.Red = div(c.Red, counts.Red)
	c.Green = div(c.Green, counts.Green)
	c.Colorless = div(c.Colorless, counts.Colorless)
}

// UserStats aggregates one player's placements and color spread. Themed
// events are for fun and excluded unless asked for.
func (s *StatsService) UserStats(ctx context.Context, userID uint, includeThemed bool) (*UserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	rows, err := s.statsRepo.PerformanceIdentities(ctx, &userID, includeThemed)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{}
	placementSum := 0
	for _, row := range rows {
		if row.Placement == nil {
			continue
		}
		stats.MatchesPlayed++
		placementSum += *row.Placement
		stats.ColorPlayCounts.add(row)
		if *row.Placement == 1 {
			stats.MatchesWon++
			stats.ColorWinRates.add(row)
		}
	}

	if stats.MatchesPlayed > 0 {
		stats.AveragePlacement = float64(placementSum) / float64(stats.MatchesPlayed)
	}
	stats.ColorWinRates.divideBy(stats.ColorPlayCounts)

	return stats, nil
}

// GlobalStats aggregates the whole league: finished-match durations, pod
// sizes, and the color spread across all recorded performances.
func (s *StatsService) GlobalStats(ctx context.Context, includeThemed bool) (*GlobalStats, error) {
	rows, err := s.statsRepo.PerformanceIdentities(ctx, nil, includeThemed)
	if err != nil {
		return nil, err
	}
	matches, err := s.statsRepo.FinishedMatches(ctx, includeThemed)
	if err != nil {
		return nil, err
	}

	stats := &GlobalStats{MatchesPlayed: len(matches)}

	var totalSeconds float64
	for _, m := range matches {
		if m.Start != nil && m.End != nil {
			totalSeconds += m.End.Sub(*m.Start).Seconds()
		}
	}
	if len(matches) > 0 {
		stats.AverageMatchTime = totalSeconds / float64(len(matches))
	}

	performanceCount := 0
	for _, row := range rows {
		if row.Placement == nil {
			continue
		}
		performanceCount++
		stats.ColorPlayCounts.add(row)
		if *row.Placement == 1 {
			stats.ColorWinRates.add(row)
		}
	}
	if len(matches) > 0 {
		stats.AverageMatchSize = float64(performanceCount) / float64(len(matches))
	}
	stats.ColorWinRates.divideBy(stats.ColorPlayCounts)

	return stats, nil
}

// WatchlistStats reports play and win counts for every watchlisted card, the
// input for ban discussions.
func (s *StatsService) WatchlistStats(ctx context.Context) ([]WatchlistCardStats, error) {
	watchlist, err := s.cardRepo.GetWatchlist(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.statsRepo.WatchlistPerformances(ctx)
	if err != nil {
		return nil, err
	}

	byCard := map[string]*WatchlistCardStats{}
	result := make([]WatchlistCardStats, 0, len(watchlist))
	for _, card := range watchlist {
		byCard[card.ID] = &WatchlistCardStats{ID: card.ID, Name: card.Name}
	}

	placementSums := map[string]int{}
	for _, row := range rows {
		stats, ok := byCard[row.CardID]
		if !ok {
			continue
		}
		stats.PlayCount++
		if row.Placement != nil {
			placementSums[row.CardID] += *row.Placement
			if *row.Placement == 1 {
				stats.WinCount++
			}
		}
	}

	for _, card := range watchlist {
		stats := byCard[card.ID]
		if stats.PlayCount > 0 {
			stats.AveragePlacement = float64(placementSums[card.ID]) / float64(stats.PlayCount)
		}
		result = append(result, *stats)
	}

	return result, nil
}
