package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/gorm"
)

var ErrPerformanceNotFound = errors.New("performance not found")

type PerformanceService struct {
	perfRepo  repository.PerformanceRepository
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	broadcast Broadcaster
}

func NewPerformanceService(perfRepo repository.PerformanceRepository, matchRepo repository.MatchRepository, userRepo repository.UserRepository, broadcast Broadcaster) *PerformanceService {
	return &PerformanceService{
		perfRepo:  perfRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		broadcast: broadcast,
	}
}

// Create seats a player at a match.
func (s *PerformanceService) Create(ctx context.Context, matchID uint, userPublicID uuid.UUID) (*domain.Performance, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPublicID(ctx, userPublicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	perf := &domain.Performance{
		MatchID: match.ID,
		UserID:  user.ID,
	}
	if err := s.perfRepo.Create(ctx, perf); err != nil {
		return nil, err
	}

	s.emit(match.EventID, "performance_created", perf)
	return perf, nil
}

func (s *PerformanceService) ApplyPatch(ctx context.Context, id uint, patch domain.PerformancePatch) (*domain.Performance, error) {
	perf, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Placement != nil {
		perf.Placement = patch.Placement
	}
	if patch.Order != nil {
		perf.Order = *patch.Order
	}
	if patch.DeckID != nil {
		perf.DeckID = patch.DeckID
	}
	if patch.ClearKilledBy {
		perf.KilledBy = nil
	} else if patch.KilledBy != nil {
		perf.KilledBy = patch.KilledBy
	}

	if err := s.perfRepo.Update(ctx, perf); err != nil {
		return nil, err
	}

	if match, err := s.matchRepo.GetByID(ctx, perf.MatchID); err == nil {
		s.emit(match.EventID, "performance_updated", perf)
	}
	return perf, nil
}

// Delete unseats a player, allowed only before the match starts.
func (s *PerformanceService) Delete(ctx context.Context, id uint) error {
	perf, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	match, err := s.matchRepo.GetByID(ctx, perf.MatchID)
	if err != nil {
		return err
	}
	if match.Start != nil {
		return domain.ErrMatchStarted
	}

	if err := s.perfRepo.Delete(ctx, perf.ID); err != nil {
		return err
	}

	s.emit(match.EventID, "performance_deleted", perf.ID)
	return nil
}

func (s *PerformanceService) GetByMatch(ctx context.Context, matchID uint) ([]*domain.Performance, error) {
	return s.perfRepo.GetByMatchID(ctx, matchID)
}

func (s *PerformanceService) get(ctx context.Context, id uint) (*domain.Performance, error) {
	perf, err := s.perfRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPerformanceNotFound
	}
	return perf, err
}

func (s *PerformanceService) emit(eventID uint, msgType string, payload interface{}) {
	if s.broadcast != nil {
		s.broadcast.BroadcastEvent(eventID, msgType, payload)
	}
}
