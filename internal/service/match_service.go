package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/gorm"
)

// Broadcaster pushes live updates to clients watching a league night.
// Implemented by the websocket hub; nil disables broadcasting.
type Broadcaster interface {
	BroadcastEvent(eventID uint, msgType string, payload interface{})
}

type MatchService struct {
	matchRepo repository.MatchRepository
	perfRepo  repository.PerformanceRepository
	broadcast Broadcaster
}

func NewMatchService(matchRepo repository.MatchRepository, perfRepo repository.PerformanceRepository, broadcast Broadcaster) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		perfRepo:  perfRepo,
		broadcast: broadcast,
	}
}

// Create adds a pod to an event, auto-named "Match N".
func (s *MatchService) Create(ctx context.Context, eventID uint) (*domain.Match, error) {
	count, err := s.matchRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	match := &domain.Match{
		EventID: eventID,
		Name:    fmt.Sprintf("Match %d", count+1),
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.emit(match.EventID, "match_created", match)
	return match, nil
}

func (s *MatchService) ApplyPatch(ctx context.Context, id uint, patch domain.MatchPatch) (*domain.Match, error) {
	match, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Start != nil {
		match.Start = patch.Start
	}
	if patch.End != nil {
		match.End = patch.End
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, err
	}

	s.emit(match.EventID, "match_updated", match)
	return match, nil
}

// Delete removes a match that has not started yet; its performances go with
// it. Started matches are league history and stay.
func (s *MatchService) Delete(ctx context.Context, id uint) error {
	match, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if match.Start != nil {
		return domain.ErrMatchStarted
	}

	if err := s.perfRepo.DeleteByMatchID(ctx, match.ID); err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, match.ID); err != nil {
		return err
	}

	s.emit(match.EventID, "match_deleted", match.ID)
	return nil
}

func (s *MatchService) get(ctx context.Context, id uint) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMatchNotFound
	}
	return match, err
}

func (s *MatchService) emit(eventID uint, msgType string, payload interface{}) {
	if s.broadcast != nil {
		s.broadcast.BroadcastEvent(eventID, msgType, payload)
	}
}
