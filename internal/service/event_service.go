package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/gorm"
)

// ErrEventExistsToday enforces the one-league-night-per-day rule.
var ErrEventExistsToday = errors.New("event already created for today")

type EventService struct {
	eventRepo repository.EventRepository
	matchRepo repository.MatchRepository
	perfRepo  repository.PerformanceRepository
	deckRepo  repository.DeckRepository
	themeRepo repository.ThemeRepository
	userRepo  repository.UserRepository
}

func NewEventService(repos *repository.Repositories) *EventService {
	return &EventService{
		eventRepo: repos.Event,
		matchRepo: repos.Match,
		perfRepo:  repos.Performance,
		deckRepo:  repos.Deck,
		themeRepo: repos.Theme,
		userRepo:  repos.User,
	}
}

type CreateEventInput struct {
	Name   string
	Themed bool
	Weekly bool
}

// Create starts a league night. At most one event per rolling day; untitled
// weekly events are numbered "Weekly N" in sequence.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	now := time.Now().UTC()

	recent, err := s.eventRepo.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if recent > 0 {
		return nil, ErrEventExistsToday
	}

	name := input.Name
	if input.Weekly && !input.Themed {
		weeklies, err := s.eventRepo.CountWeekly(ctx)
		if err != nil {
			return nil, err
		}
		name = fmt.Sprintf("Weekly %d", weeklies+1)
	}
	if name == "" {
		name = "New Event"
	}

	event := &domain.Event{
		Name:   name,
		Time:   now,
		Themed: input.Themed,
		Weekly: input.Weekly,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) ApplyPatch(ctx context.Context, id uint, patch domain.EventPatch) (*domain.Event, error) {
	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Time != nil {
		event.Time = *patch.Time
	}
	if patch.Themed != nil {
		event.Themed = *patch.Themed
	}
	if patch.ThemeID != nil {
		event.ThemeID = patch.ThemeID
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetAll(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetDetail assembles the full league-night view: matches with their
// performances (usernames resolved), every deck for the score sheet, and the
// theme when set.
func (s *EventService) GetDetail(ctx context.Context, id uint) (*domain.EventDetail, error) {
	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	detail := &domain.EventDetail{
		Event:   event,
		Matches: make([]domain.MatchDetail, 0, len(matches)),
	}

	names := map[uint]string{}
	username := func(id uint) string {
		if name, ok := names[id]; ok {
			return name
		}
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return ""
		}
		names[id] = user.Username
		return user.Username
	}

	for _, match := range matches {
		perfs, err := s.perfRepo.GetByMatchID(ctx, match.ID)
		if err != nil {
			return nil, err
		}
		resolved := make([]domain.Performance, 0, len(perfs))
		for _, p := range perfs {
			p.Username = username(p.UserID)
			if p.KilledBy != nil {
				p.KilledByName = username(*p.KilledBy)
			}
			resolved = append(resolved, *p)
		}
		detail.Matches = append(detail.Matches, domain.MatchDetail{Match: match, Performances: resolved})
	}

	// The score sheet needs every deck; this should become a per-user query
	// once deck counts make it worth the extra round trips.
	if detail.Decks, err = s.deckRepo.GetAll(ctx); err != nil {
		return nil, err
	}

	if event.ThemeID != nil {
		if theme, err := s.themeRepo.GetByID(ctx, *event.ThemeID); err == nil {
			detail.Theme = theme
		}
	}

	return detail, nil
}

func (s *EventService) get(ctx context.Context, id uint) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEventNotFound
	}
	return event, err
}
