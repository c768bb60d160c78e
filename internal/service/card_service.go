package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"github.com/mike/commander-league-api/internal/scryfall"
	"gorm.io/gorm"
)

// ErrCardUnresolved means a name matched no real card: unknown to Scryfall,
// a token, or the lookup service was unreachable. Deck building skips such
// lines and keeps going.
var ErrCardUnresolved = errors.New("card could not be resolved")

// CardLookup is the slice of the Scryfall client deck building needs;
// narrowed to an interface so tests can resolve against a fixture set.
type CardLookup interface {
	FindByExactName(ctx context.Context, name string) (*scryfall.Card, error)
	FindPrintings(ctx context.Context, oracleID string) ([]scryfall.Card, error)
}

// CardService is the card resolution cache: local catalog first, Scryfall on
// a miss, persisting newly seen cards (and their printings) for next time.
type CardService struct {
	cardRepo     repository.CardRepository
	printingRepo repository.PrintingRepository
	colors       *ColorService
	lookup       CardLookup
}

func NewCardService(cardRepo repository.CardRepository, printingRepo repository.PrintingRepository, colors *ColorService, lookup CardLookup) *CardService {
	return &CardService{
		cardRepo:     cardRepo,
		printingRepo: printingRepo,
		colors:       colors,
		lookup:       lookup,
	}
}

func (s *CardService) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCardNotFound
	}
	return card, err
}

// Resolve maps a card name from a decklist line to its canonical record.
// Local catalog by exact trimmed name first, then Scryfall. A Scryfall hit
// is re-checked by oracle ID before inserting, since the local name lookup
// misses when the card was first stored under a different printing's name.
func (s *CardService) Resolve(ctx context.Context, name string) (*domain.Card, error) {
	name = strings.TrimSpace(name)

	card, err := s.cardRepo.GetByName(ctx, name)
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	found, err := s.lookup.FindByExactName(ctx, name)
	if err != nil {
		if errors.Is(err, scryfall.ErrNotFound) {
			return nil, ErrCardUnresolved
		}
		// Transient lookup failure: skip the line, keep the build going.
		log.Printf("WARN [CardService.Resolve] lookup failed for %q: %v", name, err)
		return nil, ErrCardUnresolved
	}
	if found.IsToken() {
		return nil, ErrCardUnresolved
	}

	card, err = s.cardRepo.GetByID(ctx, found.OracleID)
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	identity, err := s.colors.FromLetters(ctx, found.ColorIdentity)
	if err != nil {
		return nil, err
	}

	manaCost := found.ManaCost
	if manaCost == "" && len(found.CardFaces) > 0 {
		manaCost = found.CardFaces[0].ManaCost
	}

	card = &domain.Card{
		ID:         found.OracleID,
		Name:       found.Name,
		TypeLine:   found.TypeLine,
		OracleText: found.OracleText,
		ManaValue:  int(found.CMC),
		ManaCost:   manaCost,
		IdentityID: identity.ID,
		Transform:  len(found.CardFaces) > 1,
	}
	if err := s.cardRepo.Upsert(ctx, card); err != nil {
		return nil, err
	}
	log.Printf("INFO [CardService.Resolve] cached new card %s (%s)", card.Name, card.ID)

	s.fillPrintings(ctx, card.ID)

	return card, nil
}

// fillPrintings caches the card's printings for deck display if none are
// stored yet. Best effort; a failure never fails the resolution.
func (s *CardService) fillPrintings(ctx context.Context, cardID string) {
	existing, err := s.printingRepo.GetByCardID(ctx, cardID)
	if err != nil || len(existing) > 0 {
		return
	}

	found, err := s.lookup.FindPrintings(ctx, cardID)
	if err != nil {
		log.Printf("WARN [CardService.fillPrintings] printings lookup failed for %s: %v", cardID, err)
		return
	}

	printings := make([]*domain.Printing, 0, len(found))
	for _, p := range found {
		printing := &domain.Printing{
			ID:     p.ID,
			CardID: cardID,
		}
		images := p.ImageURIs
		if images == nil && len(p.CardFaces) > 0 {
			images = p.CardFaces[0].ImageURIs
		}
		if images != nil {
			printing.CardImage = images.Normal
			printing.ArtCrop = images.ArtCrop
		}
		if released, err := time.Parse("2006-01-02", p.ReleasedAt); err == nil {
			printing.ReleaseDate = released
		}
		printings = append(printings, printing)
	}

	if err := s.printingRepo.UpsertMany(ctx, printings); err != nil {
		log.Printf("WARN [CardService.fillPrintings] failed to store printings for %s: %v", cardID, err)
	}
}
