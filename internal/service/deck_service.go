package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mike/commander-league-api/internal/config"
	"github.com/mike/commander-league-api/internal/decklist"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"gorm.io/gorm"
)

// DeckService drives decklist processing: it walks raw list text line by
// line, resolves cards, maintains the commander/partner/companion slots and
// the deck's combined color identity, and keeps legality current.
type DeckService struct {
	deckRepo     repository.DeckRepository
	decklistRepo repository.DecklistRepository
	perfRepo     repository.PerformanceRepository
	cardRepo     repository.CardRepository
	cards        *CardService
	colors       *ColorService
	rules        decklist.Rules

	// Builds and patches for the same deck are serialized; concurrent
	// updates would race on the commander/partner/identity triple.
	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex
}

func NewDeckService(repos *repository.Repositories, cards *CardService, colors *ColorService, cfg *config.Config) *DeckService {
	return &DeckService{
		deckRepo:     repos.Deck,
		decklistRepo: repos.Decklist,
		perfRepo:     repos.Performance,
		cardRepo:     repos.Card,
		cards:        cards,
		colors:       colors,
		rules: decklist.Rules{
			MainDeckSize:       cfg.MainDeckSize,
			CompanionDeckSize:  cfg.CompanionDeckSize,
			SideboardLimit:     cfg.SideboardLimit,
			SpecialCompanionID: cfg.SpecialCompanionID,
		},
		locks: make(map[uint]*sync.Mutex),
	}
}

func (s *DeckService) lockDeck(id uint) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// forgetLock drops a deleted deck's mutex so the locks map doesn't grow with
// every deck ever created.
func (s *DeckService) forgetLock(id uint) {
	s.locksMu.Lock()
	delete(s.locks, id)
	s.locksMu.Unlock()
}

type BuildDeckInput struct {
	UserID uint
	Name   string
	List   string
}

// BuildDeck creates a deck and processes its decklist. Unresolvable lines
// are skipped, so the build succeeds even for partially bad input; the
// resulting legality messages describe what is off.
func (s *DeckService) BuildDeck(ctx context.Context, input BuildDeckInput) (*domain.Deck, error) {
	name := input.Name
	if name == "" {
		name = "New Deck"
	}

	deck := &domain.Deck{
		UserID:      input.UserID,
		Name:        name,
		IdentityID:  domain.ColorlessIdentityID,
		LastUpdated: time.Now(),
	}
	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, err
	}

	unlock := s.lockDeck(deck.ID)
	defer unlock()

	if err := s.processList(ctx, deck, input.List); err != nil {
		return nil, err
	}
	if _, err := s.refreshLegality(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// RebuildList reprocesses an existing deck's list from scratch. The slots,
// identity, and entries are all derived from the list text, so they are reset
// first; reprocessing against populated slots would promote the unchanged
// commander into the partner slot, and entries dropped from the list would
// survive as stale rows.
func (s *DeckService) RebuildList(ctx context.Context, deckID uint, list string) (*domain.Deck, error) {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockDeck(deck.ID)
	defer unlock()

	deck.CommanderID = nil
	deck.PartnerID = nil
	deck.CompanionID = nil
	deck.IdentityID = domain.ColorlessIdentityID
	if err := s.decklistRepo.DeleteByDeckID(ctx, deck.ID); err != nil {
		return nil, err
	}

	if err := s.processList(ctx, deck, list); err != nil {
		return nil, err
	}
	if _, err := s.refreshLegality(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// processList is the region state machine. The active region is sticky: it
// persists across card lines until another header switches it. Lines that
// parse but resolve to nothing (section headers, typos) are checked for
// header words too, since "Commander" parses as a perfectly good card name.
func (s *DeckService) processList(ctx context.Context, deck *domain.Deck, list string) error {
	region := decklist.RegionNone

	for _, raw := range strings.Split(list, "\n") {
		line, ok := decklist.ParseLine(raw)
		if !ok {
			if hinted, isHeader := decklist.RegionHint(raw); isHeader {
				region = hinted
			}
			continue
		}

		card, err := s.cards.Resolve(ctx, line.Name)
		if err != nil {
			if errors.Is(err, ErrCardUnresolved) {
				if hinted, isHeader := decklist.RegionHint(raw); isHeader {
					region = hinted
				} else {
					log.Printf("INFO [DeckService.processList] skipping unresolved line %q", strings.TrimSpace(raw))
				}
				continue
			}
			return err
		}

		isCommander := region == decklist.RegionCommander || line.ExplicitCommander
		isCompanion := region == decklist.RegionCompanion
		isSideboard := region == decklist.RegionSideboard || isCompanion

		if isCommander {
			switch {
			case deck.CommanderID == nil:
				deck.CommanderID = &card.ID
				deck.IdentityID = card.IdentityID
			case deck.PartnerID == nil:
				combined, err := s.colors.CombineIDs(ctx, deck.IdentityID, card.IdentityID)
				if err != nil {
					return err
				}
				deck.PartnerID = &card.ID
				deck.IdentityID = combined.ID
			default:
				// Both slots taken; keep the card as a plain entry.
				isCommander = false
			}
		} else if isCompanion {
			deck.CompanionID = &card.ID
		}

		entry := &domain.DecklistEntry{
			DeckID:      deck.ID,
			CardID:      card.ID,
			Count:       line.Count,
			IsCommander: isCommander,
			IsCompanion: isCompanion,
			IsSideboard: isSideboard,
		}
		if err := s.decklistRepo.UpsertEntry(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

// refreshLegality re-evaluates the deck and persists the verdict alongside
// the deck row.
func (s *DeckService) refreshLegality(ctx context.Context, deck *domain.Deck) (*domain.LegalityResult, error) {
	entries, err := s.decklistRepo.GetByDeckID(ctx, deck.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.CardID)
	}
	cards := map[string]*domain.Card{}
	if len(ids) > 0 {
		if cards, err = s.cardRepo.GetByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	result := decklist.EvaluateLegality(deck, entries, cards, s.rules)

	deck.IsLegal = result.Legal
	if messages, err := json.Marshal(result.Messages); err == nil {
		deck.LegalityMessages = messages
	}
	deck.LastUpdated = time.Now()
	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *DeckService) getDeck(ctx context.Context, id uint) (*domain.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDeckNotFound
	}
	return deck, err
}

// GetDeck returns the deck, its entries joined with card records, and a
// freshly evaluated legality result.
func (s *DeckService) GetDeck(ctx context.Context, id uint) (*domain.DeckDetail, error) {
	deck, err := s.getDeck(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.decklistRepo.GetByDeckID(ctx, deck.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.CardID)
	}
	cards := map[string]*domain.Card{}
	if len(ids) > 0 {
		if cards, err = s.cardRepo.GetByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	cardList := make([]domain.DecklistCard, 0, len(entries))
	for _, e := range entries {
		item := domain.DecklistCard{Entry: *e}
		if card, ok := cards[e.CardID]; ok {
			item.Card = *card
		}
		cardList = append(cardList, item)
	}

	legality := decklist.EvaluateLegality(deck, entries, cards, s.rules)

	return &domain.DeckDetail{
		Deck:     deck,
		Cards:    cardList,
		Legality: &legality,
	}, nil
}

func (s *DeckService) GetUserDecks(ctx context.Context, userID uint) ([]*domain.Deck, error) {
	return s.deckRepo.GetByUserID(ctx, userID)
}

// ApplyPatch applies an explicit partial update. Slot changes keep the
// decklist entry flags in sync with the deck references and recompute the
// combined identity before legality is re-evaluated.
func (s *DeckService) ApplyPatch(ctx context.Context, deckID uint, patch domain.DeckPatch) (*domain.Deck, error) {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockDeck(deck.ID)
	defer unlock()

	if patch.Name != nil {
		deck.Name = *patch.Name
	}
	if patch.Power != nil {
		deck.Power = *patch.Power
	}

	if patch.CommanderID != nil {
		if err := s.setCommander(ctx, deck, *patch.CommanderID); err != nil {
			return nil, err
		}
	}
	if patch.PartnerID != nil {
		if err := s.setPartner(ctx, deck, *patch.PartnerID); err != nil {
			return nil, err
		}
	}
	if patch.CompanionID != nil {
		if err := s.setCompanion(ctx, deck, *patch.CompanionID); err != nil {
			return nil, err
		}
	}
	if patch.SideboardAdd != nil {
		if err := s.setSideboard(ctx, deck.ID, *patch.SideboardAdd, true); err != nil {
			return nil, err
		}
	}
	if patch.SideboardRemove != nil {
		if err := s.setSideboard(ctx, deck.ID, *patch.SideboardRemove, false); err != nil {
			return nil, err
		}
	}

	if _, err := s.refreshLegality(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) setCommander(ctx context.Context, deck *domain.Deck, cardID string) error {
	if deck.CommanderID != nil {
		if err := s.clearEntryFlag(ctx, deck.ID, *deck.CommanderID, func(e *domain.DecklistEntry) { e.IsCommander = false }); err != nil {
			return err
		}
	}

	if cardID == "" {
		deck.CommanderID = nil
		return s.recomputeIdentity(ctx, deck)
	}

	entry, err := s.requireEntry(ctx, deck.ID, cardID)
	if err != nil {
		return err
	}
	entry.IsCommander = true
	if err := s.decklistRepo.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	deck.CommanderID = &cardID
	return s.recomputeIdentity(ctx, deck)
}

func (s *DeckService) setPartner(ctx context.Context, deck *domain.Deck, cardID string) error {
	if deck.PartnerID != nil {
		if err := s.clearEntryFlag(ctx, deck.ID, *deck.PartnerID, func(e *domain.DecklistEntry) { e.IsCommander = false }); err != nil {
			return err
		}
	}

	if cardID == "" {
		deck.PartnerID = nil
		return s.recomputeIdentity(ctx, deck)
	}

	entry, err := s.requireEntry(ctx, deck.ID, cardID)
	if err != nil {
		return err
	}
	entry.IsCommander = true
	if err := s.decklistRepo.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	deck.PartnerID = &cardID
	return s.recomputeIdentity(ctx, deck)
}

func (s *DeckService) setCompanion(ctx context.Context, deck *domain.Deck, cardID string) error {
	if deck.CompanionID != nil {
		if err := s.clearEntryFlag(ctx, deck.ID, *deck.CompanionID, func(e *domain.DecklistEntry) {
			e.IsCompanion = false
			e.IsSideboard = false
		}); err != nil {
			return err
		}
	}

	if cardID == "" {
		deck.CompanionID = nil
		return nil
	}

	entry, err := s.requireEntry(ctx, deck.ID, cardID)
	if err != nil {
		return err
	}
	entry.IsCompanion = true
	entry.IsSideboard = true
	if err := s.decklistRepo.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	deck.CompanionID = &cardID
	return nil
}

func (s *DeckService) setSideboard(ctx context.Context, deckID uint, cardID string, sideboard bool) error {
	entry, err := s.requireEntry(ctx, deckID, cardID)
	if err != nil {
		return err
	}
	entry.IsSideboard = sideboard
	return s.decklistRepo.UpdateEntry(ctx, entry)
}

// recomputeIdentity rebuilds the deck's combined identity from whichever of
// commander and partner are set. It runs on every slot change so the stored
// identity can never go stale.
func (s *DeckService) recomputeIdentity(ctx context.Context, deck *domain.Deck) error {
	var commander, partner *domain.Card
	var err error

	if deck.CommanderID != nil {
		if commander, err = s.cardRepo.GetByID(ctx, *deck.CommanderID); err != nil {
			return err
		}
	}
	if deck.PartnerID != nil {
		if partner, err = s.cardRepo.GetByID(ctx, *deck.PartnerID); err != nil {
			return err
		}
	}

	switch {
	case commander != nil && partner != nil:
		combined, err := s.colors.CombineIDs(ctx, commander.IdentityID, partner.IdentityID)
		if err != nil {
			return err
		}
		deck.IdentityID = combined.ID
	case commander != nil:
		deck.IdentityID = commander.IdentityID
	case partner != nil:
		deck.IdentityID = partner.IdentityID
	default:
		deck.IdentityID = domain.ColorlessIdentityID
	}
	return nil
}

func (s *DeckService) requireEntry(ctx context.Context, deckID uint, cardID string) (*domain.DecklistEntry, error) {
	entry, err := s.decklistRepo.GetEntry(ctx, deckID, cardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCardNotFound
	}
	return entry, err
}

func (s *DeckService) clearEntryFlag(ctx context.Context, deckID uint, cardID string, clear func(*domain.DecklistEntry)) error {
	entry, err := s.decklistRepo.GetEntry(ctx, deckID, cardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	clear(entry)
	return s.decklistRepo.UpdateEntry(ctx, entry)
}

// DeleteDeck removes a deck and its entries unless it has been played in
// recorded matches.
func (s *DeckService) DeleteDeck(ctx context.Context, id uint) error {
	deck, err := s.getDeck(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.lockDeck(deck.ID)
	defer unlock()

	used, err := s.perfRepo.CountByDeckID(ctx, deck.ID)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrDeckInUse
	}

	if err := s.decklistRepo.DeleteByDeckID(ctx, deck.ID); err != nil {
		return err
	}
	if err := s.deckRepo.Delete(ctx, deck.ID); err != nil {
		return err
	}
	s.forgetLock(deck.ID)
	return nil
}
