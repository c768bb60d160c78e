package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/scryfall"
)

// FakeLookup implements service.CardLookup against an in-memory card set, so
// deck building tests never touch the real Scryfall API.
type FakeLookup struct {
	mu        sync.Mutex
	cards     map[string]scryfall.Card
	printings map[string][]scryfall.Card
	nameCalls int
}

func NewFakeLookup() *FakeLookup {
	return &FakeLookup{
		cards:     make(map[string]scryfall.Card),
		printings: make(map[string][]scryfall.Card),
	}
}

// Add registers a card for exact-name lookup, plus its own printing.
func (f *FakeLookup) Add(card scryfall.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[strings.ToLower(card.Name)] = card
	f.printings[card.OracleID] = append(f.printings[card.OracleID], card)
}

// AddNamed registers a minimal card with the given name and color identity
// letters, returning it for use in assertions.
func (f *FakeLookup) AddNamed(name string, identity ...string) scryfall.Card {
	card := scryfall.Card{
		ID:            uuid.New().String(),
		OracleID:      uuid.New().String(),
		Name:          name,
		TypeLine:      "Artifact",
		ManaCost:      "{1}",
		CMC:           1,
		ColorIdentity: identity,
		SetType:       "expansion",
		ReleasedAt:    "2020-01-01",
		ImageURIs: &scryfall.ImageURIs{
			Normal:  "https://cards.invalid/" + uuid.New().String() + ".jpg",
			ArtCrop: "https://cards.invalid/" + uuid.New().String() + "_crop.jpg",
		},
	}
	f.Add(card)
	return card
}

// AddToken registers a token card, which resolution must reject.
func (f *FakeLookup) AddToken(name string) scryfall.Card {
	card := scryfall.Card{
		ID:       uuid.New().String(),
		OracleID: uuid.New().String(),
		Name:     name,
		TypeLine: "Token Creature",
		SetType:  "token",
	}
	f.Add(card)
	return card
}

// NameCalls reports how many exact-name lookups have been made.
func (f *FakeLookup) NameCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nameCalls
}

func (f *FakeLookup) FindByExactName(ctx context.Context, name string) (*scryfall.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nameCalls++
	card, ok := f.cards[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, scryfall.ErrNotFound
	}
	return &card, nil
}

func (f *FakeLookup) FindPrintings(ctx context.Context, oracleID string) ([]scryfall.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.printings[oracleID], nil
}
