package decklist_test

import (
	"testing"

	"github.com/mike/commander-league-api/internal/decklist"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testRules = decklist.Rules{
	MainDeckSize:       60,
	CompanionDeckSize:  80,
	SideboardLimit:     7,
	SpecialCompanionID: "special-companion-oracle-id",
}

func mainEntries(deckID uint, total int) []*domain.DecklistEntry {
	entries := []*domain.DecklistEntry{
		{DeckID: deckID, CardID: "commander-id", Count: 1, IsCommander: true},
	}
	remaining := total - 1
	for remaining > 0 {
		count := 4
		if remaining < 4 {
			count = remaining
		}
		entries = append(entries, &domain.DecklistEntry{
			DeckID: deckID,
			CardID: "filler-" + string(rune('a'+len(entries))),
			Count:  count,
		})
		remaining -= count
	}
	return entries
}

func TestEvaluateLegality(t *testing.T) {
	commanderID := "commander-id"
	specialID := testRules.SpecialCompanionID

	tests := []struct {
		name         string
		deck         *domain.Deck
		entries      []*domain.DecklistEntry
		cards        map[string]*domain.Card
		wantLegal    bool
		wantMessages []string
	}{
		{
			name:      "legal sixty card deck",
			deck:      &domain.Deck{ID: 1, CommanderID: &commanderID},
			entries:   mainEntries(1, 60),
			wantLegal: true,
		},
		{
			name:      "missing commander",
			deck:      &domain.Deck{ID: 1},
			entries:   mainEntries(1, 60),
			wantLegal: false,
			wantMessages: []string{
				"Missing commander",
			},
		},
		{
			name:      "fifty nine cards",
			deck:      &domain.Deck{ID: 1, CommanderID: &commanderID},
			entries:   mainEntries(1, 59),
			wantLegal: false,
			wantMessages: []string{
				"Invalid amount of cards. Expected 60, found 59",
			},
		},
		{
			name: "banned card",
			deck: &domain.Deck{ID: 1, CommanderID: &commanderID},
			entries: append(mainEntries(1, 59), &domain.DecklistEntry{
				DeckID: 1, CardID: "banned-id", Count: 1,
			}),
			cards: map[string]*domain.Card{
				"banned-id": {ID: "banned-id", Name: "Lutri, the Spellchaser", Banned: true},
			},
			wantLegal: false,
			wantMessages: []string{
				"Contains banned card Lutri, the Spellchaser",
			},
		},
		{
			name: "special companion raises deck size",
			deck: &domain.Deck{ID: 1, CommanderID: &commanderID, CompanionID: &specialID},
			entries: append(mainEntries(1, 80), &domain.DecklistEntry{
				DeckID: 1, CardID: specialID, Count: 1, IsCompanion: true, IsSideboard: true,
			}),
			wantLegal: true,
		},
		{
			name: "special companion with sixty cards",
			deck: &domain.Deck{ID: 1, CommanderID: &commanderID, CompanionID: &specialID},
			entries: append(mainEntries(1, 60), &domain.DecklistEntry{
				DeckID: 1, CardID: specialID, Count: 1, IsCompanion: true, IsSideboard: true,
			}),
			wantLegal: false,
			wantMessages: []string{
				"Invalid amount of cards. Expected 80, found 60",
			},
		},
		{
			name: "oversized sideboard",
			deck: &domain.Deck{ID: 1, CommanderID: &commanderID},
			entries: append(mainEntries(1, 60), &domain.DecklistEntry{
				DeckID: 1, CardID: "side-id", Count: 8, IsSideboard: true,
			}),
			wantLegal: false,
			wantMessages: []string{
				"Invalid amount of sideboard cards. Expected <= 7, found 8",
			},
		},
		{
			name:      "failures accumulate",
			deck:      &domain.Deck{ID: 1},
			entries:   mainEntries(1, 59)[1:],
			wantLegal: false,
			wantMessages: []string{
				"Missing commander",
				"Invalid amount of cards. Expected 60, found 58",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := tt.cards
			if cards == nil {
				cards = map[string]*domain.Card{}
			}

			result := decklist.EvaluateLegality(tt.deck, tt.entries, cards, testRules)

			assert.Equal(t, tt.wantLegal, result.Legal)
			assert.ElementsMatch(t, tt.wantMessages, result.Messages)
		})
	}
}

func TestEvaluateLegality_OneMoreCardFixesCount(t *testing.T) {
	commanderID := "commander-id"
	deck := &domain.Deck{ID: 1, CommanderID: &commanderID}
	entries := mainEntries(1, 59)

	result := decklist.EvaluateLegality(deck, entries, map[string]*domain.Card{}, testRules)
	assert.False(t, result.Legal)

	entries = append(entries, &domain.DecklistEntry{DeckID: 1, CardID: "one-more", Count: 1})

	result = decklist.EvaluateLegality(deck, entries, map[string]*domain.Card{}, testRules)
	assert.True(t, result.Legal)
	assert.Empty(t, result.Messages)
}
