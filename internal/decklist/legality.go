package decklist

import (
	"fmt"

	"github.com/mike/commander-league-api/internal/domain"
)

// Rules holds the format numbers legality is checked against. The league has
// changed these between seasons, so they come from configuration.
type Rules struct {
	MainDeckSize      int
	CompanionDeckSize int
	SideboardLimit    int
	// SpecialCompanionID is the companion that grants the larger main deck.
	SpecialCompanionID string
}

// EvaluateLegality checks a deck against the format rules. It is a pure
// function of the deck, its entries and their card records; every check runs
// and failures accumulate rather than short-circuiting.
func EvaluateLegality(deck *domain.Deck, entries []*domain.DecklistEntry, cards map[string]*domain.Card, rules Rules) domain.LegalityResult {
	result := domain.LegalityResult{Legal: true, Messages: []string{}}

	if deck.CommanderID == nil || *deck.CommanderID == "" {
		result.Legal = false
		result.Messages = append(result.Messages, "Missing commander")
	}

	mainCount := 0
	sideCount := 0
	for _, entry := range entries {
		if entry.IsSideboard {
			sideCount += entry.Count
		} else {
			mainCount += entry.Count
		}
		if card, ok := cards[entry.CardID]; ok && card.Banned {
			result.Legal = false
			result.Messages = append(result.Messages, fmt.Sprintf("Contains banned card %s", card.Name))
		}
	}

	expected := rules.MainDeckSize
	if deck.CompanionID != nil && *deck.CompanionID == rules.SpecialCompanionID {
		expected = rules.CompanionDeckSize
	}
	if mainCount != expected {
		result.Legal = false
		result.Messages = append(result.Messages, fmt.Sprintf("Invalid amount of cards. Expected %d, found %d", expected, mainCount))
	}

	if sideCount > rules.SideboardLimit {
		result.Legal = false
		result.Messages = append(result.Messages, fmt.Sprintf("Invalid amount of sideboard cards. Expected <= %d, found %d", rules.SideboardLimit, sideCount))
	}

	return result
}
