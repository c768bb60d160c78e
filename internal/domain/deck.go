package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Deck struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"userId" gorm:"index;not null"`
	Name             string         `json:"name" gorm:"size:64"`
	CommanderID      *string        `json:"commander" gorm:"size:46"`
	PartnerID        *string        `json:"partner" gorm:"size:46"`
	CompanionID      *string        `json:"companion" gorm:"size:46"`
	IdentityID       uint           `json:"identityId" gorm:"not null"`
	Power            int            `json:"power"`
	IsLegal          bool           `json:"islegal"`
	LegalityMessages datatypes.JSON `json:"legalityMessages" gorm:"type:jsonb"`
	Image            string         `json:"image" gorm:"size:256"`
	LastUsed         *time.Time     `json:"lastused"`
	LastUpdated      time.Time      `json:"lastupdated"`
}

// DecklistEntry rows are unique per (deck, card); rebuilding a deck upserts
// entries instead of duplicating them.
type DecklistEntry struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	DeckID      uint   `json:"deckId" gorm:"uniqueIndex:idx_deck_card;not null"`
	CardID      string `json:"cardId" gorm:"uniqueIndex:idx_deck_card;size:46;not null"`
	Count       int    `json:"count" gorm:"not null"`
	IsCommander bool   `json:"iscommander"`
	IsCompanion bool   `json:"iscompanion"`
	IsSideboard bool   `json:"issideboard"`
}

// DeckPatch is an explicit partial update. Nil fields are untouched; for the
// card slots an empty string clears the slot.
type DeckPatch struct {
	Name        *string `json:"name"`
	CommanderID *string `json:"commander"`
	PartnerID   *string `json:"partner"`
	CompanionID *string `json:"companion"`
	Power       *int    `json:"power"`
	// Card IDs to move into or out of the sideboard pool.
	SideboardAdd    *string `json:"sideboardAdd"`
	SideboardRemove *string `json:"sideboardRemove"`
}

type LegalityResult struct {
	Legal    bool     `json:"legal"`
	Messages []string `json:"messages"`
}

// DeckDetail is the full deck view returned by the API: the deck, its entries
// joined with card records, and a freshly evaluated legality result.
type DeckDetail struct {
	Deck     *Deck           `json:"deck"`
	Cards    []DecklistCard  `json:"cardlist"`
	Legality *LegalityResult `json:"legality"`
}

type DecklistCard struct {
	Entry DecklistEntry `json:"entry"`
	Card  Card          `json:"card"`
}
