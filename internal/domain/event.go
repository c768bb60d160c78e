package domain

import "time"

type Event struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Name    string    `json:"name" gorm:"size:64"`
	Time    time.Time `json:"time"`
	Themed  bool      `json:"themed"`
	ThemeID *uint     `json:"themeId"`
	Weekly  bool      `json:"weekly"`
}

type Match struct {
	ID      uint       `json:"id" gorm:"primaryKey"`
	EventID uint       `json:"eventId" gorm:"index;not null"`
	Name    string     `json:"name" gorm:"size:64"`
	Start   *time.Time `json:"start" gorm:"column:start_time"`
	End     *time.Time `json:"end" gorm:"column:end_time"`
	WinCon  int        `json:"winconId"`
	Power   int        `json:"power"`
}

type Performance struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	MatchID   uint  `json:"matchId" gorm:"index;not null"`
	UserID    uint  `json:"userId" gorm:"index;not null"`
	DeckID    *uint `json:"deckId"`
	Order     int   `json:"order" gorm:"column:turn_order"`
	Placement *int  `json:"placement"`
	KilledBy  *uint `json:"killedby"`

	// Display names resolved at read time, not persisted.
	Username     string `json:"username" gorm:"-"`
	KilledByName string `json:"killedbyname" gorm:"-"`
}

type Theme struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:32"`
	StyleName string `json:"stylename" gorm:"size:45"`
}

type MatchDetail struct {
	Match        *Match        `json:"match"`
	Performances []Performance `json:"performances"`
}

type EventDetail struct {
	Event   *Event        `json:"event"`
	Matches []MatchDetail `json:"matches"`
	Decks   []*Deck       `json:"decks"`
	Theme   *Theme        `json:"theme,omitempty"`
}

// MatchPatch is an explicit partial update for a match.
type MatchPatch struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// EventPatch is an explicit partial update for an event.
type EventPatch struct {
	Name    *string    `json:"name"`
	Time    *time.Time `json:"time"`
	Themed  *bool      `json:"themed"`
	ThemeID *uint      `json:"themeId"`
}

// PerformancePatch is an explicit partial update for a performance row.
// ClearKilledBy wins over KilledBy when both are set.
type PerformancePatch struct {
	Placement     *int  `json:"placement"`
	Order         *int  `json:"order"`
	DeckID        *uint `json:"deckId"`
	KilledBy      *uint `json:"killedby"`
	ClearKilledBy bool  `json:"clearKilledby"`
}
