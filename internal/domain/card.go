package domain

import "time"

// Card is a canonical card record keyed by its oracle ID, not a per-printing
// ID. Printings carry the per-printing IDs and images.
type Card struct {
	ID         string `json:"id" gorm:"primaryKey;size:46"`
	Name       string `json:"name" gorm:"size:64;index"`
	TypeLine   string `json:"typeline" gorm:"size:128"`
	OracleText string `json:"oracletext" gorm:"size:2000"`
	ManaValue  int    `json:"mv"`
	ManaCost   string `json:"cost" gorm:"size:64"`
	IdentityID uint   `json:"identityId"`
	Banned     bool   `json:"banned"`
	Watchlist  bool   `json:"watchlist"`
	Custom     bool   `json:"custom"`
	Transform  bool   `json:"transform"`

	Identity *ColorIdentity `json:"identity,omitempty" gorm:"foreignKey:IdentityID"`
}

type Printing struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CardID      string    `json:"cardId" gorm:"size:46;index"`
	CardImage   string    `json:"cardimage" gorm:"size:256"`
	ArtCrop     string    `json:"artcrop" gorm:"size:256"`
	ReleaseDate time.Time `json:"releasedate"`
}
