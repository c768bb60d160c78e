package domain

// ColorFlags is one combination of the five mana colors. The coloridentity
// table holds exactly one row per combination (32 rows total) and lookups are
// always exact-match on all five flags.
type ColorFlags struct {
	White bool
	Blue  bool
	Black bool
	Red   bool
	Green bool
}

// Union returns the flag-wise OR of two combinations.
func (f ColorFlags) Union(other ColorFlags) ColorFlags {
	return ColorFlags{
		White: f.White || other.White,
		Blue:  f.Blue || other.Blue,
		Black: f.Black || other.Black,
		Red:   f.Red || other.Red,
		Green: f.Green || other.Green,
	}
}

type ColorIdentity struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:16;not null"`
	White bool   `json:"white"`
	Blue  bool   `json:"blue"`
	Black bool   `json:"black"`
	Red   bool   `json:"red"`
	Green bool   `json:"green"`
}

func (ColorIdentity) TableName() string { return "coloridentities" }

func (c *ColorIdentity) Flags() ColorFlags {
	return ColorFlags{White: c.White, Blue: c.Blue, Black: c.Black, Red: c.Red, Green: c.Green}
}

// ColorlessIdentityID is the seeded row with no flags set, used as the
// default identity for decks without a commander.
const ColorlessIdentityID uint = 1

// AllColorIdentities returns the canonical seed rows, one per flag
// combination. IDs are stable; Colorless is always 1.
func AllColorIdentities() []*ColorIdentity {
	mk := func(id uint, name, letters string) *ColorIdentity {
		var f ColorFlags
		for _, l := range letters {
			switch l {
			case 'W':
				f.White = true
			case 'U':
				f.Blue = true
			case 'B':
				f.Black = true
			case 'R':
				f.Red = true
			case 'G':
				f.Green = true
			}
		}
		return &ColorIdentity{ID: id, Name: name, White: f.White, Blue: f.Blue, Black: f.Black, Red: f.Red, Green: f.Green}
	}
	return []*ColorIdentity{
		mk(1, "Colorless", ""),
		mk(2, "White", "W"),
		mk(3, "Blue", "U"),
		mk(4, "Black", "B"),
		mk(5, "Red", "R"),
		mk(6, "Green", "G"),
		mk(7, "Azorius", "WU"),
		mk(8, "Dimir", "UB"),
		mk(9, "Rakdos", "BR"),
		mk(10, "Gruul", "RG"),
		mk(11, "Selesnya", "GW"),
		mk(12, "Orzhov", "WB"),
		mk(13, "Izzet", "UR"),
		mk(14, "Golgari", "BG"),
		mk(15, "Boros", "RW"),
		mk(16, "Simic", "GU"),
		mk(17, "Bant", "GWU"),
		mk(18, "Esper", "WUB"),
		mk(19, "Grixis", "UBR"),
		mk(20, "Jund", "BRG"),
		mk(21, "Naya", "RGW"),
		mk(22, "Abzan", "WBG"),
		mk(23, "Jeskai", "URW"),
		mk(24, "Sultai", "BGU"),
		mk(25, "Mardu", "RWB"),
		mk(26, "Temur", "GUR"),
		mk(27, "Yore-Tiller", "WUBR"),
		mk(28, "Glint-Eye", "UBRG"),
		mk(29, "Dune-Brood", "BRGW"),
		mk(30, "Ink-Treader", "RGWU"),
		mk(31, "Witch-Maw", "GWUB"),
		mk(32, "Five-Color", "WUBRG"),
	}
}

// FlagsFromLetters maps Scryfall color-identity letters (W/U/B/R/G) onto
// flags. Unknown letters are ignored.
func FlagsFromLetters(letters []string) ColorFlags {
	var f ColorFlags
	for _, l := range letters {
		switch l {
		case "W":
			f.White = true
		case "U":
			f.Blue = true
		case "B":
			f.Black = true
		case "R":
			f.Red = true
		case "G":
			f.Green = true
		}
	}
	return f
}
