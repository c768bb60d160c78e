// Package decklist holds the pure pieces of the deck-building engine: the
// free-text line parser and the legality evaluator. Everything stateful
// (card resolution, persistence) lives in the service layer.
package decklist

import (
	"regexp"
	"strconv"
	"strings"
)

// Grammar: [<count>[x]] <name> [(<set code>) <collector number>] [*CMDR*].
// The name runs up to the first parenthetical or star marker; set code and
// collector number are ignored. The *CMDR* marker is stripped before
// matching, so the expression only has to carve count and name.
var lineRegex = regexp.MustCompile(`^(\d+x?)?\s*([^(\n*]+)(?:\(.*\))?`)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Line is one parsed decklist line.
type Line struct {
	Count int
	Name  string
	// ExplicitCommander is set by a trailing *CMDR* marker, which designates
	// the commander regardless of which section the line sits in.
	ExplicitCommander bool
}

const commanderMarker = "*CMDR*"

// ParseLine parses one line of raw decklist text. ok is false for lines that
// don't fit the grammar (blank lines and pure punctuation); callers feed
// those to RegionHint instead. Section headers like "Commander" do parse as
// card names here; they are weeded out when name resolution misses. The
// *CMDR* marker is honored wherever it appears; exported lists put it both
// before and after the card name depending on the source app.
func ParseLine(raw string) (Line, bool) {
	explicit := strings.Contains(raw, commanderMarker)
	if explicit {
		raw = strings.TrimSpace(strings.ReplaceAll(raw, commanderMarker, " "))
	}

	m := lineRegex.FindStringSubmatch(raw)
	if m == nil {
		return Line{}, false
	}

	name := strings.TrimSpace(m[2])
	if name == "" {
		return Line{}, false
	}

	// Counts are at least 1; "0 Forest" reads as one Forest rather than a
	// zero-count row.
	count := 1
	if m[1] != "" {
		digits := nonDigits.ReplaceAllString(m[1], "")
		if digits != "" {
			if n, err := strconv.Atoi(digits); err == nil && n > 0 {
				count = n
			}
		}
	}

	return Line{
		Count:             count,
		Name:              name,
		ExplicitCommander: explicit,
	}, true
}

// Region is the structural section a decklist line belongs to. Exactly one
// region is active at a time and it is sticky: it persists across card lines
// until another header switches it.
type Region int

const (
	RegionNone Region = iota
	RegionCommander
	RegionCompanion
	RegionSideboard
)

// RegionHint recognizes section-header lines by case-insensitive substring
// match. Returns the hinted region and whether the line was a header at all.
func RegionHint(raw string) (Region, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "commander"):
		return RegionCommander, true
	case strings.Contains(lower, "companion"):
		return RegionCompanion, true
	case strings.Contains(lower, "sideboard"):
		return RegionSideboard, true
	}
	return RegionNone, false
}
