package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlayerID identifies a player within a roster (0-based seat index)
type PlayerID int

// Color is a mana-colour tag shown on a player's panel
type Color string

const (
	ColorWhite Color = "white"
	ColorBlue  Color = "blue"
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
	ColorGrey  Color = "grey"
)

// AllColors lists the colour tags in palette order
var AllColors = []Color{ColorWhite, ColorBlue, ColorRed, ColorBlack, ColorGreen, ColorGrey}

var colorTitle = cases.Title(language.English)

// ParseColor converts a user-supplied key into a Color
func ParseColor(key string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(key)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, key)
	}
	return c, nil
}

// Valid reports whether c is one of the known colour tags
func (c Color) Valid() bool {
	for _, known := range AllColors {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns the capitalised palette name, e.g. "Blue"
func (c Color) DisplayName() string {
	return colorTitle.String(string(c))
}

// Player is one seat at the table and its counters
type Player struct {
	ID     PlayerID
	Name   string
	Colors []Color // never empty; first entry is the primary colour

	Life            int
	CommanderDamage int
	PoisonCounters  int

	// Captured at roster initialization, used for end-of-game damage totals
	InitialLife            int
	InitialCommanderDamage int

	// Display selectors; they never change a counter value
	ShowCommander bool
	ShowPoison    bool
}

// DefaultPlayerName returns the name given to the player in the given seat
func DefaultPlayerName(id PlayerID) string {
	return fmt.Sprintf("Player %d", int(id)+1)
}

// Primary returns the colour that drives single-colour rendering
func (p *Player) Primary() Color {
	if len(p.Colors) == 0 {
		return ColorGrey
	}
	return p.Colors[0]
}

// HasColor reports whether c is already in the player's colour set
func (p *Player) HasColor(c Color) bool {
	for _, existing := range p.Colors {
		if existing == c {
			return true
		}
	}
	return false
}

// ToggleColor removes c if present, otherwise appends it.
// Removing the last colour leaves the player grey.
func (p *Player) ToggleColor(c Color) {
	if !p.HasColor(c) {
		p.Colors = append(p.Colors, c)
		return
	}

	remaining := make([]Color, 0, len(p.Colors))
	for _, existing := range p.Colors {
		if existing != c {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == 0 {
		remaining = []Color{ColorGrey}
	}
	p.Colors = remaining
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	cp := *p
	cp.Colors = append([]Color(nil), p.Colors...)
	return &cp
}

// NormalizeColors dedupes colours preserving first occurrence and
// substitutes grey for an empty list
func NormalizeColors(colors []Color) []Color {
	out := make([]Color, 0, len(colors))
	seen := make(map[Color]bool, len(colors))
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		out = []Color{ColorGrey}
	}
	return out
}

// PlayerConfig is the pre-game configuration for one seat
type PlayerConfig struct {
	Name   string
	Colors []Color
}

// ModeFlags are the per-player gameplay toggles held by the roster.
// Duel and CommanderOnly are never both set.
type ModeFlags struct {
	Duel          bool `json:"duel"`
	CommanderOnly bool `json:"commander_only"`
}
