package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SessionID uniquely identifies a match session
type SessionID string

// GameMode selects the format whose starting values seed the roster
type GameMode string

const (
	GameModeCommander GameMode = "commander"
	GameModeStandard  GameMode = "standard"
	GameModeModern    GameMode = "modern"
	GameModePioneer   GameMode = "pioneer"
	GameModeLegacy    GameMode = "legacy"
	GameModeVintage   GameMode = "vintage"
)

// AllGameModes lists the known formats in menu order
var AllGameModes = []GameMode{
	GameModeCommander,
	GameModeStandard,
	GameModeModern,
	GameModePioneer,
	GameModeLegacy,
	GameModeVintage,
}

// ParseGameMode lowercases and trims a mode name. Unknown names are kept as-is
// and seed like commander.
func ParseGameMode(s string) GameMode {
	return GameMode(strings.ToLower(strings.TrimSpace(s)))
}

// DisplayName returns the capitalised mode name
func (m GameMode) DisplayName() string {
	return cases.Title(language.English).String(string(m))
}

// SessionState represents the lifecycle phase of a session
type SessionState string

const (
	SessionStateActive SessionState = "active" // Counters can be adjusted
	SessionStateEnded  SessionState = "ended"  // Summary produced, read-only
)

// Roster is the ordered set of players for one match plus their mode flags
type Roster struct {
	Players []*Player
	Modes   map[PlayerID]ModeFlags
}

// NewRoster creates a roster with no mode flags set
func NewRoster(players []*Player) *Roster {
	return &Roster{
		Players: players,
		Modes:   make(map[PlayerID]ModeFlags),
	}
}

// GetPlayer returns the player with the given ID, or nil if not found
func (r *Roster) GetPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Flags returns the mode flags for a player (zero value if never toggled)
func (r *Roster) Flags(id PlayerID) ModeFlags {
	return r.Modes[id]
}

// SetFlags stores the mode flags for a player
func (r *Roster) SetFlags(id PlayerID, flags ModeFlags) {
	if r.Modes == nil {
		r.Modes = make(map[PlayerID]ModeFlags)
	}
	r.Modes[id] = flags
}

// Clone returns a deep copy of the roster
func (r *Roster) Clone() *Roster {
	players := make([]*Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = p.Clone()
	}
	modes := make(map[PlayerID]ModeFlags, len(r.Modes))
	for id, f := range r.Modes {
		modes[id] = f
	}
	return &Roster{Players: players, Modes: modes}
}

// Feedback is the transient "+3 / -5" accumulator shown next to the player
// most recently adjusted
type Feedback struct {
	PlayerID       PlayerID
	Active         bool // false means no player is showing feedback
	Amount         int
	LastAdjustedAt time.Time
}

// Setup describes how to seed a session's roster
type Setup struct {
	// SessionID re-initializes an existing active session when set
	SessionID     SessionID
	PlayerCount   int
	GameMode      GameMode
	Players       []PlayerConfig
	PoisonEnabled bool
}

// Session wraps the live roster with its timing and format
type Session struct {
	ID            SessionID
	State         SessionState
	GameMode      GameMode
	PoisonEnabled bool
	Roster        *Roster

	// Timing
	StartedAt      time.Time
	PausedDuration time.Duration
	IsPaused       bool
	PauseStartedAt time.Time
	EndedAt        time.Time

	Feedback Feedback
	Events   []Event
}

// IsEnded returns true once the summary has been produced
func (s *Session) IsEnded() bool {
	return s.State == SessionStateEnded
}

// Clone returns a deep copy of the session suitable for handing to the
// presentation layer
func (s *Session) Clone() *Session {
	cp := *s
	if s.Roster != nil {
		cp.Roster = s.Roster.Clone()
	}
	cp.Events = append([]Event(nil), s.Events...)
	return &cp
}

// Update is returned to the presentation layer after every mutation
type Update struct {
	Session  *Session
	Feedback Feedback
}

// CoinSide is the outcome of a coin flip
type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)
