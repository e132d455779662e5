package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session_started"
	EventSessionPaused  EventType = "session_paused"
	EventSessionResumed EventType = "session_resumed"
	EventGameEnded      EventType = "game_ended"

	// Player events
	EventCounterAdjusted         EventType = "counter_adjusted"
	EventDuelToggled             EventType = "duel_toggled"
	EventCommanderOnlyToggled    EventType = "commander_only_toggled"
	EventCommanderDisplayToggled EventType = "commander_display_toggled"
	EventPoisonToggled           EventType = "poison_toggled"
	EventColorToggled            EventType = "color_toggled"
	EventNameUpdated             EventType = "name_updated"
)

// Event is one entry in a session's chronology
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	PlayerID  *PlayerID // nil for session-wide events
	Payload   any       // Type-specific data
}

// SessionStartedPayload contains data for session started events
type SessionStartedPayload struct {
	GameMode      GameMode `json:"game_mode"`
	PlayerCount   int      `json:"player_count"`
	PoisonEnabled bool     `json:"poison_enabled"`
}

// CounterAdjustedPayload contains data for counter adjusted events
type CounterAdjustedPayload struct {
	Mode           CounterMode `json:"mode"`
	Amount         int         `json:"amount"`     // requested amount
	LifeDelta      int         `json:"life_delta"` // applied deltas after clamping
	CommanderDelta int         `json:"commander_delta"`
	PoisonDelta    int         `json:"poison_delta"`
}

// ModeToggledPayload contains the flags after a duel or commander-only toggle
type ModeToggledPayload struct {
	Flags ModeFlags `json:"flags"`
}

// DisplayToggledPayload contains the new value of a display selector
type DisplayToggledPayload struct {
	Enabled bool `json:"enabled"`
}

// ColorToggledPayload contains data for color toggled events
type ColorToggledPayload struct {
	Color  Color   `json:"color"`
	Colors []Color `json:"colors"` // resulting set
}

// NameUpdatedPayload contains data for name updated events
type NameUpdatedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}
