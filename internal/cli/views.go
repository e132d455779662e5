package cli

import (
	"time"

	"github.com/mcoot/lifecounter/internal/formats"
	"github.com/mcoot/lifecounter/internal/model"
	"github.com/mcoot/lifecounter/internal/services/counter"
)

// PlayerView is the rendered state of one seat
type PlayerView struct {
	Seat            int      `json:"seat"` // 1-based, as typed at the prompt
	Name            string   `json:"name"`
	Colors          []string `json:"colors"`
	Life            int      `json:"life"`
	CommanderDamage int      `json:"commander_damage"`
	PoisonCounters  *int     `json:"poison_counters,omitempty"`
	ShowCommander   bool     `json:"show_commander"`
	ShowPoison      bool     `json:"show_poison"`
	Mode            string   `json:"mode"`
}

// FeedbackView is the transient adjustment accumulator
type FeedbackView struct {
	Seat   *int `json:"seat"` // null when nothing is showing
	Amount int  `json:"amount"`
}

// SessionView is the full table state sent after every action
type SessionView struct {
	ID            string       `json:"id"`
	State         string       `json:"state"`
	GameMode      string       `json:"game_mode"`
	PoisonEnabled bool         `json:"poison_enabled"`
	Paused        bool         `json:"paused"`
	Players       []PlayerView `json:"players"`
	Feedback      FeedbackView `json:"feedback"`
}

// ShareView is one slice of a damage breakdown
type ShareView struct {
	Name       string  `json:"name"`
	Damage     int     `json:"damage"`
	Percentage float64 `json:"percentage"`
	ChartColor string  `json:"chart_color"`
}

// BreakdownView is a damage breakdown
type BreakdownView struct {
	Total    int         `json:"total"`
	NoDamage bool        `json:"no_damage"`
	Shares   []ShareView `json:"shares"`
}

// PlayerSummaryView is one player's end-of-game line
type PlayerSummaryView struct {
	Name                 string   `json:"name"`
	Colors               []string `json:"colors"`
	MainLifeDamage       int      `json:"main_life_damage"`
	CommanderDamageTaken int      `json:"commander_damage_taken"`
	TotalDamage          int      `json:"total_damage"`
	PoisonCounters       int      `json:"poison_counters"`
}

// SummaryView is the end-of-game summary
type SummaryView struct {
	Players       []PlayerSummaryView `json:"players"`
	ElapsedMs     int64               `json:"elapsed_ms"`
	PoisonEnabled bool                `json:"poison_enabled"`
	GameMode      string              `json:"game_mode"`
	MainLife      BreakdownView       `json:"main_life"`
	Commander     BreakdownView       `json:"commander"`
	StartedAt     time.Time           `json:"started_at"`
	EndedAt       time.Time           `json:"ended_at"`
	Timeline      []EventView         `json:"timeline"`
}

// EventView is one entry of the game chronology
type EventView struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Seat      *int      `json:"seat,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// FormatView is one game format's starting values
type FormatView struct {
	Mode                    string `json:"mode"`
	StartingLife            int    `json:"starting_life"`
	StartingCommanderDamage int    `json:"starting_commander_damage"`
}

// RollResult is the outcome of a dice roll
type RollResult struct {
	Sides  int `json:"sides"`
	Result int `json:"result"`
}

// FlipResult is the outcome of a coin flip
type FlipResult struct {
	Result string `json:"result"`
}

func colorNames(colors []model.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = string(c)
	}
	return out
}

func newSessionView(u *model.Update) SessionView {
	s := u.Session
	view := SessionView{
		ID:            string(s.ID),
		State:         string(s.State),
		GameMode:      string(s.GameMode),
		PoisonEnabled: s.PoisonEnabled,
		Paused:        s.IsPaused,
		Players:       make([]PlayerView, 0, len(s.Roster.Players)),
		Feedback:      FeedbackView{Amount: u.Feedback.Amount},
	}

	for _, p := range s.Roster.Players {
		pv := PlayerView{
			Seat:            int(p.ID) + 1,
			Name:            p.Name,
			Colors:          colorNames(p.Colors),
			Life:            p.Life,
			CommanderDamage: p.CommanderDamage,
			ShowCommander:   p.ShowCommander,
			ShowPoison:      p.ShowPoison,
			Mode:            string(counter.ResolveMode(p, s.Roster.Flags(p.ID), s.PoisonEnabled)),
		}
		if s.PoisonEnabled {
			poison := p.PoisonCounters
			pv.PoisonCounters = &poison
		}
		view.Players = append(view.Players, pv)
	}

	if u.Feedback.Active {
		seat := int(u.Feedback.PlayerID) + 1
		view.Feedback.Seat = &seat
	}

	return view
}

func newBreakdownView(b model.DamageBreakdown) BreakdownView {
	view := BreakdownView{
		Total:    b.Total,
		NoDamage: b.NoDamage,
		Shares:   make([]ShareView, 0, len(b.Shares)),
	}
	for _, s := range b.Shares {
		view.Shares = append(view.Shares, ShareView(s))
	}
	return view
}

func newSummaryView(s *model.Summary) SummaryView {
	view := SummaryView{
		Players:       make([]PlayerSummaryView, 0, len(s.Players)),
		ElapsedMs:     s.ElapsedMs(),
		PoisonEnabled: s.PoisonEnabled,
		GameMode:      string(s.GameMode),
		MainLife:      newBreakdownView(s.MainLife),
		Commander:     newBreakdownView(s.Commander),
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		Timeline:      make([]EventView, 0, len(s.Timeline)),
	}
	for _, p := range s.Players {
		view.Players = append(view.Players, PlayerSummaryView{
			Name:                 p.Name,
			Colors:               colorNames(p.Colors),
			MainLifeDamage:       p.MainLifeDamage,
			CommanderDamageTaken: p.CommanderDamageTaken,
			TotalDamage:          p.TotalDamage,
			PoisonCounters:       p.PoisonCounters,
		})
	}
	for _, e := range s.Timeline {
		ev := EventView{Type: string(e.Type), Timestamp: e.Timestamp, Payload: e.Payload}
		if e.PlayerID != nil {
			seat := int(*e.PlayerID) + 1
			ev.Seat = &seat
		}
		view.Timeline = append(view.Timeline, ev)
	}
	return view
}

func newFormatViews(all []formats.Format) []FormatView {
	views := make([]FormatView, 0, len(all))
	for _, f := range all {
		views = append(views, FormatView{
			Mode:                    string(f.Mode),
			StartingLife:            f.StartingLife,
			StartingCommanderDamage: f.StartingCommanderDamage,
		})
	}
	return views
}
