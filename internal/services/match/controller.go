package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/lifecounter/internal/dependencies/clock"
	"github.com/mcoot/lifecounter/internal/formats"
	"github.com/mcoot/lifecounter/internal/model"
	"github.com/mcoot/lifecounter/internal/services/counter"
	"github.com/mcoot/lifecounter/internal/services/summary"
	"github.com/mcoot/lifecounter/internal/storage"
)

// Controller manages the roster lifecycle and routes player actions through
// the counter engine
type Controller struct {
	storage        storage.Storage
	formats        *formats.Registry
	clock          clock.Clock
	logger         *slog.Logger
	feedbackWindow time.Duration
	newID          func() model.SessionID
}

// NewController creates a new match Controller. A non-positive feedback
// window falls back to counter.DefaultFeedbackWindow.
func NewController(
	storage storage.Storage,
	formats *formats.Registry,
	clock clock.Clock,
	logger *slog.Logger,
	feedbackWindow time.Duration,
) *Controller {
	if feedbackWindow <= 0 {
		feedbackWindow = counter.DefaultFeedbackWindow
	}
	return &Controller{
		storage:        storage,
		formats:        formats,
		clock:          clock,
		logger:         logger,
		feedbackWindow: feedbackWindow,
		newID: func() model.SessionID {
			return model.SessionID(uuid.NewString())
		},
	}
}

// InitializeRoster seeds a roster from setup. If setup.SessionID names an
// active session its roster is replaced but its clock keeps running;
// otherwise a new session starts now.
func (c *Controller) InitializeRoster(ctx context.Context, setup model.Setup) (*model.Update, error) {
	for i, cfg := range setup.Players {
		for _, color := range cfg.Colors {
			if !color.Valid() {
				return nil, fmt.Errorf("player %d: %w: %q", i+1, model.ErrInvalidColor, color)
			}
		}
	}

	now := c.clock.Now()

	var session *model.Session
	if setup.SessionID != "" {
		existing, err := c.storage.GetSession(ctx, setup.SessionID)
		switch {
		case err == nil && !existing.IsEnded():
			session = existing
		case err != nil && !errors.Is(err, model.ErrSessionNotFound):
			return nil, err
		}
	}

	if session == nil {
		session = &model.Session{
			ID:        c.newID(),
			State:     model.SessionStateActive,
			StartedAt: now,
		}
	}

	mode := model.ParseGameMode(string(setup.GameMode))
	if mode == "" {
		mode = model.GameModeCommander
	}
	format := c.formats.Lookup(mode)

	session.GameMode = mode
	session.PoisonEnabled = setup.PoisonEnabled
	session.Roster = model.NewRoster(buildPlayers(setup, format))
	session.Feedback = model.Feedback{}
	c.appendEvent(session, model.EventSessionStarted, now, nil, model.SessionStartedPayload{
		GameMode:      mode,
		PlayerCount:   len(session.Roster.Players),
		PoisonEnabled: setup.PoisonEnabled,
	})

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("roster initialized",
		slog.String("session_id", string(session.ID)),
		slog.String("game_mode", string(mode)),
		slog.Int("player_count", len(session.Roster.Players)),
		slog.Int("starting_life", format.StartingLife),
		slog.Bool("poison_enabled", setup.PoisonEnabled),
	)

	return c.update(session, now), nil
}

// buildPlayers seeds players from the configured seats, or synthesizes
// PlayerCount default seats when none were configured
func buildPlayers(setup model.Setup, format formats.Format) []*model.Player {
	configs := setup.Players
	if len(configs) == 0 {
		count := max(1, setup.PlayerCount)
		configs = make([]model.PlayerConfig, count)
	}

	players := make([]*model.Player, 0, len(configs))
	for i, cfg := range configs {
		id := model.PlayerID(i)
		name := cfg.Name
		if name == "" {
			name = model.DefaultPlayerName(id)
		}
		players = append(players, &model.Player{
			ID:                     id,
			Name:                   name,
			Colors:                 model.NormalizeColors(cfg.Colors),
			Life:                   format.StartingLife,
			CommanderDamage:        format.StartingCommanderDamage,
			InitialLife:            format.StartingLife,
			InitialCommanderDamage: format.StartingCommanderDamage,
		})
	}
	return players
}

// Snapshot returns a read-only copy of the session and the current feedback
func (c *Controller) Snapshot(ctx context.Context, id model.SessionID) (*model.Update, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.update(session, c.clock.Now()), nil
}

// AdjustCounter applies a signed amount to whichever counter the player's
// active mode selects
func (c *Controller) AdjustCounter(ctx context.Context, id model.SessionID, playerID model.PlayerID, amount int) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		change := counter.Adjust(s.Roster, p, s.PoisonEnabled, amount)
		s.Feedback = counter.RecordFeedback(s.Feedback, playerID, amount, now, c.feedbackWindow)

		c.appendEvent(s, model.EventCounterAdjusted, now, &playerID, model.CounterAdjustedPayload{
			Mode:           change.Mode,
			Amount:         amount,
			LifeDelta:      change.LifeDelta,
			CommanderDelta: change.CommanderDelta,
			PoisonDelta:    change.PoisonDelta,
		})

		c.logger.Debug("counter adjusted",
			slog.String("session_id", string(s.ID)),
			slog.Int("player_id", int(playerID)),
			slog.String("mode", string(change.Mode)),
			slog.Int("amount", amount),
			slog.Int("life", p.Life),
			slog.Int("commander_damage", p.CommanderDamage),
			slog.Int("poison", p.PoisonCounters),
		)
	})
}

// ToggleDuel flips duel mode, or cancels commander-only if it is active
func (c *Controller) ToggleDuel(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		flags := counter.ToggleDuel(s.Roster.Flags(playerID))
		s.Roster.SetFlags(playerID, flags)
		c.appendEvent(s, model.EventDuelToggled, now, &playerID, model.ModeToggledPayload{Flags: flags})
	})
}

// EnterCommanderOnlyMode flips commander-only mode. The presentation layer
// calls it once a long press has been recognised.
func (c *Controller) EnterCommanderOnlyMode(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		flags := counter.ToggleCommanderOnly(s.Roster.Flags(playerID))
		s.Roster.SetFlags(playerID, flags)
		c.appendEvent(s, model.EventCommanderOnlyToggled, now, &playerID, model.ModeToggledPayload{Flags: flags})
	})
}

// ToggleCommanderDisplay switches the primary number between life and
// commander damage
func (c *Controller) ToggleCommanderDisplay(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		p.ShowCommander = !p.ShowCommander
		c.appendEvent(s, model.EventCommanderDisplayToggled, now, &playerID, model.DisplayToggledPayload{Enabled: p.ShowCommander})
	})
}

// TogglePoison switches the primary number to poison counters. The current
// poison count is kept across toggles.
func (c *Controller) TogglePoison(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		p.ShowPoison = !p.ShowPoison
		c.appendEvent(s, model.EventPoisonToggled, now, &playerID, model.DisplayToggledPayload{Enabled: p.ShowPoison})
	})
}

// ToggleColor adds or removes a colour tag; the set never becomes empty
func (c *Controller) ToggleColor(ctx context.Context, id model.SessionID, playerID model.PlayerID, color model.Color) (*model.Update, error) {
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidColor, color)
	}
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		p.ToggleColor(color)
		c.appendEvent(s, model.EventColorToggled, now, &playerID, model.ColorToggledPayload{
			Color:  color,
			Colors: append([]model.Color(nil), p.Colors...),
		})
	})
}

// UpdatePlayerName replaces the player's name; any string is accepted
func (c *Controller) UpdatePlayerName(ctx context.Context, id model.SessionID, playerID model.PlayerID, name string) (*model.Update, error) {
	return c.mutatePlayer(ctx, id, playerID, func(s *model.Session, p *model.Player, now time.Time) {
		old := p.Name
		p.Name = name
		c.appendEvent(s, model.EventNameUpdated, now, &playerID, model.NameUpdatedPayload{OldName: old, NewName: name})
	})
}

// PauseSession stops the play clock. Pausing while paused is a no-op.
func (c *Controller) PauseSession(ctx context.Context, id model.SessionID) (*model.Update, error) {
	return c.mutateSession(ctx, id, func(s *model.Session, now time.Time) {
		if s.IsPaused {
			return
		}
		s.IsPaused = true
		s.PauseStartedAt = now
		c.appendEvent(s, model.EventSessionPaused, now, nil, nil)
	})
}

// ResumeSession restarts the play clock, banking the paused interval.
// Resuming while running is a no-op.
func (c *Controller) ResumeSession(ctx context.Context, id model.SessionID) (*model.Update, error) {
	return c.mutateSession(ctx, id, func(s *model.Session, now time.Time) {
		if !s.IsPaused {
			return
		}
		s.PausedDuration += now.Sub(s.PauseStartedAt)
		s.IsPaused = false
		s.PauseStartedAt = time.Time{}
		c.appendEvent(s, model.EventSessionResumed, now, nil, nil)
	})
}

// EndGame produces the end-of-game summary and closes the session to
// further adjustments. Calling it again returns the same summary.
func (c *Controller) EndGame(ctx context.Context, id model.SessionID) (*model.Summary, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.IsEnded() {
		return summary.Aggregate(session, session.EndedAt), nil
	}

	now := c.clock.Now()
	session.State = model.SessionStateEnded
	session.EndedAt = now
	c.appendEvent(session, model.EventGameEnded, now, nil, nil)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	result := summary.Aggregate(session, now)

	c.logger.Info("game ended",
		slog.String("session_id", string(id)),
		slog.String("game_mode", string(session.GameMode)),
		slog.Duration("elapsed", result.Elapsed),
		slog.Int("main_life_damage", result.MainLife.Total),
		slog.Int("commander_damage", result.Commander.Total),
	)

	return result, nil
}

// NewGame discards the session so setup can begin again
func (c *Controller) NewGame(ctx context.Context, id model.SessionID) error {
	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	c.logger.Info("session discarded", slog.String("session_id", string(id)))
	return nil
}

// mutateSession loads an active session, applies fn and saves it
func (c *Controller) mutateSession(ctx context.Context, id model.SessionID, fn func(s *model.Session, now time.Time)) (*model.Update, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsEnded() {
		return nil, model.ErrGameOver
	}

	now := c.clock.Now()
	fn(session, now)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return c.update(session, now), nil
}

// mutatePlayer is mutateSession scoped to one player of the roster
func (c *Controller) mutatePlayer(ctx context.Context, id model.SessionID, playerID model.PlayerID, fn func(s *model.Session, p *model.Player, now time.Time)) (*model.Update, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsEnded() {
		return nil, model.ErrGameOver
	}
	if session.Roster.GetPlayer(playerID) == nil {
		return nil, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, playerID)
	}

	return c.mutateSession(ctx, id, func(s *model.Session, now time.Time) {
		fn(s, s.Roster.GetPlayer(playerID), now)
	})
}

func (c *Controller) update(session *model.Session, now time.Time) *model.Update {
	return &model.Update{
		Session:  session.Clone(),
		Feedback: counter.CurrentFeedback(session.Feedback, now, c.feedbackWindow),
	}
}

func (c *Controller) appendEvent(session *model.Session, eventType model.EventType, now time.Time, playerID *model.PlayerID, payload any) {
	var pid *model.PlayerID
	if playerID != nil {
		id := *playerID
		pid = &id
	}
	session.Events = append(session.Events, model.Event{
		Type:      eventType,
		Timestamp: now,
		SessionID: session.ID,
		PlayerID:  pid,
		Payload:   payload,
	})
}
