// Package counter decides which counter an adjustment lands on and applies it
// with the floor/ceiling clamps. Everything here is pure; the match controller
// owns the session and the clock.
package counter

import "github.com/mcoot/lifecounter/internal/model"

// Change records the clamped deltas actually applied by an adjustment
type Change struct {
	Mode           model.CounterMode
	LifeDelta      int
	CommanderDelta int
	PoisonDelta    int
}

// IsZero returns true if no counter moved
func (c Change) IsZero() bool {
	return c.LifeDelta == 0 && c.CommanderDelta == 0 && c.PoisonDelta == 0
}

// ResolveMode returns the active mode for a player, highest precedence first:
// poison, commander-only, duel, commander display, normal.
func ResolveMode(p *model.Player, flags model.ModeFlags, poisonEnabled bool) model.CounterMode {
	switch {
	case p.ShowPoison && poisonEnabled:
		return model.CounterModePoison
	case flags.CommanderOnly:
		return model.CounterModeCommanderOnly
	case flags.Duel:
		return model.CounterModeDuel
	case p.ShowCommander:
		return model.CounterModeCommander
	default:
		return model.CounterModeNormal
	}
}

// Apply mutates the player's counters for the given mode and amount
func Apply(p *model.Player, mode model.CounterMode, amount int) Change {
	change := Change{Mode: mode}

	switch mode {
	case model.CounterModePoison:
		change.PoisonDelta = setPoison(p, p.PoisonCounters+amount)

	case model.CounterModeCommanderOnly:
		// Commander damage can only be dealt through this control, never healed
		if amount < 0 {
			change.CommanderDelta = setCommander(p, p.CommanderDamage+amount)
		}

	case model.CounterModeDuel:
		change.LifeDelta = setLife(p, p.Life+amount)
		if amount < 0 {
			change.CommanderDelta = setCommander(p, p.CommanderDamage+amount)
		}

	case model.CounterModeCommander:
		change.CommanderDelta = setCommander(p, p.CommanderDamage+amount)

	default:
		change.LifeDelta = setLife(p, p.Life+amount)
	}

	return change
}

// Adjust resolves the player's mode and applies amount in one step
func Adjust(r *model.Roster, p *model.Player, poisonEnabled bool, amount int) Change {
	mode := ResolveMode(p, r.Flags(p.ID), poisonEnabled)
	return Apply(p, mode, amount)
}

// ToggleDuel flips duel mode. Pressing duel while commander-only is active
// cancels both.
func ToggleDuel(flags model.ModeFlags) model.ModeFlags {
	if flags.CommanderOnly {
		return model.ModeFlags{}
	}
	return model.ModeFlags{Duel: !flags.Duel}
}

// ToggleCommanderOnly flips commander-only mode; turning it on clears duel
func ToggleCommanderOnly(flags model.ModeFlags) model.ModeFlags {
	if flags.CommanderOnly {
		flags.CommanderOnly = false
		return flags
	}
	return model.ModeFlags{CommanderOnly: true}
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func setLife(p *model.Player, v int) int {
	before := p.Life
	p.Life = max(0, v)
	return p.Life - before
}

func setCommander(p *model.Player, v int) int {
	before := p.CommanderDamage
	p.CommanderDamage = max(0, v)
	return p.CommanderDamage - before
}

func setPoison(p *model.Player, v int) int {
	before := p.PoisonCounters
	p.PoisonCounters = Clamp(v, 0, model.MaxPoisonCounters)
	return p.PoisonCounters - before
}
