package summary

import (
	"math"
	"time"

	"github.com/mcoot/lifecounter/internal/model"
)

// ChartPalette colours damage slices by their position among non-zero entries
var ChartPalette = []string{
	"#667eea",
	"#50C878",
	"#FF8C42",
	"#9B59B6",
	"#FFD93D",
	"#00CED1",
}

// Aggregate projects a session into its end-of-game summary as of now.
// The session is not modified.
func Aggregate(session *model.Session, now time.Time) *model.Summary {
	result := &model.Summary{
		SessionID:     session.ID,
		GameMode:      session.GameMode,
		PoisonEnabled: session.PoisonEnabled,
		Players:       []model.PlayerSummary{},
		StartedAt:     session.StartedAt,
		EndedAt:       now,
		Elapsed:       Elapsed(session, now),
		Timeline:      append([]model.Event(nil), session.Events...),
	}

	var mainLife, commander []model.PlayerDamage
	if session.Roster != nil {
		for _, p := range session.Roster.Players {
			ps := model.PlayerSummary{
				PlayerID:             p.ID,
				Name:                 p.Name,
				Colors:               append([]model.Color(nil), p.Colors...),
				MainLifeDamage:       p.InitialLife - p.Life,
				CommanderDamageTaken: p.InitialCommanderDamage - p.CommanderDamage,
			}
			ps.TotalDamage = ps.MainLifeDamage + ps.CommanderDamageTaken
			if session.PoisonEnabled {
				ps.PoisonCounters = p.PoisonCounters
			}
			result.Players = append(result.Players, ps)

			mainLife = append(mainLife, model.PlayerDamage{Name: p.Name, Damage: ps.MainLifeDamage})
			commander = append(commander, model.PlayerDamage{Name: p.Name, Damage: ps.CommanderDamageTaken})
		}
	}

	result.MainLife = ComputeDamageShares(mainLife)
	result.Commander = ComputeDamageShares(commander)

	return result
}

// Elapsed returns play time from session start to now with every paused
// interval removed, including one still in progress
func Elapsed(session *model.Session, now time.Time) time.Duration {
	elapsed := now.Sub(session.StartedAt) - session.PausedDuration
	if session.IsPaused {
		elapsed -= now.Sub(session.PauseStartedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ComputeDamageShares splits positive damage values into percentages of
// their total. Entries with no damage are dropped; if none remain the
// breakdown reports NoDamage.
func ComputeDamageShares(damages []model.PlayerDamage) model.DamageBreakdown {
	var positive []model.PlayerDamage
	total := 0
	for _, d := range damages {
		if d.Damage > 0 {
			positive = append(positive, d)
			total += d.Damage
		}
	}

	if len(positive) == 0 {
		return model.DamageBreakdown{NoDamage: true}
	}

	shares := make([]model.DamageShare, 0, len(positive))
	for i, d := range positive {
		shares = append(shares, model.DamageShare{
			Name:       d.Name,
			Damage:     d.Damage,
			Percentage: roundToTenth(float64(d.Damage) / float64(total) * 100),
			ChartColor: ChartPalette[i%len(ChartPalette)],
		})
	}

	return model.DamageBreakdown{
		Shares: shares,
		Total:  total,
	}
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
