package model

import "time"

// PlayerSummary is one player's line in the end-of-game summary
type PlayerSummary struct {
	PlayerID             PlayerID
	Name                 string
	Colors               []Color
	MainLifeDamage       int
	CommanderDamageTaken int
	TotalDamage          int // main life plus commander damage
	PoisonCounters       int // zero when poison was disabled
}

// PlayerDamage is a (name, value) pair fed into the damage share calculation
type PlayerDamage struct {
	Name   string
	Damage int
}

// DamageShare is one slice of a damage breakdown
type DamageShare struct {
	Name       string
	Damage     int
	Percentage float64 // rounded to one decimal place
	ChartColor string  // hex colour assigned by position among non-zero entries
}

// DamageBreakdown is the proportional split of one kind of damage.
// NoDamage is set instead of dividing by zero when nobody took any.
type DamageBreakdown struct {
	Shares   []DamageShare
	Total    int
	NoDamage bool
}

// Summary is the end-of-game projection of a session
type Summary struct {
	SessionID     SessionID
	GameMode      GameMode
	PoisonEnabled bool
	Players       []PlayerSummary

	MainLife  DamageBreakdown
	Commander DamageBreakdown

	StartedAt time.Time
	EndedAt   time.Time
	Elapsed   time.Duration // wall clock minus all paused intervals

	Timeline []Event
}

// ElapsedMs returns the elapsed play time in milliseconds
func (s *Summary) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}
