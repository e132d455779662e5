package model

// CounterMode is the resolved mode deciding which counter an adjustment hits
type CounterMode string

const (
	CounterModePoison        CounterMode = "poison"
	CounterModeCommanderOnly CounterMode = "commander_only"
	CounterModeDuel          CounterMode = "duel"
	CounterModeCommander     CounterMode = "commander"
	CounterModeNormal        CounterMode = "normal"
)

// MaxPoisonCounters is the poison ceiling
const MaxPoisonCounters = 10
