package dice

import (
	"fmt"

	"github.com/mcoot/lifecounter/internal/dependencies/random"
	"github.com/mcoot/lifecounter/internal/model"
)

const (
	MinSides     = 3
	MaxSides     = 100
	DefaultSides = 20
)

// Service provides table randomness: coin flips and dice rolls
type Service struct {
	random random.Random
}

// New creates a new dice Service
func New(random random.Random) *Service {
	return &Service{random: random}
}

// FlipCoin returns heads or tails with equal probability
func (s *Service) FlipCoin() model.CoinSide {
	if s.random.Intn(2) == 0 {
		return model.CoinHeads
	}
	return model.CoinTails
}

// Roll returns a uniform result in [1, sides]
func (s *Service) Roll(sides int) (int, error) {
	if sides < MinSides || sides > MaxSides {
		return 0, fmt.Errorf("%w: got %d", model.ErrInvalidDieSides, sides)
	}
	return s.random.Intn(sides) + 1, nil
}
