package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrGameOver        = errors.New("game has already ended")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidColor   = errors.New("invalid color")

	// Dice errors
	ErrInvalidDieSides = errors.New("die must have between 3 and 100 sides")
)
