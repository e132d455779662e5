package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/lifecounter/internal/dependencies/clock"
	"github.com/mcoot/lifecounter/internal/dependencies/random"
	"github.com/mcoot/lifecounter/internal/formats"
	"github.com/mcoot/lifecounter/internal/services/dice"
	"github.com/mcoot/lifecounter/internal/services/match"
	"github.com/mcoot/lifecounter/internal/storage"
	"github.com/mcoot/lifecounter/internal/storage/memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Formats         *formats.Registry
	MatchController *match.Controller
	DiceService     *dice.Service
}

// Config holds configuration for the application factory
type Config struct {
	// FormatsFile overrides the built-in format presets (optional)
	FormatsFile string
	// FeedbackWindow is how long adjustment feedback accumulates (optional)
	// If zero, defaults to counter.DefaultFeedbackWindow
	FeedbackWindow time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	registry := formats.Default()
	if cfg.FormatsFile != "" {
		loaded, err := formats.LoadFile(cfg.FormatsFile)
		if err != nil {
			return nil, err
		}
		registry = loaded
	}

	return newWithDependencies(memory.New(), clock.New(), random.New(), registry, cfg.FeedbackWindow, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	registry *formats.Registry,
	feedbackWindow time.Duration,
	logger *slog.Logger,
) *App {
	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Formats:         registry,
		MatchController: match.NewController(store, registry, clk, logger, feedbackWindow),
		DiceService:     dice.New(rnd),
	}
}
