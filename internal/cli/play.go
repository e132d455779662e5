package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/lifecounter/internal/model"
	"github.com/mcoot/lifecounter/internal/services/dice"
	"github.com/mcoot/lifecounter/internal/setup"
)

const playHelp = `Commands (seats are numbered from 1):
  state                    show the table
  + <seat> [n]             add n (default 1) to the seat's active counter
  - <seat> [n]             subtract n (default 1) from the seat's active counter
  adjust <seat> <amount>   apply a signed amount
  duel <seat>              toggle duel mode (life and commander damage together)
  cmdonly <seat>           toggle commander-only mode
  cmd <seat>               switch the display between life and commander damage
  poison <seat>            switch the display to poison counters
  color <seat> <color>     toggle a colour (white, blue, red, black, green, grey)
  name <seat> <name...>    rename a seat
  pause | resume           stop or restart the game clock
  roll [sides]             roll a die (default d20)
  flip                     flip a coin
  end                      end the game and show the summary
  new                      start a new game with the same setup
  quit                     leave`

var errQuit = errors.New("quit")

func newPlayCmd() *cobra.Command {
	var (
		players   int
		mode      string
		poison    bool
		setupFile string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game at the table",
		Long: `Start an interactive game. Commands are read one per line from stdin;
type "help" for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var gameMode model.GameMode
			if cmd.Flags().Changed("mode") {
				gameMode = model.ParseGameMode(mode)
			}
			count := 0
			if cmd.Flags().Changed("players") {
				count = players
			}

			file := &setup.File{PlayerCount: players, Mode: mode}
			if setupFile != "" {
				loaded, err := setup.Load(setupFile)
				if err != nil {
					return err
				}
				file = loaded
			}

			s, err := file.Setup(gameMode, count, poison)
			if err != nil {
				return err
			}

			table := &table{
				ctx:   cmd.Context(),
				setup: s,
				out:   NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()),
			}
			if table.ctx == nil {
				table.ctx = context.Background()
			}
			return table.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().IntVarP(&players, "players", "n", 4, "Number of players")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(model.GameModeCommander), "Game mode: commander, standard, modern, pioneer, legacy, vintage")
	cmd.Flags().BoolVar(&poison, "poison", false, "Track poison counters")
	cmd.Flags().StringVar(&setupFile, "setup", "", "YAML setup file with player names and colours")

	return cmd
}

// table is one interactive session at the prompt
type table struct {
	ctx   context.Context
	setup model.Setup
	id    model.SessionID
	out   *Output
}

func (t *table) run(in io.Reader) error {
	if err := t.start(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := t.dispatch(fields[0], fields[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			t.out.PrintError(err)
		}
	}
	return scanner.Err()
}

func (t *table) start() error {
	t.setup.SessionID = t.id
	update, err := app.MatchController.InitializeRoster(t.ctx, t.setup)
	if err != nil {
		return err
	}
	t.id = update.Session.ID
	t.out.Print(newSessionView(update))
	return nil
}

func (t *table) dispatch(command string, args []string) error {
	ctrl := app.MatchController

	switch strings.ToLower(command) {
	case "help", "?":
		t.out.PrintMessage(playHelp)
		return nil

	case "quit", "exit":
		return errQuit

	case "state":
		return t.show(ctrl.Snapshot(t.ctx, t.id))

	case "+", "-":
		seat, err := seatArg(args, 1)
		if err != nil {
			return err
		}
		amount := 1
		if len(args) > 1 {
			if amount, err = strconv.Atoi(args[1]); err != nil || amount < 0 {
				return fmt.Errorf("invalid amount %q", args[1])
			}
		}
		if command == "-" {
			amount = -amount
		}
		return t.show(ctrl.AdjustCounter(t.ctx, t.id, seat, amount))

	case "adjust":
		seat, err := seatArg(args, 2)
		if err != nil {
			return err
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		return t.show(ctrl.AdjustCounter(t.ctx, t.id, seat, amount))

	case "duel":
		seat, err := seatArg(args, 1)
		if err != nil {
			return err
		}
		return t.show(ctrl.ToggleDuel(t.ctx, t.id, seat))

	case "cmdonly":
		seat, err := seatArg(args, 1)
		if err != nil {
			return err
		}
		return t.show(ctrl.EnterCommanderOnlyMode(t.ctx, t.id, seat))

	case "cmd":
		seat, err := seatArg(args, 1)
		if err != nil {
			return err
		}
		return t.show(ctrl.ToggleCommanderDisplay(t.ctx, t.id, seat))

	case "poison":
		seat, err := seatArg(args, 1)
		if err != nil {
			return err
		}
		return t.show(ctrl.TogglePoison(t.ctx, t.id, seat))

	case "color", "colour":
		seat, err := seatArg(args, 2)
		if err != nil {
			return err
		}
		color, err := model.ParseColor(args[1])
		if err != nil {
			return err
		}
		return t.show(ctrl.ToggleColor(t.ctx, t.id, seat, color))

	case "name":
		seat, err := seatArg(args, 2)
		if err != nil {
			return err
		}
		return t.show(ctrl.UpdatePlayerName(t.ctx, t.id, seat, strings.Join(args[1:], " ")))

	case "pause":
		return t.show(ctrl.PauseSession(t.ctx, t.id))

	case "resume":
		return t.show(ctrl.ResumeSession(t.ctx, t.id))

	case "roll":
		sides := dice.DefaultSides
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(args[0]), "d"))
			if err != nil {
				return fmt.Errorf("invalid die %q", args[0])
			}
			sides = n
		}
		result, err := app.DiceService.Roll(sides)
		if err != nil {
			return err
		}
		t.out.Print(RollResult{Sides: sides, Result: result})
		return nil

	case "flip":
		t.out.Print(FlipResult{Result: string(app.DiceService.FlipCoin())})
		return nil

	case "end":
		result, err := ctrl.EndGame(t.ctx, t.id)
		if err != nil {
			return err
		}
		t.out.Print(newSummaryView(result))
		return nil

	case "new":
		if err := ctrl.NewGame(t.ctx, t.id); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			return err
		}
		t.id = ""
		return t.start()

	default:
		return fmt.Errorf("unknown command %q, type help for the list", command)
	}
}

func (t *table) show(update *model.Update, err error) error {
	if err != nil {
		return err
	}
	t.out.Print(newSessionView(update))
	return nil
}

// seatArg parses the 1-based seat in args[0] after checking at least want
// arguments are present
func seatArg(args []string, want int) (model.PlayerID, error) {
	if len(args) < want {
		return 0, fmt.Errorf("expected %d argument(s), got %d", want, len(args))
	}
	seat, err := strconv.Atoi(args[0])
	if err != nil || seat < 1 {
		return 0, fmt.Errorf("invalid seat %q", args[0])
	}
	return model.PlayerID(seat - 1), nil
}
