package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/lifecounter/internal/services/dice"
)

func newRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll [sides]",
		Short: "Roll a die",
		Long:  fmt.Sprintf("Roll a die with %d to %d sides (default d%d).", dice.MinSides, dice.MaxSides, dice.DefaultSides),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sides := dice.DefaultSides
			if len(args) == 1 {
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

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(RollResult{Sides: sides, Result: result})
			return nil
		},
	}
}

func newFlipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flip",
		Short: "Flip a coin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(FlipResult{Result: string(app.DiceService.FlipCoin())})
			return nil
		},
	}
}
