package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/lifecounter/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionView:
		o.printSession(v)
	case SummaryView:
		o.printSummary(v)
	case []FormatView:
		o.printFormats(v)
	case RollResult:
		fmt.Fprintf(o.w, "d%d: %d\n", v.Sides, v.Result)
	case FlipResult:
		fmt.Fprintf(o.w, "Coin: %s\n", v.Result)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func displayColors(colors []string) string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = model.Color(c).DisplayName()
	}
	return strings.Join(names, "/")
}

func (o *Output) printSession(s SessionView) {
	status := ""
	if s.State == string(model.SessionStateEnded) {
		status = " [ended]"
	} else if s.Paused {
		status = " [paused]"
	}
	fmt.Fprintf(o.w, "%s%s\n", model.GameMode(s.GameMode).DisplayName(), status)

	for _, p := range s.Players {
		marker := func(selected bool) string {
			if selected {
				return "*"
			}
			return " "
		}
		lifeSelected := !p.ShowCommander && !(p.ShowPoison && p.PoisonCounters != nil)
		cmdSelected := p.ShowCommander && !(p.ShowPoison && p.PoisonCounters != nil)

		line := fmt.Sprintf("  %d. %-12s %-20s %slife %3d  %scmd %3d",
			p.Seat, p.Name, "("+displayColors(p.Colors)+")",
			marker(lifeSelected), p.Life,
			marker(cmdSelected), p.CommanderDamage,
		)
		if p.PoisonCounters != nil {
			line += fmt.Sprintf("  %spoison %2d", marker(p.ShowPoison), *p.PoisonCounters)
		}
		if p.Mode == string(model.CounterModeDuel) || p.Mode == string(model.CounterModeCommanderOnly) {
			line += fmt.Sprintf("  [%s]", strings.ReplaceAll(p.Mode, "_", "-"))
		}
		if s.Feedback.Seat != nil && *s.Feedback.Seat == p.Seat {
			line += fmt.Sprintf("  %+d", s.Feedback.Amount)
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printBreakdown(title, empty string, b BreakdownView) {
	fmt.Fprintf(o.w, "\n%s\n", title)
	if b.NoDamage {
		fmt.Fprintf(o.w, "  %s\n", empty)
		return
	}
	for _, s := range b.Shares {
		fmt.Fprintf(o.w, "  %s: %d (%.1f%%)\n", s.Name, s.Damage, s.Percentage)
	}
}

func (o *Output) printSummary(s SummaryView) {
	fmt.Fprintln(o.w, "Game Summary")
	fmt.Fprintf(o.w, "Mode: %s\n", model.GameMode(s.GameMode).DisplayName())
	fmt.Fprintf(o.w, "Duration: %s\n", (time.Duration(s.ElapsedMs) * time.Millisecond).Round(time.Second))

	o.printBreakdown("Main Life Damage", "No main life damage taken", s.MainLife)
	o.printBreakdown("Commander Damage", "No commander damage taken", s.Commander)

	fmt.Fprintln(o.w, "\nPlayers")
	for _, p := range s.Players {
		line := fmt.Sprintf("  %s (%s): life lost %d, commander damage %d, total damage %d",
			p.Name, displayColors(p.Colors), p.MainLifeDamage, p.CommanderDamageTaken, p.TotalDamage)
		if s.PoisonEnabled {
			line += fmt.Sprintf(", poison %d", p.PoisonCounters)
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printFormats(all []FormatView) {
	for _, f := range all {
		fmt.Fprintf(o.w, "%-10s life %2d  commander damage %2d\n",
			f.Mode, f.StartingLife, f.StartingCommanderDamage)
	}
}
