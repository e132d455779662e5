package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/lifecounter/internal/factory"
	"github.com/mcoot/lifecounter/internal/model"
)

type cliResult struct {
	app    *factory.TestApp
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command against a mocked app
func runCLI(t *testing.T, setup func(*factory.TestApp), stdin string, args ...string) cliResult {
	t.Helper()

	testApp := factory.NewTestApp()
	if setup != nil {
		setup(testApp)
	}

	orig := newApp
	newApp = func(factory.Config) (*factory.App, error) { return testApp.App, nil }
	t.Cleanup(func() { newApp = orig })

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliResult{app: testApp, stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// decodeAll splits a stream of JSON documents
func decodeAll(t *testing.T, s string) []json.RawMessage {
	t.Helper()

	var docs []json.RawMessage
	dec := json.NewDecoder(strings.NewReader(s))
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		docs = append(docs, raw)
	}
	return docs
}

func decodeAs[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestPlayCommanderGame(t *testing.T) {
	res := runCLI(t, nil, "+ 1 3\n- 2 5\nduel 3\n- 3 4\nend\n", "-o", "json", "play")
	require.NoError(t, res.err)

	docs := decodeAll(t, res.stdout)
	require.Len(t, docs, 6)

	start := decodeAs[SessionView](t, docs[0])
	assert.Equal(t, "commander", start.GameMode)
	require.Len(t, start.Players, 4)
	assert.Equal(t, 1, start.Players[0].Seat)
	assert.Equal(t, "Player 1", start.Players[0].Name)
	assert.Equal(t, 40, start.Players[0].Life)
	assert.Equal(t, 21, start.Players[0].CommanderDamage)
	assert.Nil(t, start.Players[0].PoisonCounters)
	assert.Nil(t, start.Feedback.Seat)

	healed := decodeAs[SessionView](t, docs[1])
	assert.Equal(t, 43, healed.Players[0].Life)
	require.NotNil(t, healed.Feedback.Seat)
	assert.Equal(t, 1, *healed.Feedback.Seat)
	assert.Equal(t, 3, healed.Feedback.Amount)

	dueling := decodeAs[SessionView](t, docs[3])
	assert.Equal(t, string(model.CounterModeDuel), dueling.Players[2].Mode)

	hit := decodeAs[SessionView](t, docs[4])
	assert.Equal(t, 36, hit.Players[2].Life)
	assert.Equal(t, 17, hit.Players[2].CommanderDamage)

	summary := decodeAs[SummaryView](t, docs[5])
	assert.Equal(t, 9, summary.MainLife.Total)
	require.Len(t, summary.MainLife.Shares, 2)
	assert.Equal(t, "Player 2", summary.MainLife.Shares[0].Name)
	assert.Equal(t, 55.6, summary.MainLife.Shares[0].Percentage)
	assert.Equal(t, 44.4, summary.MainLife.Shares[1].Percentage)
	assert.Equal(t, -3, summary.Players[0].MainLifeDamage)
	assert.Equal(t, 8, summary.Players[2].TotalDamage)

	require.Len(t, summary.Commander.Shares, 1)
	assert.Equal(t, 100.0, summary.Commander.Shares[0].Percentage)
	assert.Equal(t, "#667eea", summary.Commander.Shares[0].ChartColor)

	require.Len(t, summary.Timeline, 6)
	assert.Equal(t, string(model.EventSessionStarted), summary.Timeline[0].Type)
	assert.Nil(t, summary.Timeline[0].Seat)
	assert.Equal(t, string(model.EventCounterAdjusted), summary.Timeline[1].Type)
	require.NotNil(t, summary.Timeline[1].Seat)
	assert.Equal(t, 1, *summary.Timeline[1].Seat)
	assert.Equal(t, map[string]any{
		"mode": "normal", "amount": 3.0, "life_delta": 3.0, "commander_delta": 0.0, "poison_delta": 0.0,
	}, summary.Timeline[1].Payload)
	assert.Equal(t, string(model.EventGameEnded), summary.Timeline[5].Type)
}

func TestPlayFeedbackFollowsTheClock(t *testing.T) {
	quick := runCLI(t, func(a *factory.TestApp) { a.MockClock.Step = 2 * time.Second }, "- 1\n- 1\n- 1\n", "-o", "json", "play", "-n", "2")
	require.NoError(t, quick.err)
	docs := decodeAll(t, quick.stdout)
	require.Len(t, docs, 4)
	assert.Equal(t, -3, decodeAs[SessionView](t, docs[3]).Feedback.Amount)

	slow := runCLI(t, func(a *factory.TestApp) { a.MockClock.Step = 6 * time.Second }, "- 1\n- 1\npause\nresume\nend\n", "-o", "json", "play", "-n", "2")
	require.NoError(t, slow.err)
	docs = decodeAll(t, slow.stdout)
	require.Len(t, docs, 6)
	assert.Equal(t, -1, decodeAs[SessionView](t, docs[2]).Feedback.Amount)
	assert.True(t, decodeAs[SessionView](t, docs[3]).Paused)

	// Every read moves the clock 6s and the pause covers one of those steps
	summary := decodeAs[SummaryView](t, docs[5])
	assert.Equal(t, int64(24000), summary.ElapsedMs)
	assert.Equal(t, 6, slow.app.MockClock.Reads)
}

func TestPlayReportsErrorsAndContinues(t *testing.T) {
	res := runCLI(t, nil, "+ 9\nbogus\ncolor 1 purple\n+ 1\n", "play", "-n", "2", "-m", "standard")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, model.ErrPlayerNotFound.Error())
	assert.Contains(t, res.stderr, `unknown command "bogus"`)
	assert.Contains(t, res.stderr, model.ErrInvalidColor.Error())
	assert.Contains(t, res.stdout, "life  21")
}

func TestPlayTextOutputShowsTable(t *testing.T) {
	res := runCLI(t, nil, "name 2 Jace Beleren\ncolor 2 blue\npause\nquit\n+ 1\n", "play", "-n", "2", "--poison")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Commander\n")
	assert.Contains(t, res.stdout, "Jace Beleren")
	assert.Contains(t, res.stdout, "(Grey/Blue)")
	assert.Contains(t, res.stdout, "poison  0")
	assert.Contains(t, res.stdout, "Commander [paused]")
	// Nothing after quit is processed
	assert.NotContains(t, res.stdout, "life  41")
}

func TestPlayTextSummaryShowsTotalDamage(t *testing.T) {
	res := runCLI(t, nil, "cmd 1\n- 1 3\ncmd 1\n- 1 2\nend\n", "play", "-n", "2")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Game Summary")
	assert.Contains(t, res.stdout, "Player 1 (Grey): life lost 2, commander damage 3, total damage 5")
	assert.Contains(t, res.stdout, "Player 2 (Grey): life lost 0, commander damage 0, total damage 0")
}

func TestPlayEndThenNewGame(t *testing.T) {
	res := runCLI(t, nil, "- 1 2\nend\n- 1\nnew\n- 1\n", "-o", "json", "play", "-n", "2")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, model.ErrGameOver.Error())

	docs := decodeAll(t, res.stdout)
	require.Len(t, docs, 5)

	first := decodeAs[SessionView](t, docs[0])
	fresh := decodeAs[SessionView](t, docs[3])
	assert.NotEqual(t, first.ID, fresh.ID)
	assert.Equal(t, 40, fresh.Players[0].Life)

	last := decodeAs[SessionView](t, docs[4])
	assert.Equal(t, 39, last.Players[0].Life)
}

func TestPlayWithSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`mode: modern
players:
  - name: Alice
    colors: [white, blue]
  - name: Bob
    colors: red
`), 0o600))

	res := runCLI(t, nil, "", "-o", "json", "play", "--setup", path)
	require.NoError(t, res.err)

	docs := decodeAll(t, res.stdout)
	require.Len(t, docs, 1)
	view := decodeAs[SessionView](t, docs[0])
	assert.Equal(t, "modern", view.GameMode)
	require.Len(t, view.Players, 2)
	assert.Equal(t, "Alice", view.Players[0].Name)
	assert.Equal(t, []string{"white", "blue"}, view.Players[0].Colors)
	assert.Equal(t, []string{"red"}, view.Players[1].Colors)
	assert.Equal(t, 20, view.Players[1].Life)
}

func TestPlayModeFlagOverridesSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: modern\nplayer_count: 3\n"), 0o600))

	res := runCLI(t, nil, "", "-o", "json", "play", "--setup", path, "--mode", "legacy")
	require.NoError(t, res.err)

	view := decodeAs[SessionView](t, decodeAll(t, res.stdout)[0])
	assert.Equal(t, "legacy", view.GameMode)
	assert.Len(t, view.Players, 3)
}

func TestPlayRejectsBadSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("players:\n  - colors: purple\n"), 0o600))

	res := runCLI(t, nil, "", "play", "--setup", path)
	assert.ErrorIs(t, res.err, model.ErrInvalidColor)
}

func TestRoll(t *testing.T) {
	res := runCLI(t, func(a *factory.TestApp) { a.MockRandom.QueueIntn(6) }, "", "roll")
	require.NoError(t, res.err)
	assert.Equal(t, "d20: 7\n", res.stdout)
	assert.Equal(t, []int{20}, res.app.MockRandom.Bounds)
}

func TestRollCustomSidesJSON(t *testing.T) {
	res := runCLI(t, func(a *factory.TestApp) { a.MockRandom.QueueIntn(5) }, "", "-o", "json", "roll", "d6")
	require.NoError(t, res.err)

	result := decodeAs[RollResult](t, json.RawMessage(res.stdout))
	assert.Equal(t, RollResult{Sides: 6, Result: 6}, result)
}

func TestRollRejectsBadSides(t *testing.T) {
	res := runCLI(t, nil, "", "roll", "2")
	assert.ErrorIs(t, res.err, model.ErrInvalidDieSides)

	res = runCLI(t, nil, "", "roll", "many")
	assert.ErrorContains(t, res.err, "invalid die")
}

func TestFlip(t *testing.T) {
	res := runCLI(t, func(a *factory.TestApp) { a.MockRandom.QueueIntn(1) }, "", "flip")
	require.NoError(t, res.err)
	assert.Equal(t, "Coin: tails\n", res.stdout)
}

func TestFormats(t *testing.T) {
	res := runCLI(t, nil, "", "-o", "json", "formats")
	require.NoError(t, res.err)

	views := decodeAs[[]FormatView](t, json.RawMessage(res.stdout))
	require.Len(t, views, 6)
	assert.Equal(t, FormatView{Mode: "commander", StartingLife: 40, StartingCommanderDamage: 21}, views[0])
}

func TestInvalidOutputFormat(t *testing.T) {
	res := runCLI(t, nil, "", "-o", "yaml", "formats")
	assert.ErrorContains(t, res.err, "invalid output format")
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("LIFECOUNTER_OUTPUT", "json")
	t.Setenv("LIFECOUNTER_FEEDBACK_WINDOW", "2s")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, c.Output)
	assert.Equal(t, "2s", c.FeedbackWindow.String())
	assert.NoError(t, c.Validate())
}

func TestConfigRejectsNegativeWindow(t *testing.T) {
	t.Setenv("LIFECOUNTER_FEEDBACK_WINDOW", "-1s")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.ErrorContains(t, c.Validate(), "must not be negative")
}
