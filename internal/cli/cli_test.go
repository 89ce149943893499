package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/scrambler"
)

// run executes the command tree with args in an isolated home directory and
// returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestGenerateDefault(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate")
	require.NoError(t, err)

	s, err := scrambler.Parse(strings.TrimSpace(stdout), scrambler.Preset(scrambler.Mode3x3))
	require.NoError(t, err)
	require.Len(t, s, 20)
	require.True(t, s.Valid())
}

func TestGenerateSeedMatchesLibrary(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate", "--mode", "2x2", "--seed", "42")
	require.NoError(t, err)

	want, err := scrambler.Generate(scrambler.Preset(scrambler.Mode2x2), scrambler.NewSource(42))
	require.NoError(t, err)
	require.Equal(t, want.String()+"\n", stdout)
}

func TestGenerateNumberedBatch(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate", "-m", "2x2", "--seed", "7", "-c", "3", "--numbered")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		want, err := scrambler.Generate(scrambler.Preset(scrambler.Mode2x2), scrambler.NewSource(uint64(7+i)))
		require.NoError(t, err)
		require.Equal(t, want.String(), strings.SplitN(line, ". ", 2)[1])
		require.True(t, strings.HasPrefix(line, string(rune('1'+i))+". "))
	}
}

func TestGenerateJSON(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate", "--seed", "1", "--count", "2", "--format", "json")
	require.NoError(t, err)

	var got []scrambleJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	require.Equal(t, "3x3", got[0].Mode)
	require.EqualValues(t, 2, got[1].Seed)
	require.Len(t, got[0].Moves, 20)
	require.Equal(t, strings.Join(got[0].Moves, " "), got[0].Scramble)
}

func TestGenerateCustom(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate", "--moves", "ABC", "--modifiers", " ", "--length", "6", "--seed", "3")
	require.NoError(t, err)

	cfg := scrambler.MustConfig(6, []string{"A", "B", "C"}, []scrambler.Modifier{scrambler.Blank})
	s, err := scrambler.Parse(strings.TrimSpace(stdout), cfg)
	require.NoError(t, err)
	require.Len(t, s, 6)
	require.True(t, s.Valid())
}

func TestGenerateErrors(t *testing.T) {
	isolate(t)
	cases := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown mode", []string{"generate", "--mode", "megaminx"}, scrambler.ErrUnknownMode},
		{"unsatisfiable custom", []string{"generate", "--moves", "U", "--length", "3"}, scrambler.ErrUnsatisfiableConstraint},
		{"zero length", []string{"generate", "--length", "0"}, scrambler.ErrInvalidConfig},
		{"custom without length", []string{"generate", "--moves", "URF"}, nil},
		{"bad format", []string{"generate", "--format", "xml"}, nil},
		{"bad count", []string{"generate", "--count", "0"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			require.Error(t, err)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestGenerateRemembersMode(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "generate", "--mode", "2x2")
	require.NoError(t, err)

	stdout, _, err := run(t, "generate")
	require.NoError(t, err)
	_, err = scrambler.Parse(strings.TrimSpace(stdout), scrambler.Preset(scrambler.Mode2x2))
	require.NoError(t, err)
	require.Len(t, strings.Fields(stdout), 9)
}

func TestGenerateOutputFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "out", "scrambles.txt")
	stdout, _, err := run(t, "generate", "--count", "4", "-o", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote 4 scramble(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}

func TestSaveAndHistory(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "hist.db")

	_, stderr, err := run(t, "--db", db, "generate", "--seed", "5", "--count", "2", "--save", "--notes", "club")
	require.NoError(t, err)
	require.Contains(t, stderr, "Saved 2 scramble(s)")

	stdout, _, err := run(t, "--db", db, "history")
	require.NoError(t, err)
	require.Contains(t, stdout, "3x3")
	require.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3) // header + 2

	stdout, _, err = run(t, "--db", db, "history", "show", "--last")
	require.NoError(t, err)
	want, err := scrambler.Generate(scrambler.Preset(scrambler.Mode3x3), scrambler.NewSource(6))
	require.NoError(t, err)
	require.Contains(t, stdout, want.String())
	require.Contains(t, stdout, "Seed:      6")
	require.Contains(t, stdout, "Notes:     club")

	stdout, _, err = run(t, "--db", db, "history", "--mode", "2x2")
	require.NoError(t, err)
	require.Contains(t, stdout, "No saved scrambles")
}

func TestHistoryDelete(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "hist.db")

	stdout, _, err := run(t, "--db", db, "generate", "--save", "--format", "json")
	require.NoError(t, err)
	var got []scrambleJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	require.NotEmpty(t, got[0].ID)

	stdout, _, err = run(t, "--db", db, "history", "delete", shortID(got[0].ID))
	require.NoError(t, err)
	require.Contains(t, stdout, got[0].ID)

	_, _, err = run(t, "--db", db, "history", "show", got[0].ID)
	require.Error(t, err)

	_, _, err = run(t, "--db", db, "history", "show")
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "verify", "R U F' D2 L B")
	require.NoError(t, err)
	require.Contains(t, stdout, "OK: 6 moves")

	stdout, _, err = run(t, "verify", "--mode", "2x2", "U", "R", "F", "U2", "R'", "F", "U", "R2", "F'")
	require.NoError(t, err)
	require.Contains(t, stdout, "OK: 9 moves")

	_, _, err = run(t, "verify", "R U R")
	require.ErrorIs(t, err, scrambler.ErrAdjacencyViolation)

	_, _, err = run(t, "verify", "--mode", "2x2", "D")
	require.ErrorIs(t, err, scrambler.ErrInvalidNotation)
}

const presetYAML = `
presets:
  - name: pyraminx
    length: 11
    moveset: URLB
    modifiers: " '"
`

func TestPresetFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0644))

	stdout, _, err := run(t, "--presets", path, "presets")
	require.NoError(t, err)
	require.Contains(t, stdout, "pyraminx")
	require.Contains(t, stdout, "2x2")
	require.Contains(t, stdout, "file")

	stdout, _, err = run(t, "--presets", path, "generate", "--mode", "pyraminx", "--seed", "9")
	require.NoError(t, err)
	presets := scrambler.MustConfig(11, []string{"U", "R", "L", "B"}, []scrambler.Modifier{scrambler.Blank, scrambler.Prime})
	s, err := scrambler.Parse(strings.TrimSpace(stdout), presets)
	require.NoError(t, err)
	require.Len(t, s, 11)
}

func TestPresetsBuiltin(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "presets")
	require.NoError(t, err)
	require.Contains(t, stdout, "U D R L F B")
	require.Contains(t, stdout, "_ ' 2")
	require.Contains(t, stdout, "fall back to 3x3")
}

func TestStatus(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "status.db")

	_, _, err := run(t, "--db", db, "generate", "--mode", "2x2", "--save")
	require.NoError(t, err)

	stdout, _, err := run(t, "--db", db, "status")
	require.NoError(t, err)
	require.Contains(t, stdout, "Database: "+db)
	require.Contains(t, stdout, "Saved scrambles: 1")
	require.Contains(t, stdout, "Last mode: 2x2")
	require.Contains(t, stdout, "Last saved ID: ")
}

func TestStatusWithoutDatabase(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "nowhere", "none.db")

	stdout, _, err := run(t, "--db", db, "status")
	require.NoError(t, err)
	require.Contains(t, stdout, "No database yet")
	_, err = os.Stat(filepath.Dir(db))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(home, ".scrambler"))
	require.True(t, os.IsNotExist(err))
}

func TestRememberDB(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "kept.db")

	_, _, err := run(t, "--remember-db", "status")
	require.Error(t, err)

	_, _, err = run(t, "--db", db, "--remember-db", "generate", "--save")
	require.NoError(t, err)

	stdout, _, err := run(t, "status")
	require.NoError(t, err)
	require.Contains(t, stdout, "Database: "+db)
	require.Contains(t, stdout, "Saved scrambles: 1")
}

func TestGenerateFallback(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "generate", "--mode", "megaminx", "--fallback", "--seed", "42")
	require.NoError(t, err)

	want, err := scrambler.Generate(scrambler.Preset(scrambler.DefaultMode), scrambler.NewSource(42))
	require.NoError(t, err)
	require.Equal(t, want.String()+"\n", stdout)
}

func TestPresetsRemember(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0644))

	_, _, err := run(t, "presets", "--remember")
	require.Error(t, err)

	_, _, err = run(t, "--presets", path, "presets", "--remember")
	require.NoError(t, err)

	stdout, _, err := run(t, "generate", "--mode", "pyraminx")
	require.NoError(t, err)
	require.Len(t, strings.Fields(stdout), 11)
}

func TestStats(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "stats", "--mode", "2x2", "--count", "200", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, stdout, "200 scrambles, 1800 moves")
	require.Contains(t, stdout, "Adjacency violations: 0")
	require.Contains(t, stdout, "Opposite-face pairs: 0")
	require.Contains(t, stdout, "Max share deviation: symbols 0.0")

	stdout, _, err = run(t, "stats", "--count", "50", "--seed", "3", "--format", "json")
	require.NoError(t, err)
	var report struct {
		Scrambles  int     `json:"scrambles"`
		Moves      int     `json:"moves"`
		SymbolSkew float64 `json:"symbol_skew"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, 50, report.Scrambles)
	require.Equal(t, 1000, report.Moves)
	require.Greater(t, report.SymbolSkew, 0.0)
	require.Less(t, report.SymbolSkew, 0.1)

	_, _, err = run(t, "stats", "--format", "xml", "--count", "1")
	require.Error(t, err)
}
