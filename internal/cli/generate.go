package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler"
	"github.com/SeamusWaldron/scrambler/internal/presetfile"
	"github.com/SeamusWaldron/scrambler/internal/state"
	"github.com/SeamusWaldron/scrambler/internal/storage"
)

const customMode = "custom"

var (
	genMode      string
	genLength    int
	genMoves     string
	genModifiers string
	genSeed      int64
	genCount     int
	genNumbered  bool
	genFormat    string
	genSave      bool
	genNotes     string
	genOutput    string
	genFallback  bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate scrambles",
	Long: `Generate one or more scrambles from a preset or a custom configuration.

Scramble i of a batch is generated from seed+i, so any single scramble can be
reproduced later with --seed.

Examples:
  scrambler generate
  scrambler generate --mode 2x2 --count 5 --numbered
  scrambler generate --seed 42
  scrambler generate --mode megaminx --fallback
  scrambler generate --moves URFDLB --modifiers " '2" --length 25
  scrambler generate --count 12 --format json --save --notes "club session"`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genMode, "mode", "m", "", "Preset mode (default: last used, then 3x3)")
	generateCmd.Flags().IntVarP(&genLength, "length", "n", 0, "Scramble length (default: from the preset)")
	generateCmd.Flags().StringVar(&genMoves, "moves", "", `Custom moveset, e.g. "URF" or "U,Rw,F"`)
	generateCmd.Flags().StringVar(&genModifiers, "modifiers", " '2", "Modifier characters for a custom moveset; space is the blank modifier")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (default: time based)")
	generateCmd.Flags().IntVarP(&genCount, "count", "c", 1, "Number of scrambles")
	generateCmd.Flags().BoolVar(&genNumbered, "numbered", false, "Prefix each scramble with its number")
	generateCmd.Flags().StringVar(&genFormat, "format", "txt", "Output format (txt, json)")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "Save the scrambles to the history database")
	generateCmd.Flags().StringVar(&genNotes, "notes", "", "Notes stored with saved scrambles")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().BoolVar(&genFallback, "fallback", false, "Use the default preset for unknown modes instead of failing")
}

// generated is one scramble of a batch together with the seed it came from.
type generated struct {
	Seed     int64
	Scramble scrambler.Scramble
}

// scrambleJSON is the JSON structure for --format json.
type scrambleJSON struct {
	Index    int      `json:"index"`
	Mode     string   `json:"mode"`
	Seed     int64    `json:"seed"`
	Scramble string   `json:"scramble"`
	Moves    []string `json:"moves"`
	ID       string   `json:"id,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	format := strings.ToLower(genFormat)
	if format != "txt" && format != "json" {
		return fmt.Errorf("unknown format: %s (use txt or json)", genFormat)
	}

	sf, err := openState()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(sf)
	if err != nil {
		return err
	}

	mode, cfg, err := generateConfig(cmd, sf, reg)
	if err != nil {
		return err
	}
	logf(cmd, "mode %s: %s", mode, cfg)

	base := genSeed
	if !cmd.Flags().Changed("seed") {
		base = time.Now().UnixNano()
	}
	logf(cmd, "seed %d", base)

	batch, err := generateBatch(cfg, base, genCount)
	if err != nil {
		return err
	}

	var ids []string
	if genSave {
		ids, err = saveBatch(sf, mode, cfg, batch)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d scramble(s)\n", len(ids))
	}

	if mode != customMode {
		if err := sf.SetLastMode(mode); err != nil {
			logf(cmd, "could not update state: %v", err)
		}
	}

	output, err := formatBatch(format, mode, batch, ids)
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, len(batch))
}

// generateConfig builds the configuration from --moves or --mode.
func generateConfig(cmd *cobra.Command, sf *state.File, reg *presetfile.Registry) (string, scrambler.Config, error) {
	if genMoves != "" {
		if cmd.Flags().Changed("mode") {
			return "", scrambler.Config{}, fmt.Errorf("--mode and --moves are mutually exclusive")
		}
		if genLength <= 0 {
			return "", scrambler.Config{}, fmt.Errorf("--length is required with --moves")
		}
		cfg, err := scrambler.NewConfig(genLength, scrambler.ParseMoveset(genMoves), scrambler.ParseModifiers(genModifiers))
		if err != nil {
			return "", scrambler.Config{}, err
		}
		return customMode, cfg, nil
	}

	mode := genMode
	if mode == "" {
		mode = defaultMode(sf, reg)
	}
	var cfg scrambler.Config
	if _, ok := reg.Lookup(scrambler.Mode(mode)); !ok && genFallback {
		logf(cmd, "unknown mode %q, using %s", mode, scrambler.DefaultMode)
		cfg = reg.Resolve(scrambler.Mode(mode))
		mode = string(scrambler.DefaultMode)
	} else {
		c, err := strictMode(reg, mode)
		if err != nil {
			return "", scrambler.Config{}, err
		}
		cfg = c
	}

	var err error
	if cmd.Flags().Changed("length") {
		cfg, err = scrambler.NewConfig(genLength, cfg.Moveset(), cfg.Modifiers())
		if err != nil {
			return "", scrambler.Config{}, err
		}
	}
	return mode, cfg, nil
}

// generateBatch generates n scrambles, the i-th from seed base+i.
func generateBatch(cfg scrambler.Config, base int64, n int) ([]generated, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	batch := make([]generated, 0, n)
	for i := 0; i < n; i++ {
		seed := base + int64(i)
		s, err := scrambler.Generate(cfg, scrambler.NewSource(uint64(seed)))
		if err != nil {
			return nil, err
		}
		batch = append(batch, generated{Seed: seed, Scramble: s})
	}
	return batch, nil
}

func saveBatch(sf *state.File, mode string, cfg scrambler.Config, batch []generated) ([]string, error) {
	db, err := openDB(sf)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records := make([]storage.NewScramble, len(batch))
	for i, g := range batch {
		seed := g.Seed
		records[i] = storage.NewScramble{
			Mode:     mode,
			Config:   cfg,
			Scramble: g.Scramble,
			Seed:     &seed,
			Notes:    genNotes,
		}
	}

	ids, err := storage.NewScrambleRepository(db).CreateBatch(records)
	if err != nil {
		return nil, fmt.Errorf("failed to save scrambles: %w", err)
	}
	if err := sf.SetLastScramble(ids[len(ids)-1]); err != nil {
		return nil, err
	}
	return ids, nil
}

func formatBatch(format, mode string, batch []generated, ids []string) (string, error) {
	switch format {
	case "json":
		out := make([]scrambleJSON, len(batch))
		for i, g := range batch {
			out[i] = scrambleJSON{
				Index:    i + 1,
				Mode:     mode,
				Seed:     g.Seed,
				Scramble: g.Scramble.String(),
				Moves:    notations(g.Scramble),
			}
			if i < len(ids) {
				out[i].ID = ids[i]
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		lines := make([]string, len(batch))
		for i, g := range batch {
			if genNumbered {
				lines[i] = fmt.Sprintf("%d. %s", i+1, g.Scramble)
			} else {
				lines[i] = g.Scramble.String()
			}
		}
		return strings.Join(lines, "\n"), nil
	}
}

func notations(s scrambler.Scramble) []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = m.Notation()
	}
	return out
}

func writeOutput(cmd *cobra.Command, output string, count int) error {
	if genOutput == "" {
		fmt.Fprintln(out(cmd), output)
		return nil
	}

	dir := filepath.Dir(genOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(genOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(out(cmd), "Wrote %d scramble(s) to %s\n", count, genOutput)
	return nil
}
