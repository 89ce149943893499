package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler"
	"github.com/SeamusWaldron/scrambler/internal/analysis"
)

var (
	statsMode   string
	statsCount  int
	statsSeed   int64
	statsTop    int
	statsFormat string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show move distribution statistics for a batch of scrambles",
	Long: `Generate a batch of scrambles and report how often each move symbol and
modifier appears compared to its share of the preset, plus the most common
runs of two and three symbols and the number of consecutive opposite-face
moves (U D, R L, F B), which the generator does not forbid.

Examples:
  scrambler stats
  scrambler stats --mode 2x2 --count 5000 --seed 1
  scrambler stats --format json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsMode, "mode", "m", "", "Preset mode (default: last used, then 3x3)")
	statsCmd.Flags().IntVarP(&statsCount, "count", "c", 1000, "Number of scrambles to generate")
	statsCmd.Flags().Int64Var(&statsSeed, "seed", 0, "Random seed (default: time based)")
	statsCmd.Flags().IntVar(&statsTop, "top", 5, "Number of top n-grams to list")
	statsCmd.Flags().StringVar(&statsFormat, "format", "txt", "Output format (txt, json)")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	sf, err := openState()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(sf)
	if err != nil {
		return err
	}

	mode := statsMode
	if mode == "" {
		mode = defaultMode(sf, reg)
	}
	cfg, err := strictMode(reg, mode)
	if err != nil {
		return err
	}

	seed := statsSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	logf(cmd, "seed %d", seed)

	gen := scrambler.NewGenerator(scrambler.WithSeed(uint64(seed)))
	batch, err := gen.Batch(cfg, statsCount)
	if err != nil {
		return err
	}
	report := analysis.Analyze(cfg, batch, statsTop)

	switch strings.ToLower(statsFormat) {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out(cmd), string(data))
		return nil
	case "txt":
	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", statsFormat)
	}

	w := out(cmd)
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Statistics"), modeStyle.Render(mode))
	fmt.Fprintf(w, "%d scrambles, %d moves\n\n", report.Scrambles, report.Moves)

	fmt.Fprintln(w, renderTable(countRows("SYMBOL", report.Symbols)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderTable(countRows("MODIFIER", report.Modifiers)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Opposite-face pairs: %d (%.1f%% of transitions)\n",
		report.AxisRepeats, percent(report.AxisRepeats, report.Moves-report.Scrambles))
	fmt.Fprintf(w, "Adjacency violations: %d\n", report.AdjacencyFails)
	fmt.Fprintf(w, "Max share deviation: symbols %.3f, modifiers %.3f\n", report.SymbolSkew, report.ModifierSkew)

	if len(report.TopNGrams) > 0 {
		fmt.Fprintln(w)
		rows := [][]string{{"N", "SEQUENCE", "COUNT"}}
		for _, g := range report.TopNGrams {
			rows = append(rows, []string{fmt.Sprint(g.N), strings.Join(g.Sequence, " "), fmt.Sprint(g.Count)})
		}
		fmt.Fprintln(w, renderTable(rows))
	}
	return nil
}

func countRows(label string, counts []analysis.Count) [][]string {
	rows := [][]string{{label, "COUNT", "SHARE", "EXPECTED"}}
	for _, c := range counts {
		value := c.Value
		if value == "" {
			value = "_"
		}
		rows = append(rows, []string{
			value,
			fmt.Sprint(c.Count),
			fmt.Sprintf("%.3f", c.Share),
			fmt.Sprintf("%.3f", c.Expected),
		})
	}
	return rows
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
