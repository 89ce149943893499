package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available presets",
	Long: `List the built-in presets and any loaded from the --presets file.

With --remember the --presets file is stored and loaded by every later command.`,
	RunE: runPresets,
}

var presetsRemember bool

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().BoolVar(&presetsRemember, "remember", false, "Remember the --presets file for later runs")
}

func runPresets(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(sf)
	if err != nil {
		return err
	}

	if presetsRemember {
		if presetPath == "" {
			return fmt.Errorf("--remember needs --presets")
		}
		abs, err := filepath.Abs(presetPath)
		if err != nil {
			return err
		}
		if err := sf.SetPresetFile(abs); err != nil {
			return err
		}
		logf(cmd, "remembered preset file %s", abs)
	}

	rows := [][]string{{"MODE", "LENGTH", "MOVES", "MODIFIERS", "SOURCE"}}
	for _, m := range reg.Modes() {
		cfg, _ := reg.Lookup(m)
		source := "built-in"
		if reg.IsCustom(m) {
			source = "file"
		}
		rows = append(rows, []string{
			string(m),
			fmt.Sprint(cfg.Length()),
			strings.Join(cfg.Moveset(), " "),
			modifierList(cfg.Modifiers()),
			source,
		})
	}

	fmt.Fprintln(out(cmd), titleStyle.Render("Presets"))
	fmt.Fprintln(out(cmd), renderTable(rows))
	fmt.Fprintln(out(cmd), helpStyle.Render(fmt.Sprintf("Unknown modes fall back to %s.", scrambler.DefaultMode)))
	return nil
}

// modifierList renders modifiers for display, showing the blank one as "_".
func modifierList(mods []scrambler.Modifier) string {
	parts := make([]string, len(mods))
	for i, m := range mods {
		if m == scrambler.Blank {
			parts[i] = "_"
		} else {
			parts[i] = string(m)
		}
	}
	return strings.Join(parts, " ")
}

// renderTable lays out rows in padded columns; the first row is a header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + cellStyle.GetPaddingRight())
			if r == 0 {
				style = style.Bold(true)
			}
			cells[i] = style.Render(cell)
		}
		lines[r] = strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
	}
	return strings.Join(lines, "\n")
}
