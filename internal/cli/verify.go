package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler"
)

var verifyMode string

var verifyCmd = &cobra.Command{
	Use:   "verify <scramble>",
	Short: "Check a scramble against a preset",
	Long: `Parse a scramble and check that every token belongs to the preset and that
no move symbol repeats one of the two symbols before it.

Examples:
  scrambler verify "R U F' D2 L B"
  scrambler verify --mode 2x2 U R F U2 R' F`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyMode, "mode", "m", "", "Preset mode (default: last used, then 3x3)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(sf)
	if err != nil {
		return err
	}

	mode := verifyMode
	if mode == "" {
		mode = defaultMode(sf, reg)
	}
	cfg, err := strictMode(reg, mode)
	if err != nil {
		return err
	}

	s, err := scrambler.Parse(strings.Join(args, " "), cfg)
	if err != nil {
		return err
	}
	if err := scrambler.CheckAdjacency(s); err != nil {
		return err
	}

	fmt.Fprintf(out(cmd), "OK: %d moves (%s)\n", len(s), mode)
	if len(s) != cfg.Length() {
		fmt.Fprintln(out(cmd), helpStyle.Render(fmt.Sprintf("note: %s scrambles have %d moves", mode, cfg.Length())))
	}
	return nil
}
