// Package cli implements the command-line interface for scrambler.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	presetPath string
	rememberDB bool
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "scrambler",
	Short: "Twisty puzzle scramble generator",
	Long: `Scrambler - generate random scrambles for twisty puzzles in standard notation.

Scrambles never repeat a move symbol that appeared one or two moves earlier.
Built-in presets cover the 2x2 and 3x3 cubes; more can be added from a YAML
preset file. Generated scrambles can be saved to a local history database.`,
	Version:       version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: rememberDBPath,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.scrambler/scrambler.db)")
	rootCmd.PersistentFlags().BoolVar(&rememberDB, "remember-db", false, "Store the --db path as the default for later runs")
	rootCmd.PersistentFlags().StringVar(&presetPath, "presets", "", "YAML file with additional presets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// rememberDBPath stores --db in the state file when --remember-db is set.
func rememberDBPath(cmd *cobra.Command, args []string) error {
	if !rememberDB {
		return nil
	}
	if dbPath == "" {
		return fmt.Errorf("--remember-db needs --db")
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return err
	}
	sf, err := openState()
	if err != nil {
		return err
	}
	if err := sf.SetDBPath(abs); err != nil {
		return err
	}
	logf(cmd, "remembered database %s", abs)
	return nil
}

// logf prints a diagnostic line to stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), statusStyle.Render(fmt.Sprintf(format, args...)))
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
