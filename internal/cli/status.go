package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and preference information",
	Long:  `Display the history database location, stored scramble count, the most recent scramble and remembered preferences.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	w := out(cmd)

	fmt.Fprintln(w, titleStyle.Render("Scrambler Status"))
	fmt.Fprintln(w)

	path, err := resolveDBPath(sf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Database: %s\n", path)

	if db, err := storage.OpenExisting(path); errors.Is(err, storage.ErrNoDatabase) {
		fmt.Fprintln(w, "No database yet (use generate --save)")
	} else if err == nil {
		defer db.Close()
		repo := storage.NewScrambleRepository(db)
		if count, err := repo.Count(); err == nil {
			fmt.Fprintf(w, "Saved scrambles: %d\n", count)
		}
		if last, err := repo.GetLast(); err == nil && last != nil {
			fmt.Fprintf(w, "Last scramble: %s (%s, %s)\n",
				last.ScrambleText, last.Mode, last.CreatedAt.Local().Format(time.RFC3339))
		}
	} else {
		fmt.Fprintf(w, "Database error: %v\n", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "State file: %s\n", sf.Path())
	if id := sf.State().LastScramble; id != "" {
		fmt.Fprintf(w, "Last saved ID: %s\n", shortID(id))
	}
	if m := sf.LastMode(); m != "" {
		fmt.Fprintf(w, "Last mode: %s\n", modeStyle.Render(m))
	} else {
		fmt.Fprintln(w, "No mode history")
	}

	reg, err := loadRegistry(sf)
	if err != nil {
		fmt.Fprintf(w, "Preset file error: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "Presets: %s\n", modeList(reg))
	return nil
}
