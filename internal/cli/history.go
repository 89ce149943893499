package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler/internal/storage"
)

var (
	historyLimit int
	historyMode  string
	showLast     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved scrambles",
	Long: `List scrambles saved with 'scrambler generate --save', newest first.

Examples:
  scrambler history
  scrambler history --mode 2x2 --limit 5
  scrambler history show --last
  scrambler history delete <id>`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one saved scramble",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved scramble",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scrambles to list")
	historyCmd.Flags().StringVarP(&historyMode, "mode", "m", "", "Only list scrambles of this mode")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent scramble")

	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	db, err := openDB(sf)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScrambleRepository(db)
	var records []storage.ScrambleRecord
	if historyMode != "" {
		records, err = repo.ListByMode(historyMode, historyLimit)
	} else {
		records, err = repo.List(historyLimit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out(cmd), "No saved scrambles. Save one with: scrambler generate --save")
		return nil
	}

	rows := [][]string{{"ID", "CREATED", "MODE", "SCRAMBLE"}}
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.ScrambleID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			r.ScrambleText,
		})
	}
	fmt.Fprintln(out(cmd), renderTable(rows))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !showLast {
		return fmt.Errorf("specify an id or --last")
	}

	sf, err := openState()
	if err != nil {
		return err
	}
	db, err := openDB(sf)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScrambleRepository(db)
	var rec *storage.ScrambleRecord
	if showLast {
		rec, err = repo.GetLast()
	} else {
		rec, err = findRecord(repo, args[0])
	}
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no scramble found")
	}

	w := out(cmd)
	fmt.Fprintln(w, scrambleStyle.Render(rec.ScrambleText))
	fmt.Fprintf(w, "ID:        %s\n", rec.ScrambleID)
	fmt.Fprintf(w, "Created:   %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Mode:      %s\n", rec.Mode)
	fmt.Fprintf(w, "Length:    %d\n", rec.Length)
	fmt.Fprintf(w, "Moveset:   %v\n", rec.Moveset)
	fmt.Fprintf(w, "Modifiers: %s\n", modifierList(rec.Modifiers))
	if rec.Seed != nil {
		fmt.Fprintf(w, "Seed:      %d\n", *rec.Seed)
	}
	if rec.Notes != nil {
		fmt.Fprintf(w, "Notes:     %s\n", *rec.Notes)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	db, err := openDB(sf)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScrambleRepository(db)
	rec, err := findRecord(repo, args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no scramble found with id %s", args[0])
	}

	if err := repo.Delete(rec.ScrambleID); err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Deleted %s\n", rec.ScrambleID)
	return nil
}

// findRecord looks a scramble up by full ID or by the short prefix shown in
// listings. An ambiguous prefix is an error.
func findRecord(repo *storage.ScrambleRepository, id string) (*storage.ScrambleRecord, error) {
	rec, err := repo.Get(id)
	if err != nil || rec != nil {
		return rec, err
	}

	matches, err := repo.FindByPrefix(id)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("id prefix %s matches %d scrambles", id, len(matches))
	}
}
