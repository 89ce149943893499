package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/scrambler"
	"github.com/SeamusWaldron/scrambler/internal/storage"
)

var (
	sessionMode  string
	sessionSeed  int64
	sessionNoDB  bool
	sessionNoLog bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Interactive scramble session",
	Long: `Start an interactive TUI that shows one scramble at a time.

Keyboard shortcuts:
  space/n - Next scramble
  s       - Save the current scramble to history
  q/Esc   - Quit

Each session is logged to ~/.scrambler/logs as JSON lines.`,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.Flags().StringVarP(&sessionMode, "mode", "m", "", "Preset mode (default: last used, then 3x3)")
	sessionCmd.Flags().Int64Var(&sessionSeed, "seed", 0, "Random seed (default: time based)")
	sessionCmd.Flags().BoolVar(&sessionNoDB, "no-db", false, "Do not record the session in the history database")
	sessionCmd.Flags().BoolVar(&sessionNoLog, "no-log", false, "Do not write a session log file")
}

// Messages
type savedMsg struct {
	index int
	id    string
}
type saveErrMsg struct {
	index int
	err   error
}

// saveFunc stores one scramble and returns its ID.
type saveFunc func(g generated) (string, error)

// Model
type sessionModel struct {
	mode string
	cfg  scrambler.Config
	base int64

	// Scrambles generated so far; the last one is current.
	scrambles []generated
	saved     map[int]string
	saving    map[int]bool
	lastSaved string

	save   saveFunc
	logger *SessionLogger

	status   string
	err      error
	quitting bool
	width    int
}

func newSessionModel(mode string, cfg scrambler.Config, base int64, save saveFunc, logger *SessionLogger) (*sessionModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &sessionModel{
		mode:   mode,
		cfg:    cfg,
		base:   base,
		saved:  make(map[int]string),
		saving: make(map[int]bool),
		save:   save,
		logger: logger,
	}
	m.next()
	return m, nil
}

// next generates the scramble for the next seed.
func (m *sessionModel) next() {
	seed := m.base + int64(len(m.scrambles))
	s, err := scrambler.Generate(m.cfg, scrambler.NewSource(uint64(seed)))
	if err != nil {
		m.err = err
		return
	}
	m.scrambles = append(m.scrambles, generated{Seed: seed, Scramble: s})
	m.status = ""
	m.logger.Log(LogEvent{EventType: LogEventScramble, Mode: m.mode, Seed: seed, Scramble: s.String()})
}

func (m *sessionModel) current() generated {
	return m.scrambles[len(m.scrambles)-1]
}

func (m *sessionModel) Init() tea.Cmd {
	return nil
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		m.logger.Log(LogEvent{EventType: LogEventKeyPress, KeyPress: key})

		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "enter":
			m.next()

		case "s":
			return m, m.saveCurrent()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case savedMsg:
		delete(m.saving, msg.index)
		m.saved[msg.index] = msg.id
		m.lastSaved = msg.id
		m.status = "Saved " + shortID(msg.id)
		m.logger.Log(LogEvent{EventType: LogEventSaved, ScrambleID: msg.id, Scramble: m.scrambles[msg.index].Scramble.String()})

	case saveErrMsg:
		delete(m.saving, msg.index)
		m.err = msg.err
	}

	return m, nil
}

func (m *sessionModel) saveCurrent() tea.Cmd {
	index := len(m.scrambles) - 1
	if _, done := m.saved[index]; done {
		m.status = "Already saved"
		return nil
	}
	if m.saving[index] {
		m.status = "Saving..."
		return nil
	}
	if m.save == nil {
		m.status = "Saving disabled"
		return nil
	}

	m.saving[index] = true
	g := m.current()
	save := m.save
	return func() tea.Msg {
		id, err := save(g)
		if err != nil {
			return saveErrMsg{index: index, err: err}
		}
		return savedMsg{index: index, id: id}
	}
}

func (m *sessionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Scrambler Session"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(m.mode))
	b.WriteString("\n\n")

	if len(m.scrambles) > 0 {
		cur := m.current()
		fmt.Fprintf(&b, "%d. %s\n", len(m.scrambles), scrambleStyle.Render(cur.Scramble.String()))
		b.WriteString(statusStyle.Render(fmt.Sprintf("seed %d", cur.Seed)))
		b.WriteString("\n\n")

		// Show up to five previous scrambles, newest first.
		for i := len(m.scrambles) - 2; i >= 0 && i >= len(m.scrambles)-6; i-- {
			line := fmt.Sprintf("%d. %s", i+1, m.scrambles[i].Scramble)
			if _, ok := m.saved[i]; ok {
				line += " *"
			}
			b.WriteString(statusStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space/n: next  s: save  q: quit"))
	return b.String()
}

func runSession(cmd *cobra.Command, args []string) error {
	sf, err := openState()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(sf)
	if err != nil {
		return err
	}

	mode := sessionMode
	if mode == "" {
		mode = defaultMode(sf, reg)
	}
	cfg, err := strictMode(reg, mode)
	if err != nil {
		return err
	}

	base := sessionSeed
	if !cmd.Flags().Changed("seed") {
		base = time.Now().UnixNano()
	}

	var save saveFunc
	var sessionID string
	if !sessionNoDB {
		db, err := openDB(sf)
		if err != nil {
			return err
		}
		defer db.Close()

		sessions := storage.NewSessionRepository(db)
		sessionID, err = sessions.Create(mode)
		if err != nil {
			return err
		}
		defer func() {
			if err := sessions.End(sessionID); err != nil {
				logf(cmd, "could not end session: %v", err)
			}
		}()

		save = sessionSaver(storage.NewScrambleRepository(db), mode, cfg, sessionID)
	}

	var logger *SessionLogger
	if !sessionNoLog {
		logDir, err := defaultLogDir()
		if err != nil {
			return err
		}
		logger, err = StartSessionLogger(logDir, sessionID)
		if err != nil {
			return err
		}
		defer logger.Close()
	}

	model, err := newSessionModel(mode, cfg, base, save, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session error: %w", err)
	}

	if err := sf.SetLastMode(mode); err != nil {
		logf(cmd, "could not update state: %v", err)
	}
	if model.lastSaved != "" {
		if err := sf.SetLastScramble(model.lastSaved); err != nil {
			logf(cmd, "could not update state: %v", err)
		}
	}

	fmt.Fprintf(out(cmd), "Generated %d scramble(s), saved %d\n", len(model.scrambles), len(model.saved))
	if path := logger.Path(); path != "" {
		fmt.Fprintf(out(cmd), "Log: %s\n", path)
	}
	return nil
}

// sessionSaver returns a saveFunc storing scrambles under sessionID.
func sessionSaver(repo *storage.ScrambleRepository, mode string, cfg scrambler.Config, sessionID string) saveFunc {
	return func(g generated) (string, error) {
		seed := g.Seed
		return repo.Create(storage.NewScramble{
			Mode:      mode,
			Config:    cfg,
			Scramble:  g.Scramble,
			Seed:      &seed,
			SessionID: sessionID,
		})
	}
}
