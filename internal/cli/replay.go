package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

const defaultReplayInterval = 500 * time.Millisecond

var (
	replayLast     bool
	replayInterval time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay [run-id]",
	Short: "Replay a run's solution",
	Long: `Step through a recorded run's solution from its start cube.

Usage:
  gocube-solver replay <run-id>           # Replay a specific run
  gocube-solver replay --last             # Replay the most recent run
  gocube-solver replay --last --interval 250ms`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent run")
	replayCmd.Flags().DurationVar(&replayInterval, "interval", defaultReplayInterval, "Delay between moves when playing")
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := resolveRun(storage.NewRunRepository(db), args, replayLast)
	if err != nil {
		return err
	}

	records, err := storage.NewMoveRepository(db).GetByRun(run.RunID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run %s has no solution moves to replay (status %s)", run.RunID, run.Status)
	}

	model, err := newReplayModel(run, records, replayInterval)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	return nil
}

// Replay model
type replayModel struct {
	runID    string
	moves    []gocube.Move
	tracker  *gocube.Tracker
	index    int // Moves applied so far
	playing  bool
	interval time.Duration
	viewport viewport.Model
	ready    bool
	quitting bool
}

type replayTickMsg time.Time

func newReplayModel(run *storage.Run, records []storage.MoveRecord, interval time.Duration) (*replayModel, error) {
	initial, err := run.Initial()
	if err != nil {
		return nil, fmt.Errorf("failed to decode start cube: %w", err)
	}
	goal, err := run.Goal()
	if err != nil {
		return nil, fmt.Errorf("failed to decode goal cube: %w", err)
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = defaultReplayInterval
	}

	return &replayModel{
		runID:    run.RunID,
		moves:    moves,
		tracker:  gocube.NewTracker(initial, goal),
		interval: interval,
	}, nil
}

func (m *replayModel) Init() tea.Cmd {
	return nil
}

func (m *replayModel) scheduleNext() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return replayTickMsg(t)
	})
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 18
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.updateViewportContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right", "l":
			m.playing = false
			m.step()

		case "b", "left", "h":
			m.playing = false
			m.back()

		case "p":
			m.playing = !m.playing
			if m.playing {
				return m, m.scheduleNext()
			}

		case "r":
			m.playing = false
			m.seek(0)

		case "e", "end":
			m.playing = false
			m.seek(len(m.moves))

		case "+", "=":
			m.interval /= 2
			if m.interval < 50*time.Millisecond {
				m.interval = 50 * time.Millisecond
			}

		case "-":
			m.interval *= 2
			if m.interval > 4*time.Second {
				m.interval = 4 * time.Second
			}

		case "j", "down":
			m.viewport.LineDown(1)

		case "k", "up":
			m.viewport.LineUp(1)
		}

	case replayTickMsg:
		if !m.playing {
			return m, nil
		}
		m.step()
		if m.index >= len(m.moves) {
			m.playing = false
			return m, nil
		}
		return m, m.scheduleNext()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// step applies the next move, if any.
func (m *replayModel) step() {
	if m.index >= len(m.moves) {
		return
	}
	m.tracker.ApplyMove(m.moves[m.index])
	m.index++
	m.updateViewportContent()
}

// back undoes the last applied move.
func (m *replayModel) back() {
	if m.index > 0 {
		m.seek(m.index - 1)
	}
}

// seek replays the first n moves from the start cube.
func (m *replayModel) seek(n int) {
	m.tracker.Reset()
	m.tracker.ApplyMoves(m.moves[:n])
	m.index = n
	m.updateViewportContent()
}

func (m *replayModel) updateViewportContent() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for i, mv := range m.moves {
		line := fmt.Sprintf("%3d. %s", i+1, mv.Notation())
		switch {
		case i == m.index-1:
			b.WriteString(currentMoveStyle.Render(line))
		case i < m.index:
			b.WriteString(moveStyle.Render(line))
		default:
			b.WriteString(statusStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())

	// Keep the current move in view
	if m.index > m.viewport.Height {
		m.viewport.SetYOffset(m.index - m.viewport.Height)
	} else {
		m.viewport.GotoTop()
	}
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Solution Replay"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.runID))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Move %d/%d", m.index, len(m.moves))
	if m.playing {
		progress += " [PLAYING]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%s per move)\n", m.interval))

	if m.tracker.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", stageStyle.Render("SOLVED!")))
	} else {
		b.WriteString(fmt.Sprintf("Stage: %s", stageStyle.Render(m.tracker.CurrentStage().DisplayName())))
		b.WriteString(statusStyle.Render(fmt.Sprintf("  (best %s)", m.tracker.HighestStage().DisplayName())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderNet(m.tracker.Cube()))
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("SPACE/n=next  b=back  p=play/pause  r=reset  e=end  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
