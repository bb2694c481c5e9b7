package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

func (c *CLI) playCommand() *cobra.Command {
	var (
		flags mazeFlags
		fps   int
		fast  bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Animate a search in the terminal, one step per frame",
		Long: `Play steps the engine once per frame and repaints the grid.

Keys:
  space  pause or resume
  s      single step while paused
  f      fast-forward to the end
  r      restart on the same maze
  a      switch to the next algorithm and restart
  n      new random maze (generated mazes only)
  q      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("fps") {
				cfg.Play.FPS = fps
			}
			if cmd.Flags().Changed("fast") {
				cfg.Play.Fast = fast
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			ctx := cmd.Context()

			g, err := loadGrid(ctx, cfg.Maze)
			if err != nil {
				return err
			}
			var regen func() (*maze.Grid, error)
			if cfg.Maze.File == "" && cfg.Maze.Random {
				m := cfg.Maze
				m.Seed = 0
				regen = func() (*maze.Grid, error) { return loadGrid(ctx, m) }
			}

			model, err := newPlayModel(g, cfg.SearchAlgorithm(), time.Second/time.Duration(cfg.Play.FPS), engineOptions(cfg.Maze)...)
			if err != nil {
				return err
			}
			model.regen = regen
			if cfg.Play.Fast {
				model.fastForward()
			}

			p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(playModel); ok {
				if m.err != nil {
					return m.err
				}
				loggerFromContext(ctx).Info("Search ended", "algorithm", m.eng.Algorithm(), "state", m.eng.State(), "steps", m.eng.Stats().Steps)
			}
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&fps, "fps", 0, "frames (steps) per second, 1..240")
	cmd.Flags().BoolVar(&fast, "fast", false, "start fast-forwarded")

	return cmd
}

// =============================================================================
// playModel - step-per-frame animation
// =============================================================================

// tickMsg is delivered once per frame.
type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel owns its engine on the bubbletea update goroutine. base is the
// pristine maze; every run works on a clone so restarts need no cleanup.
type playModel struct {
	base     *maze.Grid
	alg      search.Algorithm
	opts     []search.Option
	eng      *search.Engine
	interval time.Duration
	paused   bool
	regen    func() (*maze.Grid, error)
	err      error
}

func newPlayModel(base *maze.Grid, alg search.Algorithm, interval time.Duration, opts ...search.Option) (playModel, error) {
	m := playModel{base: base, alg: alg, opts: opts, interval: interval}
	if err := m.restart(); err != nil {
		return m, err
	}
	return m, nil
}

// restart abandons the current engine and begins a new one on a fresh clone.
func (m *playModel) restart() error {
	if m.eng != nil {
		m.eng.Abandon()
	}
	eng, err := search.Begin(m.base.Clone(), m.alg, m.opts...)
	if err != nil {
		return err
	}
	m.eng = eng
	return nil
}

func (m *playModel) step() {
	if m.eng.State() != search.Running {
		return
	}
	if _, err := m.eng.Step(); err != nil {
		m.err = err
	}
}

func (m *playModel) fastForward() {
	if m.eng.State() != search.Running {
		return
	}
	if _, err := m.eng.RunToCompletion(context.Background()); err != nil {
		m.err = err
	}
}

// nextAlgorithm cycles through search.Algorithms in display order.
func nextAlgorithm(a search.Algorithm) search.Algorithm {
	all := search.Algorithms()
	for i, x := range all {
		if x == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m playModel) Init() tea.Cmd {
	return tick(m.interval)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.step()
		}
		if m.err != nil {
			return m, tea.Quit
		}
		return m, tick(m.interval)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			if m.paused {
				m.step()
			}
		case "f":
			m.fastForward()
		case "r":
			m.err = m.restart()
		case "a":
			m.alg = nextAlgorithm(m.alg)
			m.err = m.restart()
		case "n":
			if m.regen == nil {
				return m, nil
			}
			g, err := m.regen()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.base = g
			m.err = m.restart()
		}
		if m.err != nil {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("gridwalk · %s", m.eng.Algorithm())
	if m.paused {
		title += " (paused)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(renderGrid(m.eng.Grid()))
	b.WriteString("\n")
	b.WriteString(statsLine(m.eng))
	b.WriteString("\n")
	b.WriteString(legend())
	b.WriteString("\n")
	help := "space pause  s step  f fast  r restart  a algorithm  q quit"
	if m.regen != nil {
		help = "space pause  s step  f fast  r restart  a algorithm  n new maze  q quit"
	}
	b.WriteString(StyleDim.Render(help))
	b.WriteString("\n")

	return b.String()
}
