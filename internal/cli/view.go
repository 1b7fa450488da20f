package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// viewCommand creates the view command: an interactive terminal preview
// of the grid with live layout recovery as the simulated viewport and
// panels change.
func (c *CLI) viewCommand() *cobra.Command {
	var env envFlags

	cmd := &cobra.Command{
		Use:   "view [dashboard]",
		Short: "Interactive grid preview with live recovery",
		Long: `View opens an interactive preview of a dashboard grid. Arrow keys
change the simulated window width, m/s toggle the side panels, and
letter keys add widgets. Layout recovery runs live on every
environment change. The preview is a sandbox: nothing is persisted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := grid.New(grid.Config{}, c.Logger)

			snap := grid.Snapshot{}
			title := "sandbox"
			if len(args) == 1 {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				runner, cleanup, err := c.newRunner(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				layout, err := runner.EnvironmentChanged(cmd.Context(), args[0], env.environment())
				cleanup()
				if err != nil {
					printError("%v", err)
					return err
				}
				snap = layout.Snapshot
				title = args[0]
			}

			model := newGridModel(engine, snap, env.environment(), title)
			_, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	env.register(cmd)
	return cmd
}

// widgetGlyphs color the preview blocks per kind.
var widgetGlyphs = map[grid.Kind]lipgloss.Style{
	grid.KindChart: lipgloss.NewStyle().Foreground(colorBlue),
	grid.KindKPI:   lipgloss.NewStyle().Foreground(colorGreen),
	grid.KindTable: lipgloss.NewStyle().Foreground(colorYellow),
	grid.KindText:  lipgloss.NewStyle().Foreground(colorCyan),
}

// gridModel is the bubbletea model for the interactive grid preview.
// The snapshot is always laid out for the current breakpoint's column
// count; environment changes run the recovery transform in place.
type gridModel struct {
	engine  *grid.Engine
	snap    grid.Snapshot
	env     grid.Environment
	columns int
	title   string
	counter int
}

func newGridModel(engine *grid.Engine, snap grid.Snapshot, env grid.Environment, title string) gridModel {
	m := gridModel{
		engine: engine,
		snap:   snap,
		env:    env,
		title:  title,
	}
	m.columns = engine.Resolve(env).Columns()
	m.counter = snap.Len()
	return m
}

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left":
		return m.withWidth(m.env.WindowWidthPx - 100), nil
	case "right":
		return m.withWidth(m.env.WindowWidthPx + 100), nil
	case "m":
		env := m.env
		env.MainPanelOpen = !env.MainPanelOpen
		return m.withEnv(env), nil
	case "s":
		env := m.env
		env.SecondaryPanelOpen = !env.SecondaryPanelOpen
		return m.withEnv(env), nil
	case "c":
		return m.addWidget(grid.KindChart), nil
	case "k":
		return m.addWidget(grid.KindKPI), nil
	case "t":
		return m.addWidget(grid.KindTable), nil
	case "x":
		return m.addWidget(grid.KindText), nil
	case "backspace", "d":
		if n := m.snap.Len(); n > 0 {
			m.snap = m.snap.Without(m.snap.Widgets[n-1].ID)
		}
		return m, nil
	}
	return m, nil
}

func (m gridModel) withWidth(width int) gridModel {
	if width < 200 {
		width = 200
	}
	if width > 2400 {
		width = 2400
	}
	env := m.env
	env.WindowWidthPx = width
	return m.withEnv(env)
}

// withEnv applies a new environment, recovering the layout when the
// column count changes.
func (m gridModel) withEnv(env grid.Environment) gridModel {
	newColumns := m.engine.Resolve(env).Columns()
	if newColumns != m.columns {
		m.snap = m.engine.Recover(m.snap, newColumns, m.columns)
		m.columns = newColumns
	}
	m.env = env
	return m
}

func (m gridModel) addWidget(kind grid.Kind) gridModel {
	m.counter++
	id := fmt.Sprintf("w%d", m.counter)
	bp := m.engine.Resolve(m.env)
	m.snap, _ = m.engine.Place(m.snap, id, kind, "", bp)
	return m
}

func (m gridModel) View() string {
	var b strings.Builder

	bp := m.engine.Resolve(m.env)

	b.WriteString(StyleTitle.Render("dashgrid preview: " + m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("width %dpx · breakpoint %s · %d columns · main panel %s · secondary %s",
		m.env.WindowWidthPx, bp, m.columns,
		onOff(m.env.MainPanelOpen), onOff(m.env.SecondaryPanelOpen))))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  m/s panels  c chart  k kpi  t table  x text  d delete last  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderGrid draws the occupancy matrix, one two-character cell per grid
// cell, colored by the owning widget's kind.
func (m gridModel) renderGrid() string {
	rows := m.snap.MaxBottom()
	if rows < 1 {
		rows = 1
	}

	// Owner per cell, drawn from position-sorted widgets so labels are
	// stable across redraws.
	type cellOwner struct {
		label string
		kind  grid.Kind
	}
	cells := make([][]cellOwner, rows)
	for y := range cells {
		cells[y] = make([]cellOwner, m.columns)
	}
	for i, w := range m.snap.Sorted() {
		label := string(rune('A' + i%26))
		for y := w.Rect.Y; y < w.Rect.Bottom() && y < rows; y++ {
			for x := w.Rect.X; x < w.Rect.Right() && x < m.columns; x++ {
				cells[y][x] = cellOwner{label: label, kind: w.Kind}
			}
		}
	}

	var b strings.Builder
	border := StyleDim.Render("+" + strings.Repeat("--", m.columns) + "+")
	b.WriteString(border)
	b.WriteString("\n")
	for y := 0; y < rows; y++ {
		b.WriteString(StyleDim.Render("|"))
		for x := 0; x < m.columns; x++ {
			cell := cells[y][x]
			if cell.label == "" {
				b.WriteString(StyleDim.Render(" ."))
				continue
			}
			b.WriteString(widgetGlyphs[cell.kind].Render(" " + cell.label))
		}
		b.WriteString(StyleDim.Render("|"))
		b.WriteString("\n")
	}
	b.WriteString(border)
	b.WriteString("\n")
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "open"
	}
	return "closed"
}
