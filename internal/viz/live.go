package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/dynamo"
)

const (
	DefaultSpeed  = 5
	speedStep     = 5
	maxSpeedBar   = 50
	maxSpeedPlate = 20

	panelWidth      = 60
	panelHeight     = 12
	historyCapacity = 200
	frameInterval   = time.Second / 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type TickMsg time.Time

// panel is one solver on screen plus its recent peak history.
type panel struct {
	solver *dynamo.Solver
	peaks  []float64
}

// Model steps one or more solvers on a timer and draws their fields.
type Model struct {
	panels  []*panel
	speed   int
	running bool
}

// NewModel builds a viewer over the given solvers. Four solvers are laid out
// in a 2x2 grid.
func NewModel(solvers ...*dynamo.Solver) Model {
	panels := make([]*panel, len(solvers))
	for i, s := range solvers {
		panels[i] = &panel{solver: s, peaks: make([]float64, 0, historyCapacity)}
	}
	return Model{
		panels:  panels,
		speed:   DefaultSpeed,
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.speed = min(m.speed+speedStep, m.maxSpeed())
		case "down", "j":
			m.speed = max(m.speed-speedStep, 1)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// maxSpeed is the steps-per-frame cap; plates cost far more per step.
func (m Model) maxSpeed() int {
	for _, p := range m.panels {
		if p.solver.Dims() == 2 {
			return maxSpeedPlate
		}
	}
	return maxSpeedBar
}

// step advances every solver by speed steps.
func (m *Model) step() {
	for _, p := range m.panels {
		for range m.speed {
			if !p.solver.Step() {
				break
			}
		}
		p.peaks = append(p.peaks, floats.Max(p.solver.View()))
		if len(p.peaks) > historyCapacity {
			p.peaks = p.peaks[1:]
		}
	}
}

func (m *Model) reset() {
	for _, p := range m.panels {
		p.solver.Reset()
		p.peaks = p.peaks[:0]
	}
}

// Done reports whether every solver has reached its horizon.
func (m Model) Done() bool {
	for _, p := range m.panels {
		if !p.solver.Done() {
			return false
		}
	}
	return true
}

// View renders the TUI interface.
func (m Model) View() string {
	if len(m.panels) == 0 {
		return "nothing to show\n"
	}

	views := make([]string, len(m.panels))
	for i, p := range m.panels {
		views[i] = panelStyle.Render(m.renderPanel(p))
	}

	var body string
	if len(views) == 4 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, views[0], views[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, views[2], views[3])
		body = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}

	status := "RUNNING"
	switch {
	case m.Done():
		status = "FINISHED"
	case !m.running:
		status = "PAUSED"
	}
	footer := fmt.Sprintf("%s  speed %d steps/frame", status, m.speed)
	help := helpStyle.Render("SP:Pause R:Reset ↑↓:Speed T:Theme Q:Quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, footer, help)
}

func (m Model) renderPanel(p *panel) string {
	s := p.solver
	var b strings.Builder

	geometry := "bar"
	if s.Dims() == 2 {
		geometry = "plate"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s", strings.ToUpper(s.Material().Name), geometry)) + "\n")

	if s.Dims() == 2 {
		b.WriteString(ShadeGrid(s.View(), s.N(), panelWidth/2, panelHeight, s.InitialKelvin()))
	} else {
		b.WriteString(graphStyle.Render(asciigraph.Plot(s.View(),
			asciigraph.Height(panelHeight),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("T (K) along x"),
		)))
	}
	b.WriteString("\n")

	progress := float64(s.Steps()) / dynamo.StepsPerRun
	b.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%6.2fs / %.2fs", s.Time(), s.TMax())) + "\n")
	b.WriteString(labelStyle.Render("Progress") + ProgressBar(progress, 20) + "\n")
	if len(p.peaks) > 0 {
		peak := p.peaks[len(p.peaks)-1]
		b.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.2f K", peak)) + "\n")
		b.WriteString(labelStyle.Render("History") + SparklineChart(p.peaks, 20))
	}
	return b.String()
}

// ShadeGrid downsamples a row-major n×n field to cols×rows character cells
// and colours each by its temperature between floor and the field maximum.
// Row 0 (y=0) is drawn at the bottom.
func ShadeGrid(field []float64, n, cols, rows int, floor float64) string {
	if n < 1 || len(field) < n*n || cols < 1 || rows < 1 {
		return ""
	}
	cols, rows = min(cols, n), min(rows, n)

	top := floats.Max(field)
	span := top - floor
	if span <= 0 || math.IsNaN(span) {
		span = 1
	}

	var b strings.Builder
	for r := rows - 1; r >= 0; r-- {
		j := r * (n - 1) / max(rows-1, 1)
		for c := 0; c < cols; c++ {
			i := c * (n - 1) / max(cols-1, 1)
			norm := (field[j*n+i] - floor) / span
			b.WriteString(HeatStyle(norm).Render("██"))
		}
		if r > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
