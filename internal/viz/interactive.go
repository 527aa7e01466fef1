package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatsim/internal/dynamo"
)

// AllMaterials is the menu entry that opens the 2x2 comparison view.
const AllMaterials = "all"

// Builder constructs a solver for a geometry and material name.
type Builder func(geometry, material string) (*dynamo.Solver, error)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const (
	stateMenu = iota
	stateSim
)

// menu picks a material and geometry, then hands over to the live Model.
type menu struct {
	state      int
	cursor     int
	geometries []string
	geometry   int
	materials  []string
	build      Builder
	live       Model
	err        error
}

// NewInteractiveApp returns a menu over materials (plus AllMaterials) that
// starts a viewer built by build.
func NewInteractiveApp(materials, geometries []string, build Builder) tea.Model {
	return &menu{
		state:      stateMenu,
		geometries: geometries,
		materials:  append(append([]string{}, materials...), AllMaterials),
		build:      build,
	}
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.materials)-1 {
			m.cursor++
		}
	case "tab", "g":
		m.geometry = (m.geometry + 1) % len(m.geometries)
	case "enter", " ":
		return m, m.start()
	}
	return m, nil
}

func (m *menu) start() tea.Cmd {
	names := []string{m.materials[m.cursor]}
	if names[0] == AllMaterials {
		names = m.materials[:len(m.materials)-1]
	}

	geometry := m.geometries[m.geometry]
	solvers := make([]*dynamo.Solver, 0, len(names))
	for _, name := range names {
		s, err := m.build(geometry, name)
		if err != nil {
			m.err = fmt.Errorf("%s %s: %w", geometry, name, err)
			return nil
		}
		solvers = append(solvers, s)
	}

	m.err = nil
	m.live = NewModel(solvers...)
	m.state = stateSim
	return m.live.Init()
}

func (m *menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("HEATSIM") + "\n    " + menuSubtle.Render("implicit heat equation") + "\n    " + menuSubtle.Render("─────────────────────────") + "\n\n")
	b.WriteString("    " + menuSubtle.Render("geometry: ") + menuSelected.Render(m.geometries[m.geometry]) + "\n\n")
	for i, name := range m.materials {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuCursor.Render("▸"), menuSelected.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", menuIdle.Render(name)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSubtle.Render(" navigate  ") + menuKey.Render("g") + menuSubtle.Render(" geometry  ") + menuKey.Render("enter") + menuSubtle.Render(" start  ") + menuKey.Render("q") + menuSubtle.Render(" quit") + "\n")
	return b.String()
}

// Run starts a full-screen program for the model.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
