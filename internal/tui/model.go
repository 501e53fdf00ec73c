package tui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lunaclock/luna/internal/tui/components/skyview"
	"github.com/lunaclock/luna/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type Model struct {
	ready          bool
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	deps           Deps

	view    skyview.SkyView
	haveSky bool
	now     time.Time
	percent float64
	err     error
}

func New(deps Deps) Model {
	return Model{
		theme: theme.New(),
		deps:  deps,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		computeSkyCmd(m.deps),
		tickCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, computeSkyCmd(m.deps)
		}

	case TickMsg:
		return m, tea.Batch(computeSkyCmd(m.deps), tickCmd())

	case SkyMsg:
		m.err = msg.Err
		m.now = msg.Now
		m.percent = msg.Percent
		if msg.Err == nil {
			m.view = msg.View
			m.haveSky = true
		}
	}

	return m, nil
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	var content string
	switch {
	case m.err != nil:
		content = m.theme.TextDim().Render(fmt.Sprintf("moon unavailable: %v", m.err))
	case !m.haveSky:
		content = m.theme.TextDim().Render("watching the sky...")
	default:
		sky := m.view
		sky.Footer = m.footer()
		content = sky.Render()
	}

	view.SetContent(lipgloss.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	))
	return view
}

func (m *Model) footer() string {
	where := m.deps.Location.Name
	if where == "" {
		where = fmt.Sprintf("%.2f, %.2f", m.deps.Location.Latitude, m.deps.Location.Longitude)
	}
	return fmt.Sprintf("%s  %s  %.0f%% lit  q quit  r refresh",
		m.now.Local().Format("Mon 15:04"), where, m.percent)
}
