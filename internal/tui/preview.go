package tui

import (
	"fmt"

	"nathanbeddoewebdev/slatf/internal/tui/components"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewModel is a read-only pager over a generated artifact.
type previewModel struct {
	title  string
	target string
	status string

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// previewKeyMap keeps scrolling off the keys used to quit.
func previewKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithDisabled(),
		),
		Right: key.NewBinding(
			key.WithDisabled(),
		),
	}
}

func newPreviewModel(title, target, text, status string) previewModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = previewKeyMap()
	vp.SetContent(text)

	return previewModel{
		title:    title,
		target:   target,
		status:   status,
		viewport: vp,
	}
}

// RunPreview shows text full-window until the user quits. title is shown
// in the header breadcrumb and status (if any) above the footer.
func RunPreview(title, target, text, status string) error {
	p := tea.NewProgram(newPreviewModel(title, target, text, status), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run preview: %w", err)
	}
	return nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m previewModel) header() string {
	return components.Header(m.width, m.title, m.target)
}

func (m previewModel) footer() string {
	return components.Footer(m.width, []components.KeyBinding{
		{Key: "j/k", Desc: "scroll"},
		{Key: "g/G", Desc: "top/bottom"},
		{Key: "q", Desc: "quit"},
	})
}

func (m previewModel) statusBar() string {
	return components.StatusBar(m.width, m.status, false)
}

func (m previewModel) contentHeight() int {
	used := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
	if s := m.statusBar(); s != "" {
		used += lipgloss.Height(s)
	}
	return max(m.height-used, 1)
}

func (m previewModel) View() string {
	if !m.ready || m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{m.header(), m.viewport.View()}
	if s := m.statusBar(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
