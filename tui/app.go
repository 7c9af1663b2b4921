// ABOUTME: Top-level bubbletea model for browsing one analysis report section by section.
// ABOUTME: Implements tea.Model (Init, Update, View) around a bubbles viewport with tab navigation.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/netgraph/report"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the report browser.
type AppModel struct {
	report   *report.Report
	dotText  string
	section  Section
	viewport viewport.Model
	width    int
	height   int
}

// NewAppModel creates a browser over r, opened on the BFS section.
func NewAppModel(r *report.Report, dotText string) AppModel {
	m := AppModel{
		report:   r,
		dotText:  dotText,
		section:  SectionBFS,
		viewport: viewport.New(80, 20),
	}
	m.syncViewport()
	return m
}

// Section returns the section currently shown.
func (m AppModel) Section() Section { return m.section }

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 30 || m.height < 8 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 30x8.", m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	b.WriteString(BorderStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m AppModel) titleView() string {
	name := m.report.Name
	if name == "" {
		name = "graph"
	}
	return TitleStyle.Render(fmt.Sprintf("netgraph: %s (%d nodes, %d edges)", name, m.report.Nodes, m.report.Edges))
}

func (m AppModel) tabsView() string {
	tabs := make([]string, 0, sectionCount)
	for s := Section(0); s < sectionCount; s++ {
		if s == m.section {
			tabs = append(tabs, ActiveTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, TabStyle.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) statusView() string {
	text := fmt.Sprintf("session %s  %3.f%%  tab/shift+tab: section  ↑/↓: scroll  q: quit",
		m.report.SessionID, m.viewport.ScrollPercent()*100)
	return StatusBarStyle.Width(m.width).Render(text)
}

// handleWindowSize reserves title, tabs, border and status rows around the viewport.
func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = max(msg.Width-2, 1)
	m.viewport.Height = max(msg.Height-5, 1)
	m.syncViewport()
	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right", "l":
		m.section = m.section.Next()
		m.syncViewport()
		return m, nil
	case "shift+tab", "left", "h":
		m.section = m.section.Prev()
		m.syncViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// syncViewport loads the current section into the viewport and scrolls to the top.
func (m *AppModel) syncViewport() {
	m.viewport.SetContent(sectionBody(m.section, m.report, m.dotText))
	m.viewport.GotoTop()
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(r *report.Report, dotText string) error {
	p := tea.NewProgram(NewAppModel(r, dotText), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
