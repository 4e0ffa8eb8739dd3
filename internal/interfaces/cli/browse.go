package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pipekit.dev/cli/internal/core/plugin"
	"pipekit.dev/cli/internal/core/registry"
)

// NewBrowseCommand builds the interactive plugin browser: a scrollable list
// of discovered plugins with a detail pane showing capabilities and options.
func NewBrowseCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse discovered plugins interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := container.Registry()
			if err != nil {
				return err
			}

			model := newBrowseModel(reg)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}

// browseModel holds the state for the Bubble Tea plugin browser.
type browseModel struct {
	registry     *registry.Registry
	all          []plugin.Descriptor
	visible      []plugin.Descriptor
	selected     int
	filter       string
	filtering    bool
	windowWidth  int
	windowHeight int
}

func newBrowseModel(reg *registry.Registry) browseModel {
	descs := reg.Descriptors()
	return browseModel{
		registry: reg,
		all:      descs,
		visible:  descs,
	}
}

// Init implements the Bubble Tea init method.
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "/":
			m.filtering = true
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
	}

	return m, nil
}

func (m *browseModel) applyFilter() {
	if m.filter == "" {
		m.visible = m.all
	} else {
		var visible []plugin.Descriptor
		for _, desc := range m.all {
			if strings.Contains(desc.Name, m.filter) || containsAlias(desc.Aliases, m.filter) {
				visible = append(visible, desc)
			}
		}
		m.visible = visible
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func containsAlias(aliases []string, needle string) bool {
	for _, a := range aliases {
		if strings.Contains(a, needle) {
			return true
		}
	}
	return false
}

// View implements the Bubble Tea view method.
func (m browseModel) View() string {
	header := m.renderHeader()
	list := m.renderList()
	detail := m.renderDetail()
	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, list, detail, footer)
}

func (m browseModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("pipekit plugin browser")

	info := fmt.Sprintf("  %d/%d plugins", len(m.visible), len(m.all))
	if m.filtering || m.filter != "" {
		info += fmt.Sprintf(" | filter: %s", m.filter)
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, title, info)
}

func (m browseModel) renderList() string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("\n  No plugins match the filter.\n")
	}

	maxRows := m.windowHeight - 12
	if maxRows < 3 {
		maxRows = len(m.visible)
	}
	start := 0
	if m.selected >= maxRows {
		start = m.selected - maxRows + 1
	}

	var rows []string
	for i := start; i < len(m.visible) && i < start+maxRows; i++ {
		desc := m.visible[i]
		row := fmt.Sprintf("%-20s %s", desc.Name, truncate(desc.Description, 50))
		style := lipgloss.NewStyle()
		if i == m.selected {
			style = style.Background(lipgloss.Color("240")).Bold(true)
		}
		rows = append(rows, style.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m browseModel) renderDetail() string {
	if m.selected >= len(m.visible) {
		return ""
	}
	desc := m.visible[m.selected]

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(strings.Repeat("-", max(m.windowWidth, 20)))

	detail := fmt.Sprintf("%s  produces: [%s]  accepts: [%s]",
		desc.TypeID, desc.Produced, desc.Accepted)
	if len(desc.Aliases) > 0 {
		detail += "  aliases: " + strings.Join(desc.Aliases, ", ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, divider, detail)
}

func (m browseModel) renderFooter() string {
	controls := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Controls: [↑↓] Navigate | [/] Filter | [q] Quit")
	return controls
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
