package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// OrderingModel - Interactive rejection-ordering selection
// =============================================================================

// orderingChoice pairs an ordering keyword with its description.
type orderingChoice struct {
	Name        string
	Description string
}

var orderingChoices = []orderingChoice{
	{"maxov", "reject the circle with the most overlaps"},
	{"minov", "reject the circle with the fewest overlaps"},
	{"largest", "reject the largest overlapping circle"},
	{"smallest", "reject the smallest overlapping circle"},
	{"random", "reject a random overlapping circle"},
}

// OrderingModel is the bubbletea model for interactive ordering selection.
type OrderingModel struct {
	Cursor   int
	Selected string
}

// NewOrderingModel creates a new ordering picker with the cursor at the
// given default keyword.
func NewOrderingModel(defaultName string) OrderingModel {
	m := OrderingModel{}
	for i, choice := range orderingChoices {
		if choice.Name == defaultName {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m OrderingModel) Init() tea.Cmd {
	return nil
}

func (m OrderingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(orderingChoices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = orderingChoices[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m OrderingModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Rejection Ordering"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, choice := range orderingChoices {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-9s", choice.Name)) +
			listDimStyle.Render(" "+choice.Description) + "\n")
	}

	return b.String()
}

// pickOrdering runs the interactive ordering picker and returns the
// chosen keyword. Quitting without a choice keeps the default.
func pickOrdering(defaultName string) (string, error) {
	p := tea.NewProgram(NewOrderingModel(defaultName))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("ordering picker: %w", err)
	}
	if m, ok := final.(OrderingModel); ok && m.Selected != "" {
		return m.Selected, nil
	}
	return defaultName, nil
}
