// Package ui provides the interactive picker used to choose among search
// hits. Items are rendered as plain text; nothing remote is evaluated.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits without choosing.
var ErrCancelled = errors.New("selection cancelled")

type item struct {
	title string
	index int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.title }

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)

type model struct {
	list      list.Model
	chosen    int
	cancelled bool
}

func newModel(prompt string, items []string) model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = item{title: it, index: i}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(listItems, delegate, 0, 0)
	l.Title = prompt
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return model{list: l, chosen: -1}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		// Keys belong to the filter input while it is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.index
				return m, tea.Quit
			}
		case "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.list.View() }

// Select shows items in a full-screen list and returns the chosen index.
// It needs an interactive terminal.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	final, err := tea.NewProgram(newModel(prompt, items), tea.WithAltScreen(), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.cancelled || m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}
