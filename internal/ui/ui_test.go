package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sized(t *testing.T, items []string) model {
	t.Helper()
	m := newModel("Pick", items)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(model)
}

func TestEnterChoosesSelectedItem(t *testing.T) {
	m := sized(t, []string{"janeroe", "123456", "driver99"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(model)
	if got.chosen != 0 {
		t.Errorf("chosen = %d, want 0", got.chosen)
	}
	if got.cancelled {
		t.Error("enter should not cancel")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestQuitKeysCancel(t *testing.T) {
	keys := map[string]tea.KeyMsg{
		"q":      {Type: tea.KeyRunes, Runes: []rune("q")},
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	}
	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			m := sized(t, []string{"janeroe"})
			next, cmd := m.Update(key)
			got := next.(model)
			if !got.cancelled {
				t.Errorf("%s should cancel", name)
			}
			if got.chosen != -1 {
				t.Errorf("chosen = %d, want -1", got.chosen)
			}
			if cmd == nil {
				t.Errorf("%s should quit the program", name)
			}
		})
	}
}

func TestSelectRejectsEmpty(t *testing.T) {
	if _, err := Select("Pick", nil); err == nil {
		t.Error("expected error for no items")
	}
}

func TestItemFilterValue(t *testing.T) {
	it := item{title: "janeroe", index: 3}
	if it.FilterValue() != "janeroe" || it.Title() != "janeroe" || it.Description() != "" {
		t.Errorf("unexpected item rendering %+v", it)
	}
}
