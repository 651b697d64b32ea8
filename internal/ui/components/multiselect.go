package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"ailit/internal/ui/theme"
)

// MultiSelect is a checkbox-list selector. Unlike a radio group, any number
// of options can be checked at once; Chosen maps option index to checked
// state and is owned by the caller so it can mirror external state.
type MultiSelect struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   map[int]bool
}

// NewMultiSelect creates a multi-select over the given options.
func NewMultiSelect(question string, options []string) MultiSelect {
	return MultiSelect{
		Question: question,
		Options:  options,
		Chosen:   make(map[int]bool),
	}
}

// Init returns nil.
func (m MultiSelect) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Toggling is left to the caller, which
// watches for space and number keys and mutates Chosen.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}

	return m, nil
}

// View renders the checkbox list.
func (m MultiSelect) View() string {
	s := theme.Body.Bold(true).Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		box := "[ ]"
		if m.Chosen[i] {
			box = "[x]"
		}
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %d) %s", prefix, box, i+1, opt)

		switch {
		case i == m.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case m.Chosen[i]:
			s += theme.Checked.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// ChosenCount returns the number of checked options.
func (m MultiSelect) ChosenCount() int {
	n := 0
	for _, on := range m.Chosen {
		if on {
			n++
		}
	}
	return n
}
