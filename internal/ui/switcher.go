package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"griddeck/internal/dashboard"
)

// SwitcherModal picks the active layout. "n" opens an inline prompt for
// creating a new layout.
type SwitcherModal struct {
	list   list.Model
	input  textinput.Model
	naming bool
}

type switcherItem struct {
	layout dashboard.Layout
}

func (s switcherItem) FilterValue() string { return s.layout.Name }
func (s switcherItem) Title() string {
	name := s.layout.Name
	if s.layout.Active {
		name += "  (active)"
	}
	return fmt.Sprintf("%s  %d widgets", name, len(s.layout.Widgets))
}
func (s switcherItem) Description() string { return "" }

var _ View = (*SwitcherModal)(nil)

// NewSwitcherModal creates the layout switcher over the given layouts.
func NewSwitcherModal(layouts []dashboard.Layout) *SwitcherModal {
	items := make([]list.Item, len(layouts))
	for i, l := range layouts {
		items[i] = switcherItem{layout: l}
	}
	delegate := NewCompactListDelegate()
	l := list.New(items, delegate, 44, 12)
	l.Title = "Layouts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title

	ti := textinput.New()
	ti.Placeholder = "layout name"
	ti.CharLimit = 64
	ti.Width = 32

	return &SwitcherModal{list: l, input: ti}
}

// Naming reports whether the inline new-layout prompt has focus. The app
// suppresses keybinds while the prompt is typing.
func (m *SwitcherModal) Naming() bool { return m.naming }

// Init implements View.
func (m *SwitcherModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *SwitcherModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if m.naming {
		return m.updateNaming(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "n":
			m.naming = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case "enter":
			if sel := m.list.SelectedItem(); sel != nil {
				id := sel.(switcherItem).layout.ID
				return m, func() tea.Msg { return SelectLayoutMsg{ID: id} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *SwitcherModal) updateNaming(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.naming = false
			m.input.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			m.naming = false
			m.input.Blur()
			if name == "" {
				return m, nil
			}
			return m, func() tea.Msg { return CreateLayoutMsg{Name: name} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SwitcherModal) View() string {
	if m.naming {
		body := Styles.Title.Render("New layout") + "\n\n" + m.input.View() + "\n\n" +
			Styles.Hint.Render("Enter: create  Esc: back")
		return Styles.Modal.Render(body)
	}
	help := "Enter: switch  n: new  Esc: cancel"
	return Styles.Modal.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
