package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"griddeck/internal/catalog"
)

// PaletteModal lists the widget catalog. Choosing an entry starts a catalog
// drag; the widget materializes only when the drag is dropped on a panel.
type PaletteModal struct {
	list list.Model
}

type paletteItem struct {
	def catalog.Definition
}

func (p paletteItem) FilterValue() string { return p.def.Type }
func (p paletteItem) Title() string {
	return fmt.Sprintf("%s  %dx%d", p.def.Title, p.def.DefaultW, p.def.DefaultH)
}
func (p paletteItem) Description() string { return "" }

var _ View = (*PaletteModal)(nil)

// NewPaletteModal creates the add-widget palette from the catalog.
func NewPaletteModal() *PaletteModal {
	defs := catalog.Definitions()
	items := make([]list.Item, len(defs))
	for i, d := range defs {
		items[i] = paletteItem{def: d}
	}
	delegate := NewCompactListDelegate()
	l := list.New(items, delegate, 40, 12)
	l.Title = "Add widget"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &PaletteModal{list: l}
}

// Init implements View.
func (m *PaletteModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *PaletteModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if sel := m.list.SelectedItem(); sel != nil {
				tag := sel.(paletteItem).def.Type
				return m, func() tea.Msg { return PickCatalogTypeMsg{Type: tag} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *PaletteModal) View() string {
	help := "Enter: pick up  Esc: cancel"
	return Styles.Modal.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
