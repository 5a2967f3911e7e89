package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"griddeck/internal/dashboard"
)

// settingsField is one editable key in the settings form.
type settingsField struct {
	key      string
	input    textinput.Model
	wasInt   bool
	wasFloat bool
	initial  any
}

// SettingsModal edits a widget's settings bag. While a field is being typed
// the store receives transient updates so the widget previews live without
// flooding undo history; the final save commits one undoable change. Esc
// reverts the preview to the values the form opened with.
type SettingsModal struct {
	store    *dashboard.Store
	widgetID string
	title    string
	fields   []settingsField
	idx      int
	editing  bool
}

var _ View = (*SettingsModal)(nil)

// NewSettingsModal builds the form from the widget's current settings.
func NewSettingsModal(store *dashboard.Store, widgetID string) *SettingsModal {
	m := &SettingsModal{store: store, widgetID: widgetID}
	wd, ok := store.Widget(widgetID)
	if !ok {
		return m
	}
	m.title = wd.DisplayName()

	keys := make([]string, 0, len(wd.Settings))
	for k := range wd.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 28
		f := settingsField{key: k, initial: wd.Settings[k]}
		switch v := wd.Settings[k].(type) {
		case string:
			ti.SetValue(v)
		case int:
			ti.SetValue(strconv.Itoa(v))
			f.wasInt = true
		case float64:
			ti.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
			f.wasFloat = true
		default:
			continue // nested values are not editable in the form
		}
		f.input = ti
		m.fields = append(m.fields, f)
	}
	return m
}

// value parses the field's text back into its original type.
func (f *settingsField) value() any {
	s := f.input.Value()
	switch {
	case f.wasInt:
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
		return f.initial
	case f.wasFloat:
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
		return f.initial
	}
	return s
}

// bag collects the form's current values.
func (m *SettingsModal) bag() map[string]any {
	out := make(map[string]any, len(m.fields))
	for i := range m.fields {
		out[m.fields[i].key] = m.fields[i].value()
	}
	return out
}

// initialBag collects the values the form opened with.
func (m *SettingsModal) initialBag() map[string]any {
	out := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		out[f.key] = f.initial
	}
	return out
}

// Init implements View.
func (m *SettingsModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *SettingsModal) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "esc", "enter":
			m.editing = false
			m.fields[m.idx].input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.fields[m.idx].input, cmd = m.fields[m.idx].input.Update(key)
		// Live preview: transient so history records nothing.
		_ = m.store.UpdateSettings(m.widgetID, map[string]any{
			m.fields[m.idx].key: m.fields[m.idx].value(),
		}, true)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		// Revert the preview, then close without a history entry.
		_ = m.store.UpdateSettings(m.widgetID, m.initialBag(), true)
		return m, func() tea.Msg { return DismissModalMsg{} }
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
		return m, nil
	case "down", "j":
		if m.idx < len(m.fields)-1 {
			m.idx++
		}
		return m, nil
	case "enter":
		if len(m.fields) == 0 {
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
		m.editing = true
		return m, m.fields[m.idx].input.Focus()
	case "s", "ctrl+s":
		// Commit the whole bag as one undoable change.
		_ = m.store.UpdateSettings(m.widgetID, m.bag(), false)
		id := m.widgetID
		return m, func() tea.Msg { return SettingsSavedMsg{WidgetID: id} }
	}
	return m, nil
}

// View implements View.
func (m *SettingsModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Settings — " + m.title))
	b.WriteString("\n\n")
	if len(m.fields) == 0 {
		b.WriteString(Styles.Muted.Render("no editable settings"))
	}
	for i := range m.fields {
		f := &m.fields[i]
		label := f.key
		if i == m.idx {
			label = Styles.Selected.Render("› " + label)
		} else {
			label = Styles.Muted.Render("  " + label)
		}
		b.WriteString(label + "  " + f.input.View() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Styles.Hint.Render("Enter: edit field  s: save  Esc: cancel"))
	return Styles.Modal.Render(b.String())
}

// RenameModal is a one-line prompt for setting a widget's custom name.
type RenameModal struct {
	widgetID string
	input    textinput.Model
}

var _ View = (*RenameModal)(nil)

// NewRenameModal creates a rename prompt seeded with the current name.
func NewRenameModal(widgetID, current string) *RenameModal {
	ti := textinput.New()
	ti.Placeholder = "widget name"
	ti.CharLimit = 64
	ti.Width = 32
	ti.SetValue(current)
	ti.Focus()
	return &RenameModal{widgetID: widgetID, input: ti}
}

// Init implements View.
func (m *RenameModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *RenameModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			id, name := m.widgetID, strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return RenameDoneMsg{WidgetID: id, Name: name} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *RenameModal) View() string {
	body := Styles.Title.Render("Rename widget") + "\n\n" + m.input.View() + "\n\n" +
		Styles.Hint.Render("Enter: save  Esc: cancel")
	return Styles.Modal.Render(body)
}
