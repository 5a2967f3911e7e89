package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI.
const (
	ColorAccent    = "86"  // cyan/green - titles, highlights
	ColorHighlight = "205" // magenta - selected items, borders
	ColorDanger    = "196" // red - errors, orphaned widgets
	ColorMuted     = "241" // gray - dimmed text, hints
	ColorText      = "252" // light gray - normal text
	ColorWarning   = "208" // orange - persistence warnings
	ColorDropOK    = "40"  // green - legal drop zone
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title       lipgloss.Style // bold accent - main titles
	Panel       lipgloss.Style // panel frame
	PanelFocus  lipgloss.Style // focused panel frame
	WidgetBox   lipgloss.Style // widget cell
	WidgetSel   lipgloss.Style // selected widget cell
	WidgetDrag  lipgloss.Style // widget being dragged
	Orphan      lipgloss.Style // orphaned-widget placeholder
	DropLegal   lipgloss.Style // legal drop target highlight
	DropIllegal lipgloss.Style // illegal drop target highlight
	Selected    lipgloss.Style // highlighted list items
	Muted       lipgloss.Style // dimmed text
	Normal      lipgloss.Style // normal text
	Hint        lipgloss.Style // help/hint text
	Warning     lipgloss.Style // persistence warnings
	Modal       lipgloss.Style // modal box
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	PanelFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	WidgetBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	WidgetSel: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	WidgetDrag: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)),
	Orphan: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Foreground(lipgloss.Color(ColorDanger)),
	DropLegal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDropOK)).
		Bold(true),
	DropIllegal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true),
	Modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
}

// NewCompactListDelegate returns a list delegate with zero spacing and shared
// styles, used by the palette and the layout switcher.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Selected
	d.Styles.NormalTitle = Styles.Muted
	d.Styles.NormalDesc = Styles.Muted
	return d
}
