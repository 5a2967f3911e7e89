package ui

// AppMode is the top-level application mode: the deck plus modal overlays.
type AppMode int

const (
	ModeDeck     AppMode = iota // the dashboard grid
	ModePalette                 // add-widget catalog palette
	ModeSwitcher                // layout switcher
	ModeSettings                // widget settings form (text input focused)
	ModeRename                  // widget rename prompt (text input focused)
)

func (m AppMode) String() string {
	switch m {
	case ModeDeck:
		return "Deck"
	case ModePalette:
		return "Palette"
	case ModeSwitcher:
		return "Switcher"
	case ModeSettings:
		return "Settings"
	case ModeRename:
		return "Rename"
	default:
		return "Unknown"
	}
}

// textInputFocused reports whether the mode routes keys into a text input.
// The keybind dispatcher is suppressed in these modes so typing "u" in a
// settings form does not trigger an undo.
func (m AppMode) textInputFocused() bool {
	return m == ModeSettings || m == ModeRename
}
