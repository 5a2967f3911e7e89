package ui

// DismissModalMsg closes the topmost modal and returns to the deck.
type DismissModalMsg struct{}

// PickCatalogTypeMsg is emitted by the palette when a widget type is chosen.
// The app starts a catalog drag so the new widget can be aimed at a panel.
type PickCatalogTypeMsg struct {
	Type string
}

// SelectLayoutMsg is emitted by the layout switcher.
type SelectLayoutMsg struct {
	ID string
}

// CreateLayoutMsg is emitted by the switcher's new-layout prompt.
type CreateLayoutMsg struct {
	Name string
}

// SettingsSavedMsg is emitted when the settings form commits.
type SettingsSavedMsg struct {
	WidgetID string
}

// RenameDoneMsg is emitted when the rename prompt commits.
type RenameDoneMsg struct {
	WidgetID string
	Name     string
}

// FlashMsg shows a transient status-bar notice.
type FlashMsg struct {
	Text string
}
