package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"griddeck/internal/dashboard"
	"griddeck/internal/drag"
)

// Internal command messages emitted by keybinds and handled by the app.
type (
	undoMsg           struct{}
	redoMsg           struct{}
	removeSelectedMsg struct{}
	collapseWidgetMsg struct{}
	collapsePanelMsg  struct{}
	openPaletteMsg    struct{}
	openSwitcherMsg   struct{}
	openSettingsMsg   struct{}
	openRenameMsg     struct{}
	retrySaveMsg      struct{}
)

// AppModel is the root model: the deck plus modal overlays, the keybind
// dispatcher, and keyboard-driven drag gestures.
type AppModel struct {
	Mode       AppMode
	Store      *dashboard.Store
	Coord      *drag.Coordinator
	Deck       *DeckView
	Modal      View
	KeyHandler *KeyHandler
	Focus      *FocusRing

	// RetryPersist re-attempts a failed save; wired by the CLI to the
	// background saver.
	RetryPersist func()

	// Keyboard drag cursor: the grid cell currently hovered.
	hoverPanel string
	hoverX     int
	hoverY     int

	flash  string
	width  int
	height int
}

// NewAppModel creates the root application model for a store.
func NewAppModel(store *dashboard.Store, coord *drag.Coordinator) *AppModel {
	focus := NewFocusRing(panelIDs(store.Panels()))

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("u", cmdMsg(undoMsg{}), "Undo")
	reg.BindWithDesc("ctrl+r", cmdMsg(redoMsg{}), "Redo")
	reg.BindWithDesc("x", cmdMsg(removeSelectedMsg{}), "Remove widget")
	reg.BindWithDesc("c", cmdMsg(collapseWidgetMsg{}), "Collapse widget")
	reg.BindWithDesc("C", cmdMsg(collapsePanelMsg{}), "Collapse panel")
	reg.BindWithDesc("a", cmdMsg(openPaletteMsg{}), "Add widget")
	reg.BindWithDesc("L", cmdMsg(openSwitcherMsg{}), "Switch layout")
	reg.BindWithDesc("s", cmdMsg(openSettingsMsg{}), "Settings")
	reg.BindWithDesc("r", cmdMsg(openRenameMsg{}), "Rename")
	reg.BindWithDesc("R", cmdMsg(retrySaveMsg{}), "Retry save")
	reg.BindWithDesc("SPC w a", cmdMsg(openPaletteMsg{}), "Add widget")
	reg.BindWithDesc("SPC w s", cmdMsg(openSettingsMsg{}), "Settings")
	reg.BindWithDesc("SPC w r", cmdMsg(openRenameMsg{}), "Rename")
	reg.BindWithDesc("SPC w x", cmdMsg(removeSelectedMsg{}), "Remove widget")
	reg.BindWithDesc("SPC l l", cmdMsg(openSwitcherMsg{}), "Switch layout")
	reg.BindWithDesc("SPC u", cmdMsg(undoMsg{}), "Undo")
	reg.BindWithDesc("SPC r", cmdMsg(redoMsg{}), "Redo")

	m := &AppModel{
		Mode:       ModeDeck,
		Store:      store,
		Coord:      coord,
		KeyHandler: NewKeyHandler(reg),
		Focus:      focus,
	}
	m.Deck = NewDeckView(store, coord, focus)
	return m
}

func cmdMsg(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func panelIDs(panels []dashboard.Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.ID
	}
	return out
}

var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Deck.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		v, _ := a.Deck.Update(msg)
		a.Deck = v.(*DeckView)
		return a, nil

	case DismissModalMsg:
		a.closeModal()
		return a, nil

	case PickCatalogTypeMsg:
		a.closeModal()
		if err := a.Coord.StartCatalogItem(msg.Type); err != nil {
			a.flash = err.Error()
			return a, nil
		}
		a.beginHover(a.Focus.Current())
		return a, nil

	case SelectLayoutMsg:
		a.closeModal()
		if _, err := a.Store.SwitchActiveLayout(msg.ID); err != nil {
			a.flash = err.Error()
			return a, nil
		}
		a.Focus.SetPanels(panelIDs(a.Store.Panels()))
		return a, nil

	case CreateLayoutMsg:
		a.closeModal()
		layout, err := a.Store.CreateLayout(msg.Name, a.Store.ActiveLayout().OwnerID)
		if err != nil {
			a.flash = err.Error()
			return a, nil
		}
		a.Focus.SetPanels(panelIDs(layout.Panels))
		a.flash = "created layout " + layout.Name
		return a, nil

	case SettingsSavedMsg:
		a.closeModal()
		a.flash = "settings saved"
		return a, nil

	case RenameDoneMsg:
		a.closeModal()
		if err := a.Store.RenameWidget(msg.WidgetID, msg.Name); err != nil {
			a.flash = err.Error()
		}
		return a, nil

	case FlashMsg:
		a.flash = msg.Text
		return a, nil

	case undoMsg:
		if _, ok := a.Store.Undo(); !ok {
			a.flash = "nothing to undo"
		}
		return a, nil
	case redoMsg:
		if _, ok := a.Store.Redo(); !ok {
			a.flash = "nothing to redo"
		}
		return a, nil
	case removeSelectedMsg:
		if id := a.Store.SelectedWidgetID(); id != "" {
			if err := a.Store.RemoveWidget(id); err != nil {
				a.flash = err.Error()
			}
		}
		return a, nil
	case collapseWidgetMsg:
		if id := a.Store.SelectedWidgetID(); id != "" {
			if err := a.Store.ToggleCollapse(id); err != nil {
				a.flash = err.Error()
			}
		}
		return a, nil
	case collapsePanelMsg:
		if p := a.Focus.Current(); p != "" {
			if err := a.Store.TogglePanelCollapse(p); err != nil {
				a.flash = err.Error()
			}
		}
		return a, nil
	case openPaletteMsg:
		a.openModal(ModePalette, NewPaletteModal())
		return a, nil
	case openSwitcherMsg:
		a.openModal(ModeSwitcher, NewSwitcherModal(a.Store.Layouts()))
		return a, nil
	case openSettingsMsg:
		if id := a.Store.SelectedWidgetID(); id != "" {
			a.openModal(ModeSettings, NewSettingsModal(a.Store, id))
		}
		return a, nil
	case openRenameMsg:
		if id := a.Store.SelectedWidgetID(); id != "" {
			wd, _ := a.Store.Widget(id)
			a.openModal(ModeRename, NewRenameModal(id, wd.CustomName))
		}
		return a, nil
	case retrySaveMsg:
		if a.RetryPersist != nil {
			a.RetryPersist()
			a.flash = "retrying save"
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.Modal != nil {
		var cmd tea.Cmd
		a.Modal, cmd = a.Modal.Update(msg)
		return a, cmd
	}
	v, cmd := a.Deck.Update(msg)
	a.Deck = v.(*DeckView)
	return a, cmd
}

// handleKey routes keys: modals first, then drag gestures, then keybinds,
// then deck navigation.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.Modal != nil {
		var cmd tea.Cmd
		a.Modal, cmd = a.Modal.Update(msg)
		return a, cmd
	}

	if a.Coord.Phase() != drag.Idle {
		return a, a.handleDragKey(msg)
	}

	a.flash = ""
	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return a, cmd
	}
	return a, a.handleDeckKey(msg)
}

// handleDragKey drives a keyboard drag gesture: arrows move the hover cell,
// tab retargets the next panel, enter drops, esc aborts.
func (a *appModelAdapter) handleDragKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.Coord.Cancel()
		a.flash = "drag cancelled"
	case "enter":
		res, err := a.Coord.Drop()
		if err != nil {
			a.flash = "drop failed: " + err.Error()
			return nil
		}
		a.Store.SelectWidget(res.WidgetID)
		if res.Created {
			a.flash = "widget added"
		} else {
			a.flash = "widget moved"
		}
	case "tab":
		a.beginHover(a.Focus.Next())
	case "left":
		a.moveHover(-1, 0)
	case "right":
		a.moveHover(1, 0)
	case "up":
		a.moveHover(0, -1)
	case "down":
		a.moveHover(0, 1)
	}
	return nil
}

// beginHover aims the gesture at a panel, seeding the cursor from the
// panel-level nearest free slot when one exists.
func (a *appModelAdapter) beginHover(panelID string) {
	if panelID == "" {
		return
	}
	a.hoverPanel = panelID
	a.hoverX, a.hoverY = 0, 0
	if target, err := a.Coord.HoverPanel(panelID); err == nil && target.Legal {
		a.hoverX, a.hoverY = target.Rect.X, target.Rect.Y
		_, _ = a.Coord.HoverCell(panelID, a.hoverX, a.hoverY)
		return
	}
	_, _ = a.Coord.HoverCell(panelID, 0, 0)
}

func (a *appModelAdapter) moveHover(dx, dy int) {
	x, y := a.hoverX+dx, a.hoverY+dy
	if x < 0 || y < 0 || x >= a.Store.GridCols() || y >= a.Store.MaxRows() {
		return
	}
	a.hoverX, a.hoverY = x, y
	_, _ = a.Coord.HoverCell(a.hoverPanel, x, y)
}

// handleDeckKey covers navigation keys that are not leader bindings:
// selection cycling, panel focus, nudge-move, resize, and drag pick-up.
func (a *appModelAdapter) handleDeckKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.Store.SelectWidget("")
	case "tab":
		a.Focus.Next()
		a.Store.SelectWidget("")
	case "shift+tab":
		a.Focus.Prev()
		a.Store.SelectWidget("")
	case "j", "n":
		a.cycleSelection(1)
	case "k", "p":
		a.cycleSelection(-1)
	case "enter":
		if id := a.Store.SelectedWidgetID(); id != "" {
			if err := a.Coord.StartWidget(id); err != nil {
				a.flash = err.Error()
				return nil
			}
			wd, _ := a.Store.Widget(id)
			a.hoverPanel = wd.PanelID
			a.hoverX, a.hoverY = wd.Rect.X, wd.Rect.Y
			_, _ = a.Coord.HoverCell(wd.PanelID, wd.Rect.X, wd.Rect.Y)
		}
	case "left":
		a.nudgeSelected(-1, 0)
	case "right":
		a.nudgeSelected(1, 0)
	case "up":
		a.nudgeSelected(0, -1)
	case "down":
		a.nudgeSelected(0, 1)
	case "shift+right":
		a.resizeSelected(1, 0)
	case "shift+left":
		a.resizeSelected(-1, 0)
	case "shift+down":
		a.resizeSelected(0, 1)
	case "shift+up":
		a.resizeSelected(0, -1)
	}
	return nil
}

func (a *appModelAdapter) cycleSelection(delta int) {
	widgets := a.Store.WidgetsForPanel(a.Focus.Current())
	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = w.ID
	}
	a.Store.SelectWidget(CycleSelection(ids, a.Store.SelectedWidgetID(), delta))
}

func (a *appModelAdapter) nudgeSelected(dx, dy int) {
	id := a.Store.SelectedWidgetID()
	if id == "" {
		return
	}
	wd, ok := a.Store.Widget(id)
	if !ok {
		return
	}
	target := wd.Rect
	target.X += dx
	target.Y += dy
	if target.X < 0 || target.Y < 0 {
		return
	}
	if _, err := a.Store.MoveWidget(id, target, ""); err != nil {
		a.flash = err.Error()
	}
}

func (a *appModelAdapter) resizeSelected(dw, dh int) {
	id := a.Store.SelectedWidgetID()
	if id == "" {
		return
	}
	wd, ok := a.Store.Widget(id)
	if !ok {
		return
	}
	if _, err := a.Store.ResizeWidget(id, wd.Rect.W+dw, wd.Rect.H+dh); err != nil {
		a.flash = err.Error()
	}
}

func (a *appModelAdapter) openModal(mode AppMode, v View) {
	a.Mode = mode
	a.Modal = v
}

func (a *appModelAdapter) closeModal() {
	a.Mode = ModeDeck
	a.Modal = nil
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Deck.View()
	status := a.Deck.StatusLine()
	if a.flash != "" {
		status += Styles.Muted.Render("  │  ") + Styles.Hint.Render(a.flash)
	}
	out := base + "\n" + status
	if a.KeyHandler.LeaderWaiting && !a.Mode.textInputFocused() {
		out += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	if a.Modal != nil {
		// Modals replace the deck body; a compositing overlay is not worth
		// the ANSI bookkeeping at this size.
		out = a.Modal.View() + "\n" + status
	}
	return out
}
