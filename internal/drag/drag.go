// Package drag implements the per-gesture drag-and-drop state machine. The
// coordinator is independent of the store's atomicity: while a gesture is in
// flight it only reads geometry for previews, and it talks to the store
// through exactly one mutation at drop time. Cancelling at any point before
// the drop leaves the store byte-identical to before the drag began.
package drag

import (
	"errors"
	"fmt"

	"griddeck/internal/catalog"
	"griddeck/internal/dashboard"
	"griddeck/internal/grid"
)

// Phase is the coordinator's state. Committing and cancelling are
// transitions, not resting states; both end back at Idle.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Hovering
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	default:
		return "idle"
	}
}

var (
	// ErrNotDragging is returned when Drop or Hover is called outside a
	// gesture.
	ErrNotDragging = errors.New("no drag in progress")

	// ErrNotDraggable is returned when a gesture starts on a widget whose
	// draggable flag is off.
	ErrNotDraggable = errors.New("widget is not draggable")
)

// TargetKind distinguishes a specific grid cell from a whole-panel
// "add here" zone.
type TargetKind int

const (
	TargetCell TargetKind = iota
	TargetPanel
)

// Target is the candidate drop zone under the pointer. Legal is read-only
// feedback for the UI's highlight; it is never persisted.
type Target struct {
	Kind    TargetKind
	PanelID string
	Rect    grid.Rect
	Legal   bool
}

// Payload identifies what is being dragged: an existing widget or a
// pending-creation catalog item.
type Payload struct {
	WidgetID    string
	CatalogType string
}

// Existing reports whether the payload is an existing widget.
func (p Payload) Existing() bool { return p.WidgetID != "" }

// Result reports the outcome of a committed drop.
type Result struct {
	WidgetID string
	PanelID  string
	Rect     grid.Rect
	Created  bool
}

// Store is the slice of the dashboard store the coordinator needs: read-only
// geometry for previews plus the two commit operations.
type Store interface {
	Widget(id string) (dashboard.Widget, bool)
	PanelPlacements(panelID, excludeID string) []grid.Placement
	GridCols() int
	MaxRows() int
	MoveWidget(id string, target grid.Rect, newPanelID string) (grid.Rect, error)
	AddWidget(typeTag, panelID string, desired grid.Rect) (dashboard.Widget, error)
}

// Coordinator runs one drag gesture at a time. Not safe for concurrent use;
// the UI event loop serializes gestures.
type Coordinator struct {
	store   Store
	lookup  func(string) (catalog.Definition, bool)
	phase   Phase
	payload Payload
	origin  string    // panel the gesture started in
	size    grid.Rect // W/H being dragged (position ignored)
	target  Target
}

// New creates a coordinator bound to a store.
func New(store Store) *Coordinator {
	return &Coordinator{store: store, lookup: catalog.Lookup}
}

// Phase returns the current state.
func (c *Coordinator) Phase() Phase { return c.phase }

// Payload returns the drag payload; zero value when idle.
func (c *Coordinator) Payload() Payload { return c.payload }

// Target returns the last hovered drop zone; the UI renders its highlight
// from Legal.
func (c *Coordinator) Target() (Target, bool) {
	return c.target, c.phase == Hovering
}

// StartWidget begins a gesture on an existing widget.
func (c *Coordinator) StartWidget(id string) error {
	w, ok := c.store.Widget(id)
	if !ok {
		return fmt.Errorf("widget %q: %w", id, dashboard.ErrUnknownWidget)
	}
	if !w.Draggable || w.Static {
		return fmt.Errorf("widget %q: %w", id, ErrNotDraggable)
	}
	c.phase = Dragging
	c.payload = Payload{WidgetID: id}
	c.origin = w.PanelID
	c.size = grid.Rect{W: w.Rect.W, H: w.Rect.H}
	c.target = Target{}
	return nil
}

// StartCatalogItem begins a gesture on a catalog entry; dropping it creates
// the widget.
func (c *Coordinator) StartCatalogItem(typeTag string) error {
	def, ok := c.lookup(typeTag)
	if !ok {
		return fmt.Errorf("type %q: %w", typeTag, dashboard.ErrUnknownWidgetType)
	}
	c.phase = Dragging
	c.payload = Payload{CatalogType: typeTag}
	c.origin = ""
	c.size = grid.Rect{W: def.DefaultW, H: def.DefaultH}
	c.target = Target{}
	return nil
}

// HoverCell updates the candidate drop zone to a specific cell in a panel.
// Legality is computed via the geometry resolver without touching the store.
func (c *Coordinator) HoverCell(panelID string, x, y int) (Target, error) {
	if c.phase == Idle {
		return Target{}, ErrNotDragging
	}
	rect := grid.Rect{X: x, Y: y, W: c.size.W, H: c.size.H}
	exclude := c.payload.WidgetID
	placements := c.store.PanelPlacements(panelID, "")
	legal := rect.Valid() &&
		grid.FitsColumns(rect, c.store.GridCols()) &&
		y+rect.H <= c.store.MaxRows() &&
		grid.IsFree(rect, placements, exclude)
	c.phase = Hovering
	c.target = Target{Kind: TargetCell, PanelID: panelID, Rect: rect, Legal: legal}
	return c.target, nil
}

// HoverPanel updates the candidate drop zone to a whole-panel "add here"
// zone; it is legal when the panel still has a free slot of the drag size.
func (c *Coordinator) HoverPanel(panelID string) (Target, error) {
	if c.phase == Idle {
		return Target{}, ErrNotDragging
	}
	desired := grid.Rect{X: 0, Y: 0, W: c.size.W, H: c.size.H}
	slot, err := grid.FindNearestFreeSlot(desired, c.store.PanelPlacements(panelID, c.payload.WidgetID),
		c.store.GridCols(), c.store.MaxRows())
	c.phase = Hovering
	c.target = Target{Kind: TargetPanel, PanelID: panelID, Rect: slot, Legal: err == nil}
	return c.target, nil
}

// Drop commits the gesture with exactly one store operation against the last
// hovered target: MoveWidget for an existing widget, AddWidget for a catalog
// item. Any store failure cancels the gesture so the widget (or preview)
// snaps back with no partial mutation visible.
func (c *Coordinator) Drop() (Result, error) {
	if c.phase != Hovering {
		c.Cancel()
		return Result{}, ErrNotDragging
	}
	target := c.target
	payload := c.payload
	origin := c.origin
	c.reset()

	if payload.Existing() {
		newPanel := ""
		if target.PanelID != origin {
			newPanel = target.PanelID
		}
		rect, err := c.store.MoveWidget(payload.WidgetID, target.Rect, newPanel)
		if err != nil {
			return Result{}, err
		}
		return Result{WidgetID: payload.WidgetID, PanelID: target.PanelID, Rect: rect}, nil
	}

	w, err := c.store.AddWidget(payload.CatalogType, target.PanelID, target.Rect)
	if err != nil {
		return Result{}, err
	}
	return Result{WidgetID: w.ID, PanelID: w.PanelID, Rect: w.Rect, Created: true}, nil
}

// Cancel aborts the gesture with no store mutation. Safe in any phase.
func (c *Coordinator) Cancel() {
	c.reset()
}

func (c *Coordinator) reset() {
	c.phase = Idle
	c.payload = Payload{}
	c.origin = ""
	c.size = grid.Rect{}
	c.target = Target{}
}
