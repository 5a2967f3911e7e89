// Package dashboard owns the canonical dashboard state: widget and panel
// identity, the active layout, and the store that applies validated mutations
// atomically while feeding the undo/redo history.
package dashboard

import (
	"reflect"
	"time"

	"griddeck/internal/grid"
)

// Direction is a panel's layout direction.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Widget is a single independently configured unit of content on the grid.
type Widget struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	CustomName string         `json:"customName,omitempty"`
	Rect       grid.Rect      `json:"rect"`
	Collapsed  bool           `json:"collapsed,omitempty"`
	Draggable  bool           `json:"draggable"`
	Resizable  bool           `json:"resizable"`
	Static     bool           `json:"static,omitempty"`
	Bounds     grid.Bounds    `json:"bounds,omitempty"`
	Settings   map[string]any `json:"settings,omitempty"`
	PanelID    string         `json:"panelId"`
}

// DisplayName returns the user-assigned name, falling back to the title.
func (w Widget) DisplayName() string {
	if w.CustomName != "" {
		return w.CustomName
	}
	return w.Title
}

// Clone returns a deep copy; the settings bag is never shared.
func (w Widget) Clone() Widget {
	out := w
	if w.Settings != nil {
		out.Settings = make(map[string]any, len(w.Settings))
		for k, v := range w.Settings {
			out.Settings[k] = v
		}
	}
	return out
}

// Placement returns the widget's rect tagged with its id for geometry checks.
func (w Widget) Placement() grid.Placement {
	return grid.Placement{ID: w.ID, Rect: w.Rect}
}

// Panel is a named, directionally-laid-out region of the dashboard.
// Panel ids are unique within a layout and stable for its lifetime.
type Panel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
	MinSize   int       `json:"minSize,omitempty"`
	Collapsed bool      `json:"collapsed,omitempty"`
}

// Layout aggregates panels and widgets into one named dashboard.
// Panels and widgets are ordered sequences so the persisted form round-trips
// with stable ordering.
type Layout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"ownerId"`
	Panels      []Panel   `json:"panels"`
	Widgets     []Widget  `json:"widgets"`
	GridCols    int       `json:"gridCols"`
	RowTemplate string    `json:"rowTemplate,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the layout. Undo snapshots are clones, so
// history never aliases live widget records.
func (l Layout) Clone() Layout {
	out := l
	out.Panels = make([]Panel, len(l.Panels))
	copy(out.Panels, l.Panels)
	out.Widgets = make([]Widget, 0, len(l.Widgets))
	for _, w := range l.Widgets {
		out.Widgets = append(out.Widgets, w.Clone())
	}
	return out
}

// Panel returns the panel with the given id.
func (l Layout) Panel(id string) (Panel, bool) {
	for _, p := range l.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// EqualContent reports structural equality ignoring the update timestamp.
// The history log uses it to drop pushes that did not change anything, e.g.
// a move that resolved back to the widget's current position.
func (l Layout) EqualContent(o Layout) bool {
	l.UpdatedAt, o.UpdatedAt = time.Time{}, time.Time{}
	return reflect.DeepEqual(l, o)
}

// PlacementsForPanel collects the rects of every widget in one panel,
// optionally excluding one widget id.
func (l Layout) PlacementsForPanel(panelID, excludeID string) []grid.Placement {
	var out []grid.Placement
	for _, w := range l.Widgets {
		if w.PanelID != panelID || w.ID == excludeID {
			continue
		}
		out = append(out, w.Placement())
	}
	return out
}
