package dashboard

import "griddeck/internal/grid"

// arena holds the live widget set as a dense slice plus an id→index map,
// giving O(1) lookup without relying on shared references. Slice order is
// insertion order, which is also the persisted order.
type arena struct {
	widgets []Widget
	index   map[string]int
}

func newArena() arena {
	return arena{index: make(map[string]int)}
}

// rebuild replaces the arena contents with deep copies of the given widgets.
func (a *arena) rebuild(widgets []Widget) {
	a.widgets = a.widgets[:0]
	a.index = make(map[string]int, len(widgets))
	for _, w := range widgets {
		a.index[w.ID] = len(a.widgets)
		a.widgets = append(a.widgets, w.Clone())
	}
}

// get returns a copy of the widget with the given id.
func (a *arena) get(id string) (Widget, bool) {
	i, ok := a.index[id]
	if !ok {
		return Widget{}, false
	}
	return a.widgets[i].Clone(), true
}

// has reports whether the id exists without copying.
func (a *arena) has(id string) bool {
	_, ok := a.index[id]
	return ok
}

// put inserts or replaces a widget record.
func (a *arena) put(w Widget) {
	if i, ok := a.index[w.ID]; ok {
		a.widgets[i] = w
		return
	}
	a.index[w.ID] = len(a.widgets)
	a.widgets = append(a.widgets, w)
}

// remove deletes a widget, preserving the order of the rest.
func (a *arena) remove(id string) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	a.widgets = append(a.widgets[:i], a.widgets[i+1:]...)
	delete(a.index, id)
	for j := i; j < len(a.widgets); j++ {
		a.index[a.widgets[j].ID] = j
	}
	return true
}

// list returns deep copies of all widgets in insertion order.
func (a *arena) list() []Widget {
	out := make([]Widget, 0, len(a.widgets))
	for _, w := range a.widgets {
		out = append(out, w.Clone())
	}
	return out
}

// forPanel returns deep copies of the widgets belonging to one panel.
func (a *arena) forPanel(panelID string) []Widget {
	var out []Widget
	for _, w := range a.widgets {
		if w.PanelID == panelID {
			out = append(out, w.Clone())
		}
	}
	return out
}

// placements returns the rects of every widget in one panel, optionally
// excluding one id. Used for collision checks during moves and previews.
func (a *arena) placements(panelID, excludeID string) []grid.Placement {
	var out []grid.Placement
	for _, w := range a.widgets {
		if w.PanelID != panelID || w.ID == excludeID {
			continue
		}
		out = append(out, w.Placement())
	}
	return out
}

func (a *arena) len() int { return len(a.widgets) }
