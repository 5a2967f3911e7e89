package ui

// FocusRing tracks which panel has keyboard focus, cycling through the
// active layout's panels in declaration order.
type FocusRing struct {
	panels []string
	idx    int
}

// NewFocusRing creates a ring over the given panel IDs.
func NewFocusRing(panels []string) *FocusRing {
	return &FocusRing{panels: panels}
}

// SetPanels replaces the panel list, keeping focus on the current panel when
// it still exists and falling back to the first panel otherwise.
func (f *FocusRing) SetPanels(panels []string) {
	current := f.Current()
	f.panels = panels
	f.idx = 0
	for i, id := range panels {
		if id == current {
			f.idx = i
			return
		}
	}
}

// Current returns the focused panel ID, or "" when the ring is empty.
func (f *FocusRing) Current() string {
	if len(f.panels) == 0 {
		return ""
	}
	if f.idx >= len(f.panels) {
		f.idx = 0
	}
	return f.panels[f.idx]
}

// Next advances focus to the next panel and returns its ID.
func (f *FocusRing) Next() string {
	if len(f.panels) == 0 {
		return ""
	}
	f.idx = (f.idx + 1) % len(f.panels)
	return f.panels[f.idx]
}

// Prev moves focus to the previous panel and returns its ID.
func (f *FocusRing) Prev() string {
	if len(f.panels) == 0 {
		return ""
	}
	f.idx = (f.idx - 1 + len(f.panels)) % len(f.panels)
	return f.panels[f.idx]
}

// Focus moves focus directly to the named panel if present.
func (f *FocusRing) Focus(id string) bool {
	for i, p := range f.panels {
		if p == id {
			f.idx = i
			return true
		}
	}
	return false
}

// CycleSelection returns the widget ID after current in ids, wrapping.
// With an empty current it returns the first ID. Delta of -1 cycles
// backwards. Returns "" when ids is empty.
func CycleSelection(ids []string, current string, delta int) string {
	if len(ids) == 0 {
		return ""
	}
	pos := -1
	for i, id := range ids {
		if id == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		if delta < 0 {
			return ids[len(ids)-1]
		}
		return ids[0]
	}
	next := (pos + delta + len(ids)) % len(ids)
	return ids[next]
}
