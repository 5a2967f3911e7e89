package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"griddeck/internal/catalog"
	"griddeck/internal/grid"
	"griddeck/internal/history"
	"griddeck/internal/telemetry"
)

// Config bounds the geometry and history of a store.
type Config struct {
	GridCols     int // columns per panel grid
	MaxRows      int // free-slot search gives up past this row
	HistoryDepth int // max undo snapshots kept per active layout
}

// DefaultConfig matches a dashboard-scale grid.
func DefaultConfig() Config {
	return Config{GridCols: 12, MaxRows: 64, HistoryDepth: 50}
}

// Event describes one committed change, delivered to subscribed observers.
// PersistNeeded tells the debounced saver that the active layout should be
// written out once mutations settle.
type Event struct {
	Op            string
	LayoutID      string
	WidgetID      string
	PersistNeeded bool
}

// Observer receives change events after a mutation commits. Observers run on
// the mutating goroutine with the store unlocked, so they may call selectors.
type Observer func(Event)

// CatalogLookup resolves a widget type tag to its definition. Injectable so
// tests can simulate catalog misses.
type CatalogLookup func(typeTag string) (catalog.Definition, bool)

// Store exclusively owns the live dashboard state: the active layout's panels
// and widgets, the set of known layouts, the selection, and the undo history.
// Mutations are atomic: they fully apply and push exactly one history
// snapshot, or fail leaving state untouched. A single-writer mutex guards the
// state so the async saver can read consistent copies off the event loop.
type Store struct {
	mu       sync.Mutex
	cfg      Config
	lookup   CatalogLookup
	live     Layout // active layout metadata + panels; widgets live in the arena
	widgets  arena
	layouts  map[string]Layout // known layouts by id, inactive ones at rest
	order    []string          // layout ids in creation/import order
	selected string
	hist     *history.Log[Layout]
	obs      []Observer

	loading    bool
	persistErr error

	now   func() time.Time
	newID func() string
}

// Option customizes a Store at construction.
type Option func(*Store)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides widget/layout id generation, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithCatalog overrides catalog resolution, for tests.
func WithCatalog(lookup CatalogLookup) Option {
	return func(s *Store) { s.lookup = lookup }
}

// NewStore creates an empty store. Call CreateLayout or ImportLayout before
// mutating widgets.
func NewStore(cfg Config, opts ...Option) *Store {
	if cfg.GridCols <= 0 {
		cfg.GridCols = DefaultConfig().GridCols
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultConfig().MaxRows
	}
	if cfg.HistoryDepth <= 0 {
		cfg.HistoryDepth = DefaultConfig().HistoryDepth
	}
	s := &Store{
		cfg:     cfg,
		lookup:  catalog.Lookup,
		widgets: newArena(),
		layouts: make(map[string]Layout),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.hist = history.New(cfg.HistoryDepth, Layout.Clone, Layout.EqualContent)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for committed change events.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = append(s.obs, fn)
}

// emit delivers an event with the store unlocked.
func (s *Store) emit(ev *Event) {
	if ev == nil {
		return
	}
	s.mu.Lock()
	obs := make([]Observer, len(s.obs))
	copy(obs, s.obs)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(*ev)
	}
}

// assembleLocked builds a full deep copy of the active layout, widgets
// included, suitable for snapshots and persistence.
func (s *Store) assembleLocked() Layout {
	out := s.live.Clone()
	out.Widgets = s.widgets.list()
	return out
}

// commitLocked stamps the mutation time, records a history snapshot, and
// returns the event to emit. A snapshot identical to the current top (e.g. a
// move that resolved back to the same slot) records nothing.
func (s *Store) commitLocked(op, widgetID string) *Event {
	s.live.UpdatedAt = s.now()
	if !s.hist.Push(op, s.assembleLocked()) {
		return nil
	}
	return &Event{Op: op, LayoutID: s.live.ID, WidgetID: widgetID, PersistNeeded: true}
}

// applySnapshotLocked replaces the live state with a snapshot's contents.
// Selection is preserved when the selected widget survived the restore.
func (s *Store) applySnapshotLocked(snap Layout) {
	s.widgets.rebuild(snap.Widgets)
	snap.Widgets = nil
	s.live = snap
	if s.selected != "" && !s.widgets.has(s.selected) {
		s.selected = ""
	}
}

// DefaultPanels returns the panel set used when a layout is created without
// an explicit one.
func DefaultPanels() []Panel {
	return []Panel{
		{ID: "main", Name: "Main", Direction: Horizontal, MinSize: 4},
		{ID: "sidebar", Name: "Sidebar", Direction: Vertical, MinSize: 2},
	}
}

// CreateLayout creates a new empty layout owned by ownerID, makes it active,
// and resets the undo history. Any previously active layout for the same
// owner is deactivated and kept in the known set.
func (s *Store) CreateLayout(name, ownerID string, panels ...Panel) (out Layout, err error) {
	defer telemetry.Track("dashboard.create_layout")(&err)
	if len(panels) == 0 {
		panels = DefaultPanels()
	}
	seen := make(map[string]bool, len(panels))
	for _, p := range panels {
		if p.ID == "" || seen[p.ID] {
			return Layout{}, fmt.Errorf("duplicate or empty panel id %q", p.ID)
		}
		seen[p.ID] = true
	}

	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	l := Layout{
		ID:        s.newID(),
		Name:      name,
		OwnerID:   ownerID,
		Panels:    append([]Panel(nil), panels...),
		GridCols:  s.cfg.GridCols,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.stashActiveLocked()
	s.deactivateOwnerLocked(ownerID)
	s.live = l
	s.widgets.rebuild(nil)
	s.selected = ""
	s.layouts[l.ID] = s.assembleLocked()
	s.order = append(s.order, l.ID)
	s.hist.Reset(s.assembleLocked())
	ev = &Event{Op: "create layout", LayoutID: l.ID, PersistNeeded: true}
	return s.assembleLocked(), nil
}

// ImportLayout registers a layout loaded from persistence. It does not
// activate it; use SwitchActiveLayout. Widget panel references are validated
// so a corrupt record cannot smuggle in dangling panel ids.
func (s *Store) ImportLayout(l Layout) error {
	for _, w := range l.Widgets {
		if _, ok := l.Panel(w.PanelID); !ok {
			return fmt.Errorf("widget %s references panel %q: %w", w.ID, w.PanelID, ErrUnknownPanel)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.layouts[l.ID]; !known {
		s.order = append(s.order, l.ID)
	}
	l.Active = false
	s.layouts[l.ID] = l.Clone()
	return nil
}

// SwitchActiveLayout swaps the live widgets and panels to the target layout's
// contents. The in-memory history for the previous layout is discarded;
// history is per-active-layout only.
func (s *Store) SwitchActiveLayout(layoutID string) (out Layout, err error) {
	defer telemetry.Track("dashboard.switch_layout")(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live.ID == layoutID {
		return s.assembleLocked(), nil
	}
	target, ok := s.layouts[layoutID]
	if !ok {
		return Layout{}, fmt.Errorf("layout %q: %w", layoutID, ErrUnknownLayout)
	}
	s.stashActiveLocked()
	s.deactivateOwnerLocked(target.OwnerID)
	target = target.Clone()
	target.Active = true
	s.applySnapshotLocked(target)
	s.selected = ""
	s.layouts[layoutID] = s.assembleLocked()
	s.hist.Reset(s.assembleLocked())
	ev = &Event{Op: "switch layout", LayoutID: layoutID}
	return s.assembleLocked(), nil
}

// stashActiveLocked writes the current live state back into the known set.
func (s *Store) stashActiveLocked() {
	if s.live.ID == "" {
		return
	}
	stored := s.assembleLocked()
	stored.Active = false
	s.layouts[s.live.ID] = stored
}

// deactivateOwnerLocked clears the active flag on every stored layout of one
// owner, keeping the at-most-one-active invariant.
func (s *Store) deactivateOwnerLocked(ownerID string) {
	for id, l := range s.layouts {
		if l.OwnerID == ownerID && l.Active {
			l.Active = false
			s.layouts[id] = l
		}
	}
}

// AddWidget allocates a new widget of the given type in panelID. The desired
// rect is optional: a zero-size rect places the catalog's default size at the
// first free slot. The final position is geometry-resolved, so two additions
// aimed at the same slot settle in arrival order.
func (s *Store) AddWidget(typeTag, panelID string, desired grid.Rect) (w Widget, err error) {
	defer telemetry.Track("dashboard.add_widget",
		attribute.String("widget.type", typeTag),
		attribute.String("panel.id", panelID),
	)(&err)
	def, ok := s.lookup(typeTag)
	if !ok {
		return Widget{}, fmt.Errorf("type %q: %w", typeTag, ErrUnknownWidgetType)
	}

	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live.Panel(panelID); !ok {
		return Widget{}, fmt.Errorf("panel %q: %w", panelID, ErrUnknownPanel)
	}
	want := desired
	if want.W <= 0 || want.H <= 0 {
		want = def.DefaultRect()
		want.X, want.Y = desired.X, desired.Y
	}
	want = grid.ClampToBounds(want, def.Bounds, s.cfg.GridCols)

	placements := s.widgets.placements(panelID, "")
	rect := want
	if !grid.IsFree(rect, placements, "") || !grid.FitsColumns(rect, s.cfg.GridCols) || !rect.Valid() {
		rect, err = grid.FindNearestFreeSlot(want, placements, s.cfg.GridCols, s.cfg.MaxRows)
		if err != nil {
			return Widget{}, err
		}
	}

	w = Widget{
		ID:        s.newID(),
		Type:      def.Type,
		Title:     def.Title,
		Rect:      rect,
		Draggable: true,
		Resizable: true,
		Bounds:    def.Bounds,
		Settings:  catalog.Settings(typeTag),
		PanelID:   panelID,
	}
	s.widgets.put(w.Clone())
	ev = s.commitLocked("add widget", w.ID)
	return w, nil
}

// RemoveWidget deletes a widget. Removing an absent id is a no-op, not an
// error. Removing the selected widget clears the selection.
func (s *Store) RemoveWidget(id string) (err error) {
	defer telemetry.Track("dashboard.remove_widget", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.widgets.remove(id) {
		return nil
	}
	if s.selected == id {
		s.selected = ""
	}
	ev = s.commitLocked("remove widget", id)
	return nil
}

// MoveWidget places a widget at target, optionally transferring it to
// newPanelID. This is the only operation allowed to change a widget's panel.
// When the target slot is taken the move auto-resolves to the nearest free
// slot; the returned rect reflects any adjustment. A zero-size target keeps
// the widget's current size.
func (s *Store) MoveWidget(id string, target grid.Rect, newPanelID string) (placed grid.Rect, err error) {
	defer telemetry.Track("dashboard.move_widget", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.widgets.get(id)
	if !ok {
		return grid.Rect{}, fmt.Errorf("widget %q: %w", id, ErrUnknownWidget)
	}
	if w.Static {
		return grid.Rect{}, fmt.Errorf("widget %q is static: %w", id, ErrInvalidPlacement)
	}
	panelID := w.PanelID
	if newPanelID != "" {
		panelID = newPanelID
	}
	if _, ok := s.live.Panel(panelID); !ok {
		return grid.Rect{}, fmt.Errorf("panel %q: %w", panelID, ErrUnknownPanel)
	}

	want := target
	if want.W <= 0 || want.H <= 0 {
		want.W, want.H = w.Rect.W, w.Rect.H
	}
	want = grid.ClampToBounds(want, w.Bounds, s.cfg.GridCols)

	rect := want
	if !rect.Valid() || !grid.FitsColumns(rect, s.cfg.GridCols) ||
		!grid.IsFree(rect, s.widgets.placements(panelID, id), id) {
		// The fallback search sees every widget, the mover included, so the
		// resolved slot never lands back on the old position.
		rect, err = grid.FindNearestFreeSlot(want, s.widgets.placements(panelID, ""), s.cfg.GridCols, s.cfg.MaxRows)
		if err != nil {
			return grid.Rect{}, fmt.Errorf("move widget %q to %s: %w", id, want, ErrInvalidPlacement)
		}
	}

	w.Rect = rect
	w.PanelID = panelID
	s.widgets.put(w)
	ev = s.commitLocked("move widget", id)
	return rect, nil
}

// ResizeWidget sets a widget's size in place. The new size must satisfy the
// widget's bounds and may not overlap a neighbor; there is no cascading
// reflow, an overlapping resize is rejected outright.
func (s *Store) ResizeWidget(id string, w, h int) (placed grid.Rect, err error) {
	defer telemetry.Track("dashboard.resize_widget", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	widget, ok := s.widgets.get(id)
	if !ok {
		return grid.Rect{}, fmt.Errorf("widget %q: %w", id, ErrUnknownWidget)
	}
	if widget.Static || !widget.Resizable {
		return grid.Rect{}, fmt.Errorf("widget %q is not resizable: %w", id, ErrInvalidPlacement)
	}
	if w <= 0 || h <= 0 || !grid.WithinBounds(w, h, widget.Bounds) {
		return grid.Rect{}, fmt.Errorf("size %dx%d outside bounds: %w", w, h, ErrInvalidPlacement)
	}
	rect := grid.Rect{X: widget.Rect.X, Y: widget.Rect.Y, W: w, H: h}
	if !grid.FitsColumns(rect, s.cfg.GridCols) {
		return grid.Rect{}, fmt.Errorf("size %dx%d exceeds grid: %w", w, h, ErrInvalidPlacement)
	}
	if !grid.IsFree(rect, s.widgets.placements(widget.PanelID, id), id) {
		return grid.Rect{}, fmt.Errorf("resize of %q overlaps a neighbor: %w", id, ErrInvalidPlacement)
	}

	widget.Rect = rect
	s.widgets.put(widget)
	ev = s.commitLocked("resize widget", id)
	return rect, nil
}

// UpdateSettings shallow-merges partial into the widget's settings bag.
// Geometry is unaffected. Transient updates (live-typing in a settings form)
// skip the history snapshot; the caller pushes a final non-transient update
// on save.
func (s *Store) UpdateSettings(id string, partial map[string]any, transient bool) (err error) {
	defer telemetry.Track("dashboard.update_settings", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.widgets.get(id)
	if !ok {
		return fmt.Errorf("widget %q: %w", id, ErrUnknownWidget)
	}
	if w.Settings == nil {
		w.Settings = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		w.Settings[k] = v
	}
	s.widgets.put(w)
	if transient {
		s.live.UpdatedAt = s.now()
		return nil
	}
	ev = s.commitLocked("update settings", id)
	return nil
}

// RenameWidget sets the user-assigned custom name. An empty name reverts to
// the catalog title.
func (s *Store) RenameWidget(id, name string) (err error) {
	defer telemetry.Track("dashboard.rename_widget", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.widgets.get(id)
	if !ok {
		return fmt.Errorf("widget %q: %w", id, ErrUnknownWidget)
	}
	w.CustomName = name
	s.widgets.put(w)
	ev = s.commitLocked("rename widget", id)
	return nil
}

// ToggleCollapse flips a widget's collapsed flag.
func (s *Store) ToggleCollapse(id string) (err error) {
	defer telemetry.Track("dashboard.toggle_collapse", attribute.String("widget.id", id))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.widgets.get(id)
	if !ok {
		return fmt.Errorf("widget %q: %w", id, ErrUnknownWidget)
	}
	w.Collapsed = !w.Collapsed
	s.widgets.put(w)
	ev = s.commitLocked("toggle collapse", id)
	return nil
}

// TogglePanelCollapse flips a panel's collapsed flag.
func (s *Store) TogglePanelCollapse(panelID string) (err error) {
	defer telemetry.Track("dashboard.toggle_panel", attribute.String("panel.id", panelID))(&err)
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.live.Panels {
		if p.ID == panelID {
			s.live.Panels[i].Collapsed = !p.Collapsed
			ev = s.commitLocked("toggle panel", "")
			return nil
		}
	}
	return fmt.Errorf("panel %q: %w", panelID, ErrUnknownPanel)
}

// SelectWidget marks a widget as selected; an empty id deselects. Selection
// is ephemeral UI state and never enters the undo history. Selecting an
// unknown id deselects.
func (s *Store) SelectWidget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && !s.widgets.has(id) {
		id = ""
	}
	s.selected = id
}

// Undo restores the previous snapshot and returns it. Returns false when
// already at the oldest snapshot.
func (s *Store) Undo() (Layout, bool) {
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.hist.Undo()
	if !ok {
		return Layout{}, false
	}
	s.applySnapshotLocked(snap)
	ev = &Event{Op: "undo", LayoutID: s.live.ID, PersistNeeded: true}
	return s.assembleLocked(), true
}

// Redo restores the next snapshot and returns it. Returns false when already
// at the newest snapshot.
func (s *Store) Redo() (Layout, bool) {
	var ev *Event
	defer func() { s.emit(ev) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.hist.Redo()
	if !ok {
		return Layout{}, false
	}
	s.applySnapshotLocked(snap)
	ev = &Event{Op: "redo", LayoutID: s.live.ID, PersistNeeded: true}
	return s.assembleLocked(), true
}

// --- read-only selectors ---

// Widget returns a copy of the widget with the given id.
func (s *Store) Widget(id string) (Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widgets.get(id)
}

// WidgetsForPanel returns copies of the widgets in one panel, in insertion
// order.
func (s *Store) WidgetsForPanel(panelID string) []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widgets.forPanel(panelID)
}

// PanelPlacements returns the occupied rects of a panel, excluding one id.
// The drag coordinator uses this for read-only legality previews.
func (s *Store) PanelPlacements(panelID, excludeID string) []grid.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widgets.placements(panelID, excludeID)
}

// Panels returns the active layout's panels in order.
func (s *Store) Panels() []Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Panel, len(s.live.Panels))
	copy(out, s.live.Panels)
	return out
}

// ActiveLayout returns a deep copy of the live layout, widgets included.
func (s *Store) ActiveLayout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assembleLocked()
}

// Layouts returns copies of all known layouts in creation/import order.
func (s *Store) Layouts() []Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Layout, 0, len(s.order))
	for _, id := range s.order {
		if id == s.live.ID {
			out = append(out, s.assembleLocked())
			continue
		}
		if l, ok := s.layouts[id]; ok {
			out = append(out, l.Clone())
		}
	}
	return out
}

// SelectedWidgetID returns the selected widget id, or "".
func (s *Store) SelectedWidgetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// CanUndo reports whether an undo is available.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether a redo is available.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// HistoryLabels returns the undo stack's action labels, oldest first.
func (s *Store) HistoryLabels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Labels()
}

// GridCols returns the configured column count.
func (s *Store) GridCols() int { return s.cfg.GridCols }

// MaxRows returns the configured free-slot search limit.
func (s *Store) MaxRows() int { return s.cfg.MaxRows }

// SetLoading flips the loading flag shown while a layout loads.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports whether a layout load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetPersistError records the latest persistence failure (nil clears it).
// Persistence failures never roll back in-memory state; the flag is surfaced
// so the UI can show a retry hint.
func (s *Store) SetPersistError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistErr = err
}

// PersistError returns the transient persistence failure, if any.
func (s *Store) PersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}
