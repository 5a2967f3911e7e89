package drag

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"griddeck/internal/dashboard"
	"griddeck/internal/grid"
)

func newTestStore(t *testing.T) *dashboard.Store {
	t.Helper()
	seq := 0
	s := dashboard.NewStore(
		dashboard.Config{GridCols: 4, MaxRows: 8, HistoryDepth: 10},
		dashboard.WithClock(func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }),
		dashboard.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	if _, err := s.CreateLayout("test", "owner-1"); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}
	return s
}

func marshalState(t *testing.T, s *dashboard.Store) []byte {
	t.Helper()
	data, err := json.Marshal(s.ActiveLayout())
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return data
}

func TestCancelLeavesStateByteIdentical(t *testing.T) {
	store := newTestStore(t)
	w, err := store.AddWidget("clock", "main", grid.Rect{})
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	before := marshalState(t, store)

	c := New(store)
	if err := c.StartWidget(w.ID); err != nil {
		t.Fatalf("StartWidget: %v", err)
	}
	if _, err := c.HoverCell("main", 2, 3); err != nil {
		t.Fatalf("HoverCell: %v", err)
	}
	if _, err := c.HoverPanel("sidebar"); err != nil {
		t.Fatalf("HoverPanel: %v", err)
	}
	c.Cancel()

	if c.Phase() != Idle {
		t.Errorf("phase after cancel = %v, want idle", c.Phase())
	}
	after := marshalState(t, store)
	if string(before) != string(after) {
		t.Errorf("cancelled drag mutated the store:\nbefore %s\nafter  %s", before, after)
	}
}

func TestStartWidgetErrors(t *testing.T) {
	store := newTestStore(t)
	c := New(store)

	if err := c.StartWidget("ghost"); !errors.Is(err, dashboard.ErrUnknownWidget) {
		t.Errorf("unknown widget: got %v, want ErrUnknownWidget", err)
	}

	l := dashboard.Layout{
		ID:     "pinned",
		Name:   "pinned",
		Panels: []dashboard.Panel{{ID: "main", Name: "Main"}},
		Widgets: []dashboard.Widget{{
			ID: "w1", Type: "clock", PanelID: "main", Static: true, Draggable: true,
			Rect: grid.Rect{X: 0, Y: 0, W: 2, H: 1},
		}},
	}
	if err := store.ImportLayout(l); err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if _, err := store.SwitchActiveLayout("pinned"); err != nil {
		t.Fatalf("SwitchActiveLayout: %v", err)
	}
	if err := c.StartWidget("w1"); !errors.Is(err, ErrNotDraggable) {
		t.Errorf("static widget: got %v, want ErrNotDraggable", err)
	}
	if c.Phase() != Idle {
		t.Error("failed start must leave the coordinator idle")
	}
}

func TestStartCatalogItemUnknownType(t *testing.T) {
	c := New(newTestStore(t))
	if err := c.StartCatalogItem("nope"); !errors.Is(err, dashboard.ErrUnknownWidgetType) {
		t.Errorf("got %v, want ErrUnknownWidgetType", err)
	}
}

func TestHoverLegality(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AddWidget("notes", "main", grid.Rect{X: 0, Y: 0, W: 2, H: 2}); err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	mover, err := store.AddWidget("notes", "main", grid.Rect{X: 2, Y: 0, W: 2, H: 2})
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}

	c := New(store)
	if _, err := c.HoverCell("main", 0, 0); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("hover while idle: got %v, want ErrNotDragging", err)
	}
	if err := c.StartWidget(mover.ID); err != nil {
		t.Fatalf("StartWidget: %v", err)
	}

	tests := []struct {
		name      string
		x, y      int
		wantLegal bool
	}{
		{"own slot is legal", 2, 0, true},
		{"occupied by neighbor", 0, 0, false},
		{"free row below", 0, 2, true},
		{"past right edge", 3, 0, false},
		{"past max rows", 0, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := c.HoverCell("main", tt.x, tt.y)
			if err != nil {
				t.Fatalf("HoverCell: %v", err)
			}
			if target.Legal != tt.wantLegal {
				t.Errorf("legal = %v, want %v", target.Legal, tt.wantLegal)
			}
		})
	}
}

func TestHoverPanel(t *testing.T) {
	store := newTestStore(t)
	c := New(store)
	if err := c.StartCatalogItem("clock"); err != nil {
		t.Fatalf("StartCatalogItem: %v", err)
	}

	target, err := c.HoverPanel("sidebar")
	if err != nil {
		t.Fatalf("HoverPanel: %v", err)
	}
	if !target.Legal {
		t.Error("empty panel should accept a drop")
	}
	if target.Kind != TargetPanel {
		t.Errorf("kind = %v, want TargetPanel", target.Kind)
	}
	if target.Rect != (grid.Rect{X: 0, Y: 0, W: 2, H: 1}) {
		t.Errorf("slot = %v, want default clock size at origin", target.Rect)
	}
}

func TestDropMovesWidget(t *testing.T) {
	store := newTestStore(t)
	w, err := store.AddWidget("clock", "main", grid.Rect{})
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}

	c := New(store)
	if err := c.StartWidget(w.ID); err != nil {
		t.Fatalf("StartWidget: %v", err)
	}
	if _, err := c.HoverCell("sidebar", 1, 2); err != nil {
		t.Fatalf("HoverCell: %v", err)
	}
	res, err := c.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if res.Created {
		t.Error("moving an existing widget must not report creation")
	}
	if res.PanelID != "sidebar" || res.Rect != (grid.Rect{X: 1, Y: 2, W: 2, H: 1}) {
		t.Errorf("result %+v, want sidebar at 1,2", res)
	}
	got, _ := store.Widget(w.ID)
	if got.PanelID != "sidebar" || got.Rect != res.Rect {
		t.Errorf("stored widget %+v does not match drop result", got)
	}
	if c.Phase() != Idle {
		t.Error("drop must end the gesture")
	}
}

func TestDropCreatesCatalogWidget(t *testing.T) {
	store := newTestStore(t)
	c := New(store)
	if err := c.StartCatalogItem("gauge"); err != nil {
		t.Fatalf("StartCatalogItem: %v", err)
	}
	if _, err := c.HoverPanel("main"); err != nil {
		t.Fatalf("HoverPanel: %v", err)
	}
	res, err := c.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !res.Created {
		t.Error("catalog drop must report creation")
	}
	got, ok := store.Widget(res.WidgetID)
	if !ok {
		t.Fatal("created widget missing from store")
	}
	if got.Type != "gauge" || got.PanelID != "main" {
		t.Errorf("created %+v, want a gauge in main", got)
	}
}

func TestDropWithoutGesture(t *testing.T) {
	c := New(newTestStore(t))
	if _, err := c.Drop(); !errors.Is(err, ErrNotDragging) {
		t.Errorf("got %v, want ErrNotDragging", err)
	}
}

func TestFailedDropSnapsBack(t *testing.T) {
	store := newTestStore(t)
	w, err := store.AddWidget("clock", "main", grid.Rect{})
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	before := marshalState(t, store)

	c := New(store)
	if err := c.StartWidget(w.ID); err != nil {
		t.Fatalf("StartWidget: %v", err)
	}
	// Hover a panel that disappears before the drop commits.
	if _, err := c.HoverCell("ghost", 0, 0); err != nil {
		t.Fatalf("HoverCell: %v", err)
	}
	if _, err := c.Drop(); !errors.Is(err, dashboard.ErrUnknownPanel) {
		t.Fatalf("got %v, want ErrUnknownPanel", err)
	}

	if c.Phase() != Idle {
		t.Error("failed drop must end the gesture")
	}
	after := marshalState(t, store)
	if string(before) != string(after) {
		t.Error("failed drop left a partial mutation behind")
	}
}
