package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"griddeck/internal/catalog"
	"griddeck/internal/dashboard"
	"griddeck/internal/drag"
	"griddeck/internal/grid"
	"griddeck/internal/ui/textutil"
)

// cellHeight is the number of terminal rows per grid row. One grid row fits
// a bordered widget with a single content line.
const cellHeight = 3

// DeckView renders the active layout: panels side by side, each panel a
// character grid of widget boxes positioned by their grid rects.
type DeckView struct {
	store  *dashboard.Store
	coord  *drag.Coordinator
	focus  *FocusRing
	width  int
	height int
	now    func() time.Time
}

var _ View = (*DeckView)(nil)

// NewDeckView creates a deck for the given store and drag coordinator.
func NewDeckView(store *dashboard.Store, coord *drag.Coordinator, focus *FocusRing) *DeckView {
	return &DeckView{
		store: store,
		coord: coord,
		focus: focus,
		now:   time.Now,
	}
}

// Init implements View.
func (d *DeckView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (d *DeckView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = msg.Width
		d.height = msg.Height
	}
	return d, nil
}

// View implements View.
func (d *DeckView) View() string {
	layout := d.store.ActiveLayout()
	if layout.ID == "" {
		return Styles.Muted.Render("no active layout — press SPC l n to create one")
	}
	if len(layout.Panels) == 0 {
		return Styles.Muted.Render("layout has no panels")
	}

	width := d.width
	if width == 0 {
		width = 120
	}
	height := d.height
	if height == 0 {
		height = 32
	}

	// Collapsed panels take a fixed narrow strip; the rest share what is left.
	const collapsedW = 3
	expanded := 0
	for _, p := range layout.Panels {
		if !p.Collapsed {
			expanded++
		}
	}
	remaining := width - collapsedW*(len(layout.Panels)-expanded)
	panelW := remaining
	if expanded > 0 {
		panelW = remaining / expanded
	}

	blocks := make([]string, 0, len(layout.Panels))
	for _, p := range layout.Panels {
		if p.Collapsed {
			blocks = append(blocks, d.renderCollapsedPanel(p, height-2))
			continue
		}
		blocks = append(blocks, d.renderPanel(p, panelW, height-2))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderCollapsedPanel renders a narrow vertical strip with the panel name.
func (d *DeckView) renderCollapsedPanel(p dashboard.Panel, height int) string {
	style := Styles.Panel
	if d.focus.Current() == p.ID {
		style = Styles.PanelFocus
	}
	var b strings.Builder
	for i, r := range p.Name {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteRune(r)
	}
	return style.Height(height).Render(b.String())
}

// renderPanel renders one panel: a title line, then the widget canvas.
func (d *DeckView) renderPanel(p dashboard.Panel, width, height int) string {
	style := Styles.Panel
	if d.focus.Current() == p.ID {
		style = Styles.PanelFocus
	}
	innerW := width - style.GetHorizontalFrameSize()
	if innerW < 8 {
		innerW = 8
	}
	innerH := height - style.GetVerticalFrameSize() - 1 // title line

	title := Styles.Title.Render(textutil.Truncate(p.Name, innerW))
	body := d.renderCanvas(p.ID, innerW, innerH)
	return style.Width(innerW).Render(title + "\n" + body)
}

// Canvas style keys, one per widget state plus drop ghosts.
const (
	styleNone byte = iota
	styleNormal
	styleSelected
	styleDragging
	styleOrphan
	styleDropLegal
	styleDropIllegal
)

var canvasStyles = map[byte]lipgloss.Style{
	styleNormal:      Styles.Muted,
	styleSelected:    Styles.Selected,
	styleDragging:    Styles.Title,
	styleOrphan:      Styles.Orphan.UnsetBorderStyle(),
	styleDropLegal:   Styles.DropLegal,
	styleDropIllegal: Styles.DropIllegal,
}

// canvas is a rune grid plus a parallel style-key grid. Widgets paint their
// borders and content into it; serialization groups runs of equal style so
// ANSI sequences never land inside a box border.
type canvas struct {
	w, h  int
	cells [][]rune
	keys  [][]byte
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.cells = make([][]rune, h)
	c.keys = make([][]byte, h)
	for y := 0; y < h; y++ {
		c.cells[y] = make([]rune, w)
		c.keys[y] = make([]byte, w)
		for x := 0; x < w; x++ {
			c.cells[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, key byte) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.keys[y][x] = key
}

// box draws a bordered box with a title in the top border and content lines
// inside. Everything is clipped to the canvas.
func (c *canvas) box(x, y, w, h int, title string, content []string, key byte) {
	if w < 2 || h < 2 {
		return
	}
	for cx := x + 1; cx < x+w-1; cx++ {
		c.set(cx, y, '─', key)
		c.set(cx, y+h-1, '─', key)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		c.set(x, cy, '│', key)
		c.set(x+w-1, cy, '│', key)
	}
	c.set(x, y, '┌', key)
	c.set(x+w-1, y, '┐', key)
	c.set(x, y+h-1, '└', key)
	c.set(x+w-1, y+h-1, '┘', key)

	if title != "" && w > 4 {
		c.text(x+1, y, textutil.Truncate(title, w-2), key)
	}
	for i, line := range content {
		if y+1+i >= y+h-1 {
			break
		}
		c.text(x+1, y+1+i, line, key)
	}
}

// ghost draws a dashed outline without content, for drop-target previews.
func (c *canvas) ghost(x, y, w, h int, key byte) {
	if w < 1 || h < 1 {
		return
	}
	for cx := x; cx < x+w; cx++ {
		c.set(cx, y, '╌', key)
		c.set(cx, y+h-1, '╌', key)
	}
	for cy := y; cy < y+h; cy++ {
		c.set(x, cy, '╎', key)
		c.set(x+w-1, cy, '╎', key)
	}
}

// text writes a string starting at (x, y). Wide runes occupy two cells.
func (c *canvas) text(x, y int, s string, key byte) {
	cx := x
	for _, r := range s {
		rw := textutil.Width(string(r))
		if cx+rw > c.w {
			return
		}
		c.set(cx, y, r, key)
		if rw == 2 {
			c.set(cx+1, y, 0, key)
		}
		cx += rw
	}
}

// render serializes the canvas, styling runs of equal key per row.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteString("\n")
		}
		x := 0
		for x < c.w {
			key := c.keys[y][x]
			start := x
			for x < c.w && c.keys[y][x] == key {
				x++
			}
			var run strings.Builder
			for i := start; i < x; i++ {
				if c.cells[y][i] != 0 { // 0 marks the shadow of a wide rune
					run.WriteRune(c.cells[y][i])
				}
			}
			if st, ok := canvasStyles[key]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
		}
	}
	return b.String()
}

// renderCanvas paints a panel's widgets onto a fresh canvas and serializes
// it. The drag ghost is painted last so it reads on top of widget borders.
func (d *DeckView) renderCanvas(panelID string, innerW, innerH int) string {
	cols := d.store.GridCols()
	cellW := innerW / cols
	if cellW < 4 {
		cellW = 4
	}
	cv := newCanvas(innerW, innerH)
	selected := d.store.SelectedWidgetID()
	dragging := ""
	if d.coord.Phase() != drag.Idle && d.coord.Payload().Existing() {
		dragging = d.coord.Payload().WidgetID
	}
	now := d.now()

	for _, wd := range d.store.WidgetsForPanel(panelID) {
		_, known := catalog.Lookup(wd.Type)
		key := styleNormal
		switch {
		case !known:
			key = styleOrphan
		case wd.ID == dragging:
			key = styleDragging
		case wd.ID == selected:
			key = styleSelected
		}
		px, py := wd.Rect.X*cellW, wd.Rect.Y*cellHeight
		pw, ph := wd.Rect.W*cellW, wd.Rect.H*cellHeight
		if wd.Collapsed {
			ph = cellHeight
		}
		content := renderWidgetContent(wd, pw-2, ph-2, now, known)
		cv.box(px, py, pw, ph, wd.DisplayName(), content, key)
	}

	if target, ok := d.coord.Target(); ok && target.PanelID == panelID {
		key := styleDropIllegal
		if target.Legal {
			key = styleDropLegal
		}
		d.paintGhost(cv, target.Rect, cellW, key)
	}
	return cv.render()
}

func (d *DeckView) paintGhost(cv *canvas, r grid.Rect, cellW int, key byte) {
	cv.ghost(r.X*cellW, r.Y*cellHeight, r.W*cellW, r.H*cellHeight, key)
}

// StatusLine summarizes mode, selection, history, and persistence state for
// the bottom bar.
func (d *DeckView) StatusLine() string {
	layout := d.store.ActiveLayout()
	parts := []string{Styles.Title.Render(layout.Name)}
	if id := d.store.SelectedWidgetID(); id != "" {
		if wd, ok := d.store.Widget(id); ok {
			parts = append(parts, Styles.Selected.Render(wd.DisplayName()))
		}
	}
	if d.coord.Phase() != drag.Idle {
		parts = append(parts, Styles.Title.Render("dragging"))
	}
	hist := fmt.Sprintf("undo:%v redo:%v", d.store.CanUndo(), d.store.CanRedo())
	parts = append(parts, Styles.Muted.Render(hist))
	if err := d.store.PersistError(); err != nil {
		parts = append(parts, Styles.Warning.Render("save failed — press R to retry"))
	}
	return strings.Join(parts, Styles.Muted.Render("  │  "))
}
