package layoutstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griddeck/internal/dashboard"
	"griddeck/internal/grid"
)

func sampleLayout(id, owner string, created time.Time) dashboard.Layout {
	return dashboard.Layout{
		ID:      id,
		Name:    "layout " + id,
		OwnerID: owner,
		Panels: []dashboard.Panel{
			{ID: "main", Name: "Main", Direction: dashboard.Horizontal},
		},
		Widgets: []dashboard.Widget{{
			ID: "w1", Type: "clock", Title: "Clock", PanelID: "main",
			Rect:      grid.Rect{X: 0, Y: 0, W: 2, H: 1},
			Draggable: true, Resizable: true,
			Settings: map[string]any{"format": "15:04"},
		}},
		GridCols:  12,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := sampleLayout("abc", "me", time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Panels, out.Panels)
	require.Len(t, out.Widgets, 1)
	assert.Equal(t, in.Widgets[0].Rect, out.Widgets[0].Rect)
	assert.Equal(t, "15:04", out.Widgets[0].Settings["format"])
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, sampleLayout("newer", "me", base.Add(time.Hour))))
	require.NoError(t, s.Save(ctx, sampleLayout("older", "me", base)))
	require.NoError(t, s.Save(ctx, sampleLayout("other", "them", base)))

	got, err := s.List(ctx, "me")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "older", got[0].ID)
	assert.Equal(t, "newer", got[1].ID)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleLayout("abc", "me", time.Now())))
	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent layout is a no-op.
	assert.NoError(t, s.Delete(ctx, "abc"))
}

func TestFileStoreSanitizesIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	in := sampleLayout("../../evil/../id", "me", time.Now())
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx, "../../evil/../id")
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
}

func TestFileStoreEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	s, err := NewFileStore("")
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), sampleLayout("abc", "me", time.Now())))
	got, err := s.List(context.Background(), "me")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := sampleLayout("abc", "me", time.Now())
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)

	// Stored records must not alias the caller's widgets.
	in.Widgets[0].Rect.X = 9
	out2, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, out2.Widgets[0].Rect.X)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
