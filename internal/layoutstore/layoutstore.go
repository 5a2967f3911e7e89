// Package layoutstore persists dashboard layouts through an opaque key-value
// store keyed by layout id. Backends share one JSON codec so a layout written
// by one backend round-trips through any other; panels and widgets stay
// ordered sequences in the serialized form.
package layoutstore

import (
	"context"
	"encoding/json"
	"errors"

	"griddeck/internal/dashboard"
	"griddeck/internal/jsonutil"
)

// ErrNotFound is returned when a layout id has no stored record.
var ErrNotFound = errors.New("layout not found")

// Store is the persistence adapter consumed by the dashboard shell.
type Store interface {
	// Load returns the layout stored under id, or ErrNotFound.
	Load(ctx context.Context, layoutID string) (dashboard.Layout, error)

	// Save writes the layout under its id, replacing any previous record.
	Save(ctx context.Context, layout dashboard.Layout) error

	// List returns all stored layouts for an owner, in stored order.
	List(ctx context.Context, ownerID string) ([]dashboard.Layout, error)

	// Delete removes a layout record. Deleting an absent id is a no-op.
	Delete(ctx context.Context, layoutID string) error
}

// encode serializes a layout for storage.
func encode(l dashboard.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// decode deserializes a stored layout record.
func decode(data []byte) (dashboard.Layout, error) {
	var l dashboard.Layout
	if err := jsonutil.UnmarshalWithContext(data, &l, "decode layout"); err != nil {
		return dashboard.Layout{}, err
	}
	return l, nil
}
