package dashboard

import "errors"

// Sentinel errors for store operations. All are recovered locally: the
// requested mutation is rejected and state stays unchanged.
var (
	// ErrInvalidPlacement is returned when a target rect is occupied or out
	// of bounds and no free slot could be resolved.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrUnknownWidgetType is returned when a type tag is not in the catalog.
	ErrUnknownWidgetType = errors.New("unknown widget type")

	// ErrUnknownPanel is returned when an operation references a panel id
	// that does not exist in the active layout.
	ErrUnknownPanel = errors.New("unknown panel")

	// ErrUnknownWidget is returned when a move/resize/settings operation
	// references a widget id that does not exist.
	ErrUnknownWidget = errors.New("unknown widget")

	// ErrUnknownLayout is returned when switching to a layout id that has
	// not been created or loaded.
	ErrUnknownLayout = errors.New("unknown layout")
)
