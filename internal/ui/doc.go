// Package ui implements the griddeck terminal shell with Bubble Tea.
//
// Core abstractions:
//   - View: the unit of composition; each screen or modal is a View with its
//     own model, update, and view.
//   - AppModel: the root model; owns the dashboard store, the drag
//     coordinator, and the keybind handler, and switches between modes.
//   - KeybindRegistry/KeyHandler: the keyboard dispatcher mapping key
//     sequences to store and history calls. Bindings never fire while a text
//     input has focus.
//
// All store mutations run synchronously inside Update, so the Bubble Tea
// event loop is the serializer the store's concurrency model assumes.
package ui
