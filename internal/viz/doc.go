// Package viz draws the wheel in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: menu that opens the wheel screen on demand
//   - [Model]: the wheel screen with its stats panel and result card
//   - [Canvas]: braille-based pixel canvas with per-cell colors
//   - [Renderer]: full repaint of a wheel at a given angle
//   - [Layout]: surface geometry derived from the terminal size
//
// # Key Bindings
//
//	Space - Spin (ignored while spinning)
//	T     - Cycle color themes
//	Esc   - Back to the menu
//	?     - Show help overlay
//	Q     - Quit
package viz
