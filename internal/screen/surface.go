// Package screen adapts terminal grids to the dashboard. Every Surface clips
// writes itself, so out-of-range coordinates are a no-op and never an error.
package screen

import "time"

// KeyInterrupt is reported for Ctrl-C, which raw-mode terminals deliver as a key.
const KeyInterrupt rune = 0x03

// Surface is a character grid the render loop draws into.
type Surface interface {
	// Size returns the current grid dimensions in cells.
	Size() (height, width int)
	// Erase blanks the whole grid.
	Erase()
	// Write draws text starting at (y, x), clipped to the grid.
	Write(y, x int, text string, emphasis bool)
	// Refresh flushes pending writes to the physical terminal.
	Refresh()
	// PollKey waits at most timeout for a key press.
	PollKey(timeout time.Duration) (rune, bool)
}
