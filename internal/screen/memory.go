package screen

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/brianoflondon/clock-dashboard/internal/common"
)

// Cell is one position of a Memory grid.
type Cell struct {
	Rune     rune
	Emphasis bool
}

// Memory is an in-process Surface. Keys are queued with PushKey and returned
// by PollKey without waiting.
type Memory struct {
	height int
	width  int
	cells  [][]Cell
	keys   []rune

	// Refreshes counts calls to Refresh.
	Refreshes int
}

// NewMemory creates a blank grid of the given size.
func NewMemory(height, width int) *Memory {
	m := &Memory{}
	m.Resize(height, width)
	return m
}

// Resize changes the grid size and blanks it.
func (m *Memory) Resize(height, width int) {
	m.height, m.width = max(0, height), max(0, width)
	m.Erase()
}

// PushKey queues a key press.
func (m *Memory) PushKey(r rune) {
	m.keys = append(m.keys, r)
}

// Size implements Surface.
func (m *Memory) Size() (height, width int) {
	return m.height, m.width
}

// Erase implements Surface.
func (m *Memory) Erase() {
	m.cells = make([][]Cell, m.height)
	for y := range m.cells {
		row := make([]Cell, m.width)
		for x := range row {
			row[x] = Cell{Rune: ' '}
		}
		m.cells[y] = row
	}
}

// Write implements Surface.
func (m *Memory) Write(y, x int, text string, emphasis bool) {
	if y < 0 || y >= m.height {
		return
	}
	text, ok := common.ClipText(text, x, m.width)
	if !ok {
		return
	}
	col := x
	for _, r := range text {
		m.cells[y][col] = Cell{Rune: r, Emphasis: emphasis}
		col += max(1, runewidth.RuneWidth(r))
		if col >= m.width {
			break
		}
	}
}

// Refresh implements Surface.
func (m *Memory) Refresh() {
	m.Refreshes++
}

// PollKey implements Surface.
func (m *Memory) PollKey(time.Duration) (rune, bool) {
	if len(m.keys) == 0 {
		return 0, false
	}
	r := m.keys[0]
	m.keys = m.keys[1:]
	return r, true
}

// Row returns row y with trailing blanks removed.
func (m *Memory) Row(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range m.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// At returns the cell at (y, x), or a zero Cell outside the grid.
func (m *Memory) At(y, x int) Cell {
	if y < 0 || y >= m.height || x < 0 || x >= m.width {
		return Cell{}
	}
	return m.cells[y][x]
}
