package screen

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/brianoflondon/clock-dashboard/internal/common"
)

// Terminal is a Surface backed by a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	plain tcell.Style
	bold  tcell.Style
}

// NewTerminal takes over the controlling terminal. Call Close to restore it.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return newTerminal(s)
}

func newTerminal(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	t := &Terminal{
		screen: s,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
		plain:  tcell.StyleDefault,
		bold:   tcell.StyleDefault.Bold(true),
	}
	// tcell reads input on its own goroutine; this only forwards events.
	go s.ChannelEvents(t.events, t.quit)
	return t, nil
}

// Size implements Surface.
func (t *Terminal) Size() (height, width int) {
	w, h := t.screen.Size()
	return h, w
}

// Erase implements Surface.
func (t *Terminal) Erase() {
	t.screen.Clear()
}

// Write implements Surface.
func (t *Terminal) Write(y, x int, text string, emphasis bool) {
	w, h := t.screen.Size()
	if y < 0 || y >= h {
		return
	}
	text, ok := common.ClipText(text, x, w)
	if !ok {
		return
	}

	style := t.plain
	if emphasis {
		style = t.bold
	}
	col := x
	for _, r := range text {
		t.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// Refresh implements Surface.
func (t *Terminal) Refresh() {
	t.screen.Show()
}

// PollKey implements Surface. Resize events are handled here and never
// reported as keys.
func (t *Terminal) PollKey(timeout time.Duration) (rune, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return 0, false
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyRune:
					return ev.Rune(), true
				case tcell.KeyCtrlC:
					return KeyInterrupt, true
				default:
					return 0, true
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-timer.C:
			return 0, false
		}
	}
}

// Close stops event forwarding and restores the terminal.
func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
}
