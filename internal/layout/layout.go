// layout.go computes where every element of a dashboard frame goes.
//
// The art row is laid out left to right: the clock block, the seconds text,
// the date block and up to three temperature blocks. When the row is wider
// than the grid the temperature blocks are dropped from the right (+4h, then
// +2h, then now). If the clock and date still do not fit, the whole art row
// is replaced by a centred plain-text time and date.
//
// Everything is computed against a fresh Viewport each frame and nothing is
// kept between calls. Placements are clipped here, so a Result never reaches
// past the right edge or onto the header row.
package layout

import (
	"github.com/brianoflondon/clock-dashboard/internal/common"
	"github.com/brianoflondon/clock-dashboard/internal/glyph"
)

// TooSmallMessage is the only thing drawn when the grid is degenerate.
const TooSmallMessage = "Terminal too small"

// Horizontal spacing, in cells.
const (
	clockX        = 1
	secondsGap    = 2
	dateGap       = 3
	tempsGap      = 4
	tempSpacing   = 5
	rightMargin   = 1
	summaryIndent = 2
)

// Vertical budget, in rows.
const (
	minWidth            = 10
	reservedRows        = 2
	reservedRowsLabeled = 3
	summaryGap          = 3
	summaryMaxLines     = 2
)

// Placement is a single write instruction.
type Placement struct {
	Y        int
	X        int
	Text     string
	Emphasis bool
}

// Result is the output of one layout pass. ArtBottomY is nil when no art or
// fallback text was placed.
type Result struct {
	Placements []Placement
	ArtBottomY *int
}

// TempColumn is a temperature block with the label drawn beneath it.
type TempColumn struct {
	Block glyph.Block
	Label string
}

// Frame carries everything the layout needs for one refresh.
type Frame struct {
	Clock   glyph.Block
	Date    glyph.Block
	Seconds string
	Weekday string

	// PlainTime and PlainDate are used when the art row does not fit.
	PlainTime string
	PlainDate string

	// Temps holds the now, +2h and +4h columns in that order.
	Temps []TempColumn

	Header  string
	Summary string
	Labels  bool
}

type column struct {
	block glyph.Block
	x     int
	label string
}

type arrangement struct {
	clock    column
	date     column
	secondsX int
	temps    []column
}

// extent is the first column to the right of everything in the row.
func (a arrangement) extent(secondsWidth int) int {
	end := max(a.clock.x+a.clock.block.Width, a.secondsX+secondsWidth, a.date.x+a.date.block.Width)
	for _, c := range a.temps {
		end = max(end, c.x+c.block.Width)
	}
	return end
}

// Compute lays out one frame.
func Compute(vp Viewport, f Frame) Result {
	if vp.Degenerate() {
		return tooSmall(vp)
	}

	e := &emitter{width: vp.Width, headerY: vp.HeaderY()}

	var bottom *int
	if a, ok := arrange(f, vp.Width); ok {
		bottom = e.art(f, a, vp.Usable)
	} else {
		bottom = e.plain(f, vp)
	}
	e.summary(f.Summary, bottom)
	e.header(f.Header)

	return Result{Placements: e.out, ArtBottomY: bottom}
}

func tooSmall(vp Viewport) Result {
	text, ok := common.ClipText(TooSmallMessage, 0, vp.Width)
	if !ok {
		return Result{}
	}
	return Result{Placements: []Placement{{Y: 0, X: 0, Text: text}}}
}

// arrange applies the degradation ladder. It reports false when even the
// clock, seconds and date group does not fit.
func arrange(f Frame, width int) (arrangement, bool) {
	if f.Clock.Empty() && f.Date.Empty() {
		return arrangement{}, false
	}

	secondsWidth := common.Width(f.Seconds)
	temps := f.Temps
	if len(temps) > 3 {
		temps = temps[:3]
	}
	for {
		a := place(f, temps)
		if a.extent(secondsWidth)+rightMargin <= width {
			return a, true
		}
		if len(temps) == 0 {
			return arrangement{}, false
		}
		temps = temps[:len(temps)-1]
	}
}

func place(f Frame, temps []TempColumn) arrangement {
	a := arrangement{clock: column{block: f.Clock, x: clockX}}
	a.secondsX = a.clock.x + f.Clock.Width + secondsGap
	a.date = column{block: f.Date, x: a.secondsX + common.Width(f.Seconds) + dateGap}

	x := a.date.x + f.Date.Width + tempsGap
	for _, t := range temps {
		if t.Block.Empty() {
			continue
		}
		a.temps = append(a.temps, column{block: t.Block, x: x, label: t.Label})
		x += t.Block.Width + tempSpacing
	}
	return a
}

type emitter struct {
	width   int
	headerY int
	out     []Placement
}

// put clips against the right edge and the header row.
func (e *emitter) put(y, x int, text string, emphasis bool) {
	e.putWithin(y, x, text, e.width, emphasis)
}

func (e *emitter) putWithin(y, x int, text string, limit int, emphasis bool) {
	if y < 0 || y >= e.headerY {
		return
	}
	clipped, ok := common.ClipText(text, x, min(limit, e.width))
	if !ok {
		return
	}
	e.out = append(e.out, Placement{Y: y, X: x, Text: clipped, Emphasis: emphasis})
}

func (e *emitter) art(f Frame, a arrangement, usable int) *int {
	reserved := reservedRows
	if f.Labels {
		reserved = reservedRowsLabeled
	}
	areaRows := max(1, usable-reserved)

	tallest := max(f.Clock.Height, f.Date.Height)
	groupHeight := tallest
	for _, c := range a.temps {
		tallest = max(tallest, c.block.Height)
	}
	drawRows := min(tallest, areaRows)

	for i := 0; i < drawRows; i++ {
		e.put(i, a.clock.x, a.clock.block.Line(i), true)
		e.put(i, a.date.x, a.date.block.Line(i), false)
		for _, c := range a.temps {
			e.put(i, c.x, c.block.Line(i), false)
		}
	}

	bottom := drawRows - 1
	e.put(min(groupHeight, drawRows)-1, a.secondsX, f.Seconds, false)

	if f.Labels {
		e.labels(f, a, bottom+1)
	}
	return &bottom
}

func (e *emitter) labels(f Frame, a arrangement, y int) {
	if y >= e.headerY {
		return
	}

	if f.Weekday != "" {
		x := max(0, a.date.x+(a.date.block.Width-common.Width(f.Weekday))/2)
		e.put(y, x, f.Weekday, false)
	}

	for i, c := range a.temps {
		limit := e.width
		if i+1 < len(a.temps) {
			limit = a.temps[i+1].x - 1
		}
		e.putWithin(y, c.x, c.label, limit, false)
	}
}

// plain is the last rung of the ladder: time and date as centred text.
func (e *emitter) plain(f Frame, vp Viewport) *int {
	innerHeight := max(0, vp.Usable-3) + 1
	timeY := max(0, innerHeight/2-1)
	dateY := timeY + 1

	e.put(timeY, max(0, (vp.Width-common.Width(f.PlainTime))/2), f.PlainTime, true)
	bottom := timeY
	if dateY < e.headerY {
		e.put(dateY, max(0, (vp.Width-common.Width(f.PlainDate))/2), f.PlainDate, false)
		bottom = dateY
	}
	return &bottom
}

func (e *emitter) summary(text string, artBottom *int) {
	if text == "" {
		return
	}
	lines := common.Wrap(text, max(10, e.width-4))
	if len(lines) > summaryMaxLines {
		lines = lines[:summaryMaxLines]
	}
	if len(lines) == 0 {
		return
	}

	start := e.headerY - len(lines)
	if artBottom != nil {
		start = *artBottom + summaryGap
	}
	if start+len(lines) > e.headerY {
		start = max(1, e.headerY-len(lines))
	}

	limit := summaryIndent + max(0, e.width-4)
	for i, line := range lines {
		e.putWithin(start+i, summaryIndent, line, limit, false)
	}
}

// header is placed last, right-aligned on the bottom row of the usable region.
func (e *emitter) header(text string) {
	x := max(0, e.width-common.Width(text)-1)
	clipped, ok := common.ClipText(text, x, e.width)
	if !ok {
		return
	}
	e.out = append(e.out, Placement{Y: e.headerY, X: x, Text: clipped})
}
