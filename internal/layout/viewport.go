package layout

import (
	"math"

	"github.com/brianoflondon/clock-dashboard/internal/common"
)

// Viewport is the drawable region for one frame. Height and Width are the full
// grid; Usable is the number of rows from the top the dashboard may use.
type Viewport struct {
	Height int
	Width  int
	Usable int
}

// NewViewport derives the usable region from fresh grid dimensions.
func NewViewport(height, width int, ratio float64, minHeight int) Viewport {
	return Viewport{
		Height: height,
		Width:  width,
		Usable: UsableHeight(height, ratio, minHeight),
	}
}

// UsableHeight returns clamp(round(height*ratio), minHeight, height).
// For any height >= 1 the result is within [1, height].
func UsableHeight(height int, ratio float64, minHeight int) int {
	if height < 1 {
		return 0
	}
	rows := int(math.Round(float64(height) * ratio))
	return common.Clamp(rows, max(1, minHeight), height)
}

// HeaderY is the row reserved for the header line.
func (v Viewport) HeaderY() int {
	return v.Usable - 1
}

// Degenerate reports whether the grid is too small for anything but the
// too-small notice.
func (v Viewport) Degenerate() bool {
	return v.Usable <= 1 || v.Width <= minWidth
}
