package glyph

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
)

// FigletRenderer renders text with the FIGlet fonts bundled in go-figure.
type FigletRenderer struct{}

// Render implements Renderer. Unknown fonts are reported as errors instead of
// panicking; characters missing from a font are substituted by the library.
func (FigletRenderer) Render(text, font string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("figlet font %q: %v", font, r)
		}
	}()
	return figure.NewFigure(text, font, false).String(), nil
}
