// Package glyph turns short strings into rectangular blocks of big text.
package glyph

import (
	"log"
	"strings"

	"github.com/brianoflondon/clock-dashboard/internal/common"
)

// Renderer produces a multi-line big-text rendering of text in the named font.
type Renderer interface {
	Render(text, font string) (string, error)
}

// Block is a rectangular rendering: every line is exactly Width cells wide.
// A block never has zero lines; an empty rendering is a single empty line.
type Block struct {
	Lines  []string
	Width  int
	Height int
}

// Empty reports whether the block has nothing to draw.
func (b Block) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Line returns line i, or a blank line of the block's width when i is past
// the bottom of the block.
func (b Block) Line(i int) string {
	if i >= 0 && i < len(b.Lines) {
		return b.Lines[i]
	}
	return strings.Repeat(" ", b.Width)
}

var emptyBlock = Block{Lines: []string{""}, Width: 0, Height: 1}

// Builder wraps a Renderer and normalises its output into Blocks.
type Builder struct {
	renderer Renderer
}

// NewBuilder creates a new Builder.
func NewBuilder(r Renderer) *Builder {
	return &Builder{renderer: r}
}

// Build renders text once and returns the trimmed, right-padded block.
func (b *Builder) Build(text, font string) Block {
	if b.renderer == nil {
		return emptyBlock
	}
	out, err := b.renderer.Render(text, font)
	if err != nil {
		log.Printf("ERROR: glyph render of %q in font %q failed: %v", text, font, err)
		return emptyBlock
	}
	return normalize(strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n"))
}

// normalize trims blank rows from both ends and pads the rest to equal width.
func normalize(lines []string) Block {
	start, end := 0, len(lines)
	for start < end && common.IsBlank(lines[start]) {
		start++
	}
	for end > start && common.IsBlank(lines[end-1]) {
		end--
	}
	if start == end {
		return emptyBlock
	}

	trimmed := make([]string, 0, end-start)
	width := 0
	for _, line := range lines[start:end] {
		trimmed = append(trimmed, line)
		width = max(width, common.Width(line))
	}
	for i, line := range trimmed {
		trimmed[i] = common.PadRight(line, width)
	}

	return Block{Lines: trimmed, Width: width, Height: len(trimmed)}
}
