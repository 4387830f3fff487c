package common

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces until it occupies width cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// ClipText truncates text so that, written at column x, it ends before column
// limit. It returns false when nothing of text would be visible.
func ClipText(text string, x, limit int) (string, bool) {
	if text == "" || x < 0 || x >= limit {
		return "", false
	}
	room := limit - x
	if Width(text) > room {
		text = runewidth.Truncate(text, room, "")
	}
	if text == "" {
		return "", false
	}
	return text, true
}

// StripNonASCII drops every rune outside the 7-bit ASCII range.
func StripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0x7f {
			return -1
		}
		return r
	}, s)
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Clamp limits v to [lo, hi]. When lo > hi, hi wins.
func Clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Wrap splits text into lines no wider than width cells, breaking on
// whitespace and splitting words that are longer than a whole line.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(text) {
		for Width(word) > width {
			if cur != "" {
				room := width - Width(cur) - 1
				if room > 0 {
					head := runewidth.Truncate(word, room, "")
					lines = append(lines, cur+" "+head)
					word = word[len(head):]
					cur = ""
					continue
				}
				lines = append(lines, cur)
				cur = ""
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// a single rune wider than the line
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		switch {
		case cur == "":
			cur = word
		case Width(cur)+1+Width(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
