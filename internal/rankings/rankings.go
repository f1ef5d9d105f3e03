// Package rankings renders the BOTW ranking range as a plain-text table.
package rankings

import (
	"strings"
	"unicode/utf8"

	"botw/internal/structures"
)

const (
	HeaderSeparator = " | "
	// DataSeparator is wider than HeaderSeparator, so the two lines do not
	// line up in a monospace font. Channels are used to this layout.
	DataSeparator = "    |    "
	NoData        = "No data found."
)

// Render returns the message posted for a snapshot, or NoData when the range was empty.
func Render(title string, snap *structures.RankingSnapshot) string {
	if snap.Empty() {
		return NoData
	}
	return Format(title, snap.Header, snap.Data)
}

// Format centers every cell of both rows to the widest cell and joins them into
// "<title>\n<header>\n<data>".
func Format(title string, header, data []string) string {
	width := MaxLength(header, data)

	return title + "\n" +
		strings.Join(centerAll(header, width), HeaderSeparator) + "\n" +
		strings.Join(centerAll(data, width), DataSeparator)
}

// MaxLength is the longest cell, in characters, across all rows.
func MaxLength(rows ...[]string) int {
	max := 0
	for _, row := range rows {
		for _, cell := range row {
			if n := utf8.RuneCountInString(cell); n > max {
				max = n
			}
		}
	}
	return max
}

// Center pads cell with floor((width-len)/2) spaces on each side and cuts the
// result to width characters. An odd difference leaves the cell one short.
func Center(cell string, width int) string {
	pad := (width - utf8.RuneCountInString(cell)) / 2
	if pad < 0 {
		pad = 0
	}
	spaces := strings.Repeat(" ", pad)
	out := []rune(spaces + cell + spaces)
	if len(out) > width {
		out = out[:width]
	}
	return string(out)
}

func centerAll(row []string, width int) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = Center(cell, width)
	}
	return out
}
