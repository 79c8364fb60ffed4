package gridlib

import (
	"fmt"
	"strings"
)

// StyleTag classifies a rendered segment; the terminal layer maps tags
// to concrete colors and attributes.
type StyleTag int

const (
	StyleDefault StyleTag = iota
	StyleFrozen
	StyleSeparator
	StyleCursor       // cursor row or column highlight
	StyleSelection    // the cursor cell itself
	StyleFrozenCursor // frozen cell on the cursor row/column
	StyleFooter
)

// LineKind classifies a rendered line.
type LineKind int

const (
	LineTitle LineKind = iota
	LineHeader
	LineData
	LineFooter
)

// Segment is a run of pre-formatted fixed-width text with one style.
type Segment struct {
	Text  string
	Style StyleTag
}

// Line is one screen row of segments.
type Line struct {
	Kind     LineKind
	Segments []Segment
}

// Frame is a fully rendered screen: title lines, optional header, data
// rows, optional footer.
type Frame struct {
	Lines []Line
}

// RenderFrame composes the current viewport into a frame. This is the
// only render-path operation that may read more rows from the model.
func (v *GridView) RenderFrame() Frame {
	// Materialize the rows this frame needs; the viewport may have
	// outrun the rows read so far.
	if v.idx1 >= v.model.NumRows() {
		v.model.EnsureRows(v.idx1)
		if v.model.Done() {
			// The source ran out before filling the window; re-clamp.
			v.MoveTo(v.idx0)
		}
	}

	frame := Frame{}
	if v.showHeader {
		for _, title := range v.model.TitleLines() {
			frame.Lines = append(frame.Lines, Line{
				Kind:     LineTitle,
				Segments: []Segment{{Text: title, Style: StyleDefault}},
			})
		}
		frame.Lines = append(frame.Lines, v.renderHeader())
	}
	for i := 0; i < v.numRows; i++ {
		frame.Lines = append(frame.Lines, v.renderRow(v.idx0+i))
	}
	if v.showFooter {
		frame.Lines = append(frame.Lines, v.renderFooter())
	}
	return frame
}

// visibleCols yields the frozen columns followed by the scrollable
// window.
func (v *GridView) visibleCols() []int {
	cols := make([]int, 0, v.model.NumCols())
	for c := 0; c < v.numFrozen; c++ {
		cols = append(cols, c)
	}
	for c := v.col0; c < v.model.NumCols(); c++ {
		cols = append(cols, c)
	}
	return cols
}

func (v *GridView) renderHeader() Line {
	line := Line{Kind: LineHeader}
	ellipsis := []rune(v.cfg.Ellipsis)
	x := 0
	for _, c := range v.visibleCols() {
		frozen := c < v.numFrozen
		atCursor := v.showCursor && c == v.cursorCol
		width := v.formatters[c].Width()
		name := palideRunes(
			v.model.Names()[c], width, truncRunes(ellipsis, width), ' ', 0.7, true)

		style := StyleDefault
		switch {
		case frozen && atCursor:
			style = StyleFrozenCursor
		case atCursor:
			style = StyleCursor
		case frozen:
			style = StyleFrozen
		}
		line.Segments = append(line.Segments, Segment{Text: name, Style: style})
		x += width
		if x >= v.width {
			break
		}
		line.Segments = append(line.Segments, Segment{Text: v.separator, Style: StyleSeparator})
		x += len([]rune(v.separator))
		if x >= v.width {
			break
		}
	}
	return line
}

func (v *GridView) renderRow(idx int) Line {
	line := Line{Kind: LineData}
	var row []any
	if idx < v.model.NumRows() {
		row, _ = v.model.Row(idx)
	}
	x := 0
	for _, c := range v.visibleCols() {
		frozen := c < v.numFrozen
		atCursor := v.showCursor && (idx == v.cursorRow || c == v.cursorCol)
		atSelect := v.showCursor && idx == v.cursorRow && c == v.cursorCol

		var cell string
		if row == nil {
			// Past the end of the data.
			if c == 0 {
				cell = "~"
			}
		} else {
			cell = v.formatters[c].Format(row[c])
		}

		style := StyleDefault
		switch {
		case atSelect:
			style = StyleSelection
		case frozen && atCursor:
			style = StyleFrozenCursor
		case atCursor:
			style = StyleCursor
		case frozen:
			style = StyleFrozen
		}
		line.Segments = append(line.Segments, Segment{Text: cell, Style: style})
		x += len([]rune(cell))
		if x >= v.width {
			break
		}

		sepStyle := StyleSeparator
		if v.showCursor && idx == v.cursorRow {
			sepStyle = StyleCursor
		}
		line.Segments = append(line.Segments, Segment{Text: v.separator, Style: sepStyle})
		x += len([]rune(v.separator))
		if x >= v.width {
			break
		}
	}
	return line
}

func (v *GridView) renderFooter() Line {
	var status string
	if v.flash != "" {
		status = v.flash
		v.flash = ""
	} else {
		filename := v.model.Filename()
		sep := ""
		if filename != "" {
			sep = " "
		}
		status = fmt.Sprintf(
			"%s%slines %d-%d/%d", filename, sep, v.idx0, v.idx1, v.model.NumRows())
		if v.model.Done() {
			frac := 0.0
			if v.model.NumRows() > 0 {
				frac = float64(v.idx1) / float64(v.model.NumRows())
			}
			status += fmt.Sprintf(" %.0f%%", 100*frac)
		} else {
			status += "+"
		}
	}

	value := ""
	if v.showCursor && v.cursorRow < v.model.NumRows() {
		if row, err := v.model.Row(v.cursorRow); err == nil && v.cursorCol < len(row) {
			max := v.width - len([]rune(status)) - 4
			if max >= len([]rune(v.cfg.Ellipsis)) {
				value = elideRunes(toText(row[v.cursorCol]), max, []rune(v.cfg.Ellipsis), 1.0)
			}
		}
	}

	gap := v.width - len([]rune(status)) - len([]rune(value)) - 1
	if gap < 1 {
		gap = 1
	}
	return Line{
		Kind: LineFooter,
		Segments: []Segment{{
			Text:  status + strings.Repeat(" ", gap) + value,
			Style: StyleFooter,
		}},
	}
}
