package gridlib

import (
	"fmt"
	"math"
	"regexp"
)

// Separator glyphs cycled by the separator toggle.
var separators = []string{" ", "┊", "  ", "   ", " ┊ "}

// GridView owns the viewport state for a model: scroll offsets, frozen
// columns, cursor, search. It is pure state; rendering is in
// RenderFrame and painting belongs to the caller. Exactly one actor
// may mutate a GridView at a time.
type GridView struct {
	model      Model
	cfg        Config
	formatters []Formatter

	numFrozen int
	col0      int // first non-frozen column shown
	idx0      int // first visible row
	idx1      int // one past the last visible row

	cursorRow  int
	cursorCol  int
	showCursor bool
	showHeader bool
	showFooter bool
	separator  string

	width    int
	height   int
	numRows  int // visible data rows
	numExtra int

	search *regexp.Regexp
	flash  string
}

// NewGridView builds a view over the model with numFrozen frozen
// columns and the model's default formatters.
func NewGridView(model Model, cfg Config, numFrozen int) (*GridView, error) {
	if numFrozen < 0 || numFrozen > model.NumCols() {
		return nil, fmt.Errorf(
			"%w: %d frozen columns of %d", ErrInvalidArgument, numFrozen, model.NumCols())
	}
	formatters, err := model.Formatters(cfg)
	if err != nil {
		return nil, err
	}
	v := &GridView{
		model:      model,
		cfg:        cfg,
		formatters: formatters,
		numFrozen:  numFrozen,
		col0:       numFrozen,
		showCursor: cfg.ShowCursor,
		showHeader: cfg.ShowHeader,
		showFooter: cfg.ShowFooter,
		separator:  cfg.Separator,
	}
	v.SetGeometry(80, 24)
	return v, nil
}

// SetGeometry tells the view the available screen size. Call on every
// resize.
func (v *GridView) SetGeometry(width, height int) {
	v.width = width
	v.height = height
	extra := 0
	if v.showHeader {
		extra += 1 + len(v.model.TitleLines())
	}
	if v.showFooter {
		extra++
	}
	v.numExtra = extra
	v.numRows = height - extra
	if v.numRows < 1 {
		v.numRows = 1
	}
	v.idx1 = v.idx0 + v.numRows
}

func (v *GridView) RowOffset() int      { return v.idx0 }
func (v *GridView) ColOffset() int      { return v.col0 }
func (v *GridView) Cursor() (int, int)  { return v.cursorRow, v.cursorCol }
func (v *GridView) CursorShown() bool   { return v.showCursor }
func (v *GridView) PageRows() int       { return v.numRows }
func (v *GridView) Model() Model        { return v.model }
func (v *GridView) FormatterAt(col int) Formatter {
	return v.formatters[col]
}

// SetFlash sets a transient status message shown in the next footer.
func (v *GridView) SetFlash(msg string) { v.flash = msg }

// lastCol returns the rightmost column that fits on screen, filling
// greedily left to right after reserving the frozen columns' width.
func (v *GridView) lastCol() int {
	sep := len([]rune(v.separator))
	x := 0
	for _, f := range v.formatters[:v.numFrozen] {
		x += f.Width() + sep
	}
	for c := v.col0; c < v.model.NumCols(); c++ {
		x += v.formatters[c].Width() + sep
		if x > v.width {
			return c - 1
		}
	}
	return v.model.NumCols() - 1
}

// MoveTo scrolls the viewport so that row is the first visible row,
// clamped to valid offsets. When the model is done the offset never
// exceeds rowCount - viewportHeight.
func (v *GridView) MoveTo(row int) {
	if row < 0 {
		row = 0
	}
	if v.model.Done() {
		max := v.model.NumRows() - v.numRows
		if max < 0 {
			max = 0
		}
		if row > max {
			row = max
		}
	}
	v.idx0 = row
	v.idx1 = row + v.numRows
	if v.model.Done() && v.idx1 > v.model.NumRows() {
		v.idx1 = v.model.NumRows()
	}
	if v.idx1 <= v.idx0 {
		v.idx1 = v.idx0 + 1
	}
	v.cursorRow = clip(v.idx0, v.cursorRow, v.idx1-1)
}

// MoveBy scrolls by a row delta.
func (v *GridView) MoveBy(rows int) {
	v.MoveTo(v.idx0 + rows)
}

// MoveToCol makes col the first non-frozen column shown, clamped to
// [numFrozen, numCols).
func (v *GridView) MoveToCol(col int) {
	v.col0 = clip(v.numFrozen, col, v.model.NumCols()-1)
	v.cursorCol = clip(v.col0, v.cursorCol, maxInt(v.col0, v.lastCol()))
}

// Move applies a relative movement. In cursor mode the cursor cell
// moves and the viewport scrolls only as far as needed to keep it
// visible; otherwise the viewport itself scrolls.
func (v *GridView) Move(dr, dc int) {
	if v.showCursor {
		r := clip(0, v.cursorRow+dr, v.model.NumRows()-1)
		c := clip(0, v.cursorCol+dc, v.model.NumCols()-1)
		if r < v.idx0 {
			v.MoveBy(r - v.idx0)
		} else if r >= v.idx1 {
			v.MoveBy(r - v.idx1 + 1)
		}
		if c < v.col0 {
			v.MoveToCol(c)
		}
		for c > v.lastCol() && v.col0 < c {
			v.MoveToCol(v.col0 + 1)
		}
		v.cursorRow, v.cursorCol = r, c
	} else {
		if dr != 0 {
			v.MoveBy(dr)
		}
		if dc != 0 {
			v.MoveToCol(v.col0 + dc)
		}
	}
}

// MoveTop jumps to the first row.
func (v *GridView) MoveTop() {
	if v.showCursor {
		v.Move(-v.cursorRow, 0)
	} else {
		v.MoveTo(0)
	}
}

// MoveBottom jumps to the last row read in so far.
func (v *GridView) MoveBottom() {
	if v.showCursor {
		v.Move(v.model.NumRows()-1-v.cursorRow, 0)
	} else {
		v.MoveTo(v.model.NumRows() - v.numRows)
	}
}

// MoveToEnd reads the source to exhaustion and jumps to the last row.
func (v *GridView) MoveToEnd() {
	idx := v.model.EnsureRows(math.MaxInt)
	v.MoveTo(idx - v.numRows)
}

func (v *GridView) ToggleCursor() { v.showCursor = !v.showCursor }

func (v *GridView) ToggleSeparator() {
	i := -1
	for j, s := range separators {
		if s == v.separator {
			i = j
			break
		}
	}
	v.separator = separators[(i+1)%len(separators)]
}

func (v *GridView) ToggleHeader() {
	v.showHeader = !v.showHeader
	v.SetGeometry(v.width, v.height)
}

func (v *GridView) ToggleFooter() {
	v.showFooter = !v.showFooter
	v.SetGeometry(v.width, v.height)
}

// ChangeSize grows or shrinks the field size of the formatter at the
// cursor's column. Only effective in cursor mode and only for
// formatters with an adjustable size.
func (v *GridView) ChangeSize(delta int) {
	if !v.showCursor {
		return
	}
	f, ok := v.formatters[v.cursorCol].(SizeAdjuster)
	if !ok {
		return
	}
	size := f.Size() + delta
	if size < 1 {
		size = 1
	}
	v.formatters[v.cursorCol] = f.WithSize(size)
}

// ChangePrecision grows or shrinks the fractional precision of the
// formatter at the cursor's column. The floor is "no fractional part",
// not a negative precision.
func (v *GridView) ChangePrecision(delta int) {
	if !v.showCursor {
		return
	}
	f, ok := v.formatters[v.cursorCol].(PrecisionAdjuster)
	if !ok {
		return
	}
	precision := f.Precision()
	if precision == NoPrecision {
		precision = 0
	}
	precision += delta
	if precision <= 0 {
		precision = NoPrecision
	}
	v.formatters[v.cursorCol] = f.WithPrecision(precision)
}

// Search compiles a pattern and scans for its first occurrence in the
// given direction, including the current line. An empty pattern clears
// the search.
func (v *GridView) Search(pattern string, dir int) error {
	if pattern == "" {
		v.search = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	v.search = re
	v.NextMatch(dir, true, false)
	return nil
}

// NextMatch scans rows from the current position for the active search
// pattern, testing each cell's formatted text. Scanning forward past
// the last materialized row pulls more rows before concluding "not
// found"; exhaustion is a flash message, not an error.
func (v *GridView) NextMatch(dir int, includeCurrent, scanToColumn bool) {
	if v.search == nil {
		return
	}
	i := v.idx0
	if !includeCurrent && !scanToColumn {
		i += dir
	}
	for {
		if i < 0 {
			v.flash = "Pattern not found"
			return
		}
		if i >= v.model.NumRows() {
			v.model.EnsureRows(i)
			if i >= v.model.NumRows() {
				v.flash = "Pattern not found"
				return
			}
		}
		row, err := v.model.Row(i)
		if err != nil {
			v.flash = "Pattern not found"
			return
		}
		cols := v.model.NumCols()
		for n := 0; n < cols; n++ {
			j := n
			if dir < 0 {
				j = cols - 1 - n
			}
			if scanToColumn && i == v.idx0 && j <= v.col0 {
				continue
			}
			if v.search.MatchString(v.formatters[j].Format(row[j])) {
				v.MoveTo(i)
				if scanToColumn {
					v.MoveToCol(j)
				}
				return
			}
		}
		i += dir
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
