package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"github.com/twosigma/ngrid/internal/gridlib"
)

// GridWidget is a custom table component that paints rendered frames
// from the grid view directly onto the tcell screen.
type GridWidget struct {
	*tview.Box

	app  *App
	view *gridlib.GridView
}

func NewGridWidget(app *App, view *gridlib.GridView) *GridWidget {
	return &GridWidget{
		Box:  tview.NewBox(),
		app:  app,
		view: view,
	}
}

var styleTags = map[gridlib.StyleTag]tcell.Style{
	gridlib.StyleDefault:      tcell.StyleDefault,
	gridlib.StyleFrozen:       tcell.StyleDefault.Foreground(tcell.ColorBlue),
	gridlib.StyleSeparator:    tcell.StyleDefault,
	gridlib.StyleCursor:       tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	gridlib.StyleSelection:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue),
	gridlib.StyleFrozenCursor: tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorWhite),
	gridlib.StyleFooter:       tcell.StyleDefault.Reverse(true),
}

func styleFor(kind gridlib.LineKind, tag gridlib.StyleTag) tcell.Style {
	style := styleTags[tag]
	if kind == gridlib.LineHeader {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// Draw renders one frame of the grid.
func (w *GridWidget) Draw(screen tcell.Screen) {
	w.Box.DrawForSubclass(screen, w)
	x, y, width, height := w.GetInnerRect()
	if width < 1 || height < 1 {
		return
	}

	w.view.SetGeometry(width, height)
	frame := w.view.RenderFrame()
	for i, line := range frame.Lines {
		if i >= height {
			break
		}
		cx := x
		for _, seg := range line.Segments {
			cx = printSegment(screen, cx, y+i, x+width, seg.Text, styleFor(line.Kind, seg.Style))
			if cx >= x+width {
				break
			}
		}
	}
}

// printSegment writes text at (x, y), clipping at maxX, and returns
// the new x position.
func printSegment(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > maxX {
			return maxX
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

// InputHandler routes keys to the navigation engine.
func (w *GridWidget) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return w.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		w.app.handleKey(event)
	})
}
