package main

import (
	"github.com/gdamore/tcell/v2"
)

// handleKey applies one navigation command to the grid view. The
// bindings follow less(1) conventions where they apply.
func (a *App) handleKey(event *tcell.EventKey) {
	v := a.view
	page := v.PageRows()

	switch event.Key() {
	case tcell.KeyDown:
		v.Move(1, 0)
	case tcell.KeyUp:
		v.Move(-1, 0)
	case tcell.KeyLeft:
		v.Move(0, -1)
	case tcell.KeyRight:
		v.Move(0, 1)
	case tcell.KeyHome:
		v.MoveTop()
	case tcell.KeyEnd:
		v.MoveBottom()
	case tcell.KeyPgDn:
		v.MoveBy(page)
	case tcell.KeyPgUp:
		v.MoveBy(-page)
	case tcell.KeyInsert:
		v.ToggleCursor()
	case tcell.KeyEnter:
		v.MoveBy(1)

	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
		case 'e', 'j':
			v.MoveBy(1)
		case 'y', 'k':
			v.MoveBy(-1)
		case 'f', 'z', ' ':
			v.MoveBy(page)
		case 'b', 'w':
			v.MoveBy(-page)
		case 'd':
			v.MoveBy(page / 2)
		case 'u':
			v.MoveBy(-page / 2)
		case 'p', 'g':
			v.MoveTo(0)
		case 'P':
			v.MoveTo(0)
			v.MoveToCol(0)
		case 'G':
			v.MoveToEnd()
		case '/':
			a.startSearch(1)
		case '?':
			a.startSearch(-1)
		case 'n':
			v.NextMatch(1, false, false)
		case 'N':
			v.NextMatch(-1, false, false)
		case 'c':
			v.NextMatch(1, false, true)
		case 'C':
			v.NextMatch(-1, false, true)
		case 'h':
			a.showHelp()
		case '|':
			v.ToggleSeparator()
		case 'H':
			v.ToggleHeader()
		case 'F':
			v.ToggleFooter()
		case ',':
			v.ChangeSize(-1)
		case '.':
			v.ChangeSize(1)
		case '<':
			v.ChangePrecision(-1)
		case '>':
			v.ChangePrecision(1)
		}
	}
}
