package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `
                        SUMMARY OF NGRID COMMANDS

  h                  Display this help
  q Q                Exit
-----------------------------------------------------------------------

                               MOVING

  e j DownArrow RET  Forward  one line
  y k UpArrow        Backward one line
  f z PgDn SPACE     Forward  one window
  b w PgUp           Backward one window
  d                  Forward  one half-window
  u                  Backward one half-window
  p g Home           Jump to first row
  P                  Jump to first row and leftmost column
  G                  Jump to last row of file
  End                Jump to last row read in so far
-----------------------------------------------------------------------

                              SEARCHING

  /pattern           Search forward for next matching line
  ?pattern           Search backward for previous matching line
  n                  Repeat previous search forwards
  N                  Repeat previous search backwards
  c                  Search forwards and scan to matching column
  C                  Search backwards and scan to matching column
-----------------------------------------------------------------------

                               DISPLAY

  Insert             Toggle the cell cursor
  |                  Cycle the column separator
  H                  Toggle the header row
  F                  Toggle the footer line
  , .                Shrink / grow the cursor column's field size
  < >                Shrink / grow the cursor column's precision


Press any key when done.`

func newHelpView(a *App) tview.Primitive {
	help := tview.NewTextView().SetText(helpText)
	help.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		a.closeHelp()
		return nil
	})
	return help
}
