package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/twosigma/ngrid/internal/gridlib"
)

const (
	pageGrid = "grid"
	pageHelp = "help"
)

// App composes the tview application: the grid widget, a transient
// search prompt on the bottom line, and the help page.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	layout *tview.Flex
	grid   *GridWidget
	search *tview.InputField
	view   *gridlib.GridView

	searchDir int
}

func NewApp(view *gridlib.GridView) *App {
	a := &App{
		app:  tview.NewApplication(),
		view: view,
	}
	a.grid = NewGridWidget(a, view)
	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.grid, 0, 1, true)
	a.pages = tview.NewPages().
		AddPage(pageGrid, a.layout, true, true).
		AddPage(pageHelp, newHelpView(a), true, false)
	a.app.SetRoot(a.pages, true)
	return a
}

// Run starts the event loop. With useTTY the screen is opened on
// /dev/tty so that stdin stays available for piped data.
func (a *App) Run(useTTY bool) error {
	if useTTY {
		tty, err := tcell.NewDevTty()
		if err != nil {
			return err
		}
		screen, err := tcell.NewTerminfoScreenFromTty(tty)
		if err != nil {
			return err
		}
		a.app.SetScreen(screen)
	}
	return a.app.Run()
}

// startSearch opens the search prompt. dir is +1 for "/" and -1 for "?".
func (a *App) startSearch(dir int) {
	if a.search != nil {
		return
	}
	a.searchDir = dir
	prompt := "/"
	if dir < 0 {
		prompt = "?"
	}
	a.search = tview.NewInputField().
		SetLabel(prompt).
		SetFieldBackgroundColor(tcell.ColorDefault)
	a.search.SetDoneFunc(func(key tcell.Key) {
		pattern := a.search.GetText()
		a.closeSearch()
		if key != tcell.KeyEnter {
			return
		}
		if err := a.view.Search(pattern, a.searchDir); err != nil {
			a.view.SetFlash("Bad pattern")
		}
	})
	a.layout.AddItem(a.search, 1, 0, true)
	a.app.SetFocus(a.search)
}

func (a *App) closeSearch() {
	if a.search == nil {
		return
	}
	a.layout.RemoveItem(a.search)
	a.search = nil
	a.app.SetFocus(a.grid)
}

func (a *App) showHelp() {
	a.pages.SwitchToPage(pageHelp)
}

func (a *App) closeHelp() {
	a.pages.SwitchToPage(pageGrid)
	a.app.SetFocus(a.grid)
}
