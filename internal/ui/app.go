package ui

import (
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
)

// App switches between the inventory list and a product page.
type App struct {
	list     InventoryModel
	detail   *DetailModel
	details  DetailsGetter
	renderer *glamour.TermRenderer
}

func NewApp(list InventoryModel, details DetailsGetter, renderer *glamour.TermRenderer) App {
	return App{list: list, details: details, renderer: renderer}
}

func (a App) Init() tea.Cmd {
	return a.list.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.detail == nil && msg.String() == "q" && !a.list.SearchFocused() {
			return a, tea.Quit
		}

	case OpenDetailMsg:
		if a.details == nil {
			return a, nil
		}
		d := NewDetailModel(a.details, msg.ID, a.renderer)
		a.detail = &d
		return a, d.Init()

	case BackMsg:
		a.detail = nil
		return a, nil

	case StateChangedMsg, tea.WindowSizeMsg:
		// The list keeps tracking state while a product page is open.
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	if a.detail != nil {
		d, c := a.detail.Update(msg)
		a.detail, cmd = &d, c
		return a, cmd
	}
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if a.detail != nil {
		return a.detail.View()
	}
	return a.list.View()
}
