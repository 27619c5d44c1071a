package ui

import tea "github.com/charmbracelet/bubbletea"

// StateChangedMsg tells the inventory view to pull a fresh snapshot.
type StateChangedMsg struct{}

// ChangeFeed bridges controller notifications into the bubbletea loop.
// Bursts of notifications collapse into one pending message.
type ChangeFeed struct {
	ch chan struct{}
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{ch: make(chan struct{}, 1)}
}

// Notify never blocks; pass it as the controller's OnChange.
func (f *ChangeFeed) Notify() {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// Next waits for the next notification.
func (f *ChangeFeed) Next() tea.Cmd {
	return func() tea.Msg {
		<-f.ch
		return StateChangedMsg{}
	}
}
