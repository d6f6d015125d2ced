// Package tui provides the Bubble Tea training dashboard and the SSH server
// that exposes it to remote viewers.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/watch"
)

// TickMsg is sent to refresh the elapsed-time clock.
type TickMsg time.Time

// ReportMsg delivers one generation report to the dashboard.
type ReportMsg struct {
	Report evolution.Report
}

// FinishedMsg tells the dashboard that training ended.
type FinishedMsg struct {
	Event watch.FinishedEvent
}

// viewerClosedMsg is sent when the hub closes the viewer.
type viewerClosedMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForEvent blocks on the viewer until the next report or finish event.
func waitForEvent(v *watch.Viewer) tea.Cmd {
	if v == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case evt := <-v.Events():
				switch e := evt.(type) {
				case watch.ReportEvent:
					return ReportMsg{Report: e.Report}
				case watch.FinishedEvent:
					return FinishedMsg{Event: e}
				}
			case <-v.Done():
				return viewerClosedMsg{}
			}
		}
	}
}
