package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/watch"
)

// RunDashboard runs the dashboard in the local terminal until the user quits
// or the viewer is closed.
func RunDashboard(viewer *watch.Viewer, cfg core.RuntimeConfig, opts DashboardOptions) error {
	model := NewDashboardModel(viewer, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
