package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/watch"
)

// Dashboard layout constants
const (
	minTableHeight  = 3
	maxHistoryRows  = 200 // Generations kept in the table
	progressPadding = 4
	statsLabelWidth = 14
)

// DashboardOptions configures a dashboard.
type DashboardOptions struct {
	Title          string
	Target         float64 // Score that ends training
	MaxGenerations int     // 0 when unbounded

	// OnQuit runs when the user quits the view. The local dashboard uses it
	// to stop training; remote viewers leave it nil.
	OnQuit func()
}

// DashboardModel is the Bubble Tea model for the training dashboard.
type DashboardModel struct {
	viewer   *watch.Viewer
	opts     DashboardOptions
	config   core.RuntimeConfig
	latest   evolution.Report
	received bool
	history  []evolution.Report // Newest first
	finished *watch.FinishedEvent
	started  time.Time
	now      time.Time
	progress progress.Model
	table    table.Model
	help     help.Model
	keys     DashboardKeyMap
	quitting bool
}

// NewDashboardModel creates a dashboard fed by the given viewer.
func NewDashboardModel(viewer *watch.Viewer, cfg core.RuntimeConfig, opts DashboardOptions) DashboardModel {
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Title == "" {
		opts.Title = "JUMPMAN TRAINING"
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	now := time.Now()
	m := DashboardModel{
		viewer:   viewer,
		opts:     opts,
		config:   cfg,
		started:  now,
		now:      now,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     h,
		keys:     DefaultDashboardKeyMap(),
	}
	m.progress.Width = max(10, cfg.ScreenW-progressPadding*2)
	m.table = m.createTable()
	return m
}

// createTable creates the generation history table sized to the screen.
func (m *DashboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Gen", Width: 7},
		{Title: "Best", Width: 10},
		{Title: "Mean", Width: 10},
		{Title: "StdDev", Width: 9},
		{Title: "Rate", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Time", Width: 8},
	}

	// Header, stats block, progress bar, help and margins
	height := max(minTableHeight, m.config.ScreenH-18)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows refreshes the table from the history, newest first.
func (m *DashboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.history))
	for i, r := range m.history {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Generation),
			fmt.Sprintf("%.2f", r.MaxScore),
			fmt.Sprintf("%.2f", r.MeanScore),
			fmt.Sprintf("%.2f", r.StdDevScore),
			fmt.Sprintf("%d", r.MutationRate),
			fmt.Sprintf("%d", r.GenomeLength),
			r.Elapsed.Round(time.Millisecond).String(),
		}
	}
	m.table.SetRows(rows)
}

// Init starts listening for reports and the clock.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.viewer), tickCmd(m.config.TickRate))
}

// Update handles messages for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.opts.OnQuit != nil {
				m.opts.OnQuit()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.progress.Width = max(10, msg.Width-progressPadding*2)
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil

	case ReportMsg:
		m.latest = msg.Report
		m.received = true
		m.history = append([]evolution.Report{msg.Report}, m.history...)
		if len(m.history) > maxHistoryRows {
			m.history = m.history[:maxHistoryRows]
		}
		m.updateTableRows()
		return m, waitForEvent(m.viewer)

	case FinishedMsg:
		evt := msg.Event
		m.finished = &evt
		return m, waitForEvent(m.viewer)

	case viewerClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case TickMsg:
		m.now = time.Time(msg)
		if m.finished != nil {
			return m, nil
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// Progress returns the fraction of the target score reached, in [0, 1].
func (m DashboardModel) Progress() float64 {
	if m.opts.Target <= 0 || !m.received {
		return 0
	}
	return min(1, max(0, m.latest.MaxScore/m.opts.Target))
}

// Latest returns the most recent report and whether one was received.
func (m DashboardModel) Latest() (evolution.Report, bool) {
	return m.latest, m.received
}

// Finished returns the finish event, or nil while training runs.
func (m DashboardModel) Finished() *watch.FinishedEvent {
	return m.finished
}

// IsQuitting returns true if the view is closing.
func (m DashboardModel) IsQuitting() bool {
	return m.quitting
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.opts.Title, m.config.ScreenW)))
	b.WriteString("\n\n")

	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	b.WriteString(strings.Repeat(" ", progressPadding))
	b.WriteString(m.progress.ViewAs(m.Progress()))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.history) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("Waiting for the first generation...")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the summary block for the latest generation.
func (m DashboardModel) renderStats() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Width(statsLabelWidth)
	valueStyle := lipgloss.NewStyle().Bold(true)

	gen := "-"
	if m.received {
		gen = fmt.Sprintf("%d", m.latest.Generation)
		if m.opts.MaxGenerations > 0 {
			gen = fmt.Sprintf("%d / %d", m.latest.Generation, m.opts.MaxGenerations)
		}
	}

	status := "training"
	statusStyle := valueStyle.Foreground(lipgloss.Color("10"))
	if m.finished != nil {
		status = m.finished.Reason.String()
		statusStyle = valueStyle.Foreground(lipgloss.Color("11"))
	}

	lines := [][2]string{
		{"Status", statusStyle.Render(status)},
		{"Generation", valueStyle.Render(gen)},
		{"Best score", valueStyle.Render(fmt.Sprintf("%.2f / %.0f", m.latest.MaxScore, m.opts.Target))},
		{"Mean score", valueStyle.Render(fmt.Sprintf("%.2f ± %.2f", m.latest.MeanScore, m.latest.StdDevScore))},
		{"Mutation", valueStyle.Render(fmt.Sprintf("1/%d", max(1, m.latest.MutationRate)))},
		{"Genome", valueStyle.Render(fmt.Sprintf("%d samples", m.latest.GenomeLength))},
		{"Elapsed", valueStyle.Render(m.now.Sub(m.started).Round(time.Second).String())},
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", progressPadding))
		b.WriteString(labelStyle.Render(l[0]))
		b.WriteString(l[1])
	}
	return b.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
