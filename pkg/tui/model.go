// Package tui is the terminal presentation of the restore console.
package tui

import (
	"time"

	"rds-restore/internal/controller"
	"rds-restore/internal/selection"
	"rds-restore/pkg/storage"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusRegions focus = iota
	focusInstances
	focusSnapshots
	focusName
)

// outcomeMsg carries the result of one controller call back into the update loop
type outcomeMsg struct {
	outcome  controller.Outcome
	view     selection.View
	activity []storage.Entry
}

// Model is the bubbletea model. Controller calls run in a command goroutine; while
// one is in flight every key except ctrl+c is ignored, so calls never overlap.
type Model struct {
	controller *controller.Controller

	spinner spinner.Model
	input   textinput.Model

	view     selection.View
	activity []storage.Entry

	focus          focus
	regionCursor   int
	instanceCursor int
	snapshotCursor int

	busy        bool
	message     string
	quitPending bool
	quitting    bool

	now func() time.Time
}

// NewModel creates the model around an unopened controller
func NewModel(c *controller.Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle

	ti := textinput.New()
	ti.Prompt = "New DB name: "
	ti.Placeholder = "restored-db"

	return Model{
		controller: c,
		spinner:    s,
		input:      ti,
		view:       c.View(),
		focus:      focusInstances,
		busy:       true,
		now:        time.Now,
	}
}

// Run opens the session and blocks until the operator quits
func Run(c *controller.Controller) error {
	_, err := tea.NewProgram(NewModel(c), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, openCmd(m.controller))
}

func openCmd(c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		out := c.Open()
		return outcomeMsg{outcome: out, view: c.View(), activity: c.Activity().Entries()}
	}
}

func dispatchCmd(c *controller.Controller, ev controller.Event) tea.Cmd {
	return func() tea.Msg {
		out := c.Dispatch(ev)
		return outcomeMsg{outcome: out, view: c.View(), activity: c.Activity().Entries()}
	}
}

func (m Model) dispatch(ev controller.Event) (Model, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(m.spinner.Tick, dispatchCmd(m.controller, ev))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		return m.handleOutcome(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.view = msg.view
	m.activity = msg.activity

	out := msg.outcome
	if out.Closed {
		m.quitting = true
		return m, tea.Quit
	}
	if m.quitPending {
		return m.dispatch(controller.Event{Kind: controller.WindowClosing})
	}

	if out.Confirmation != nil {
		m.input.Reset()
	}
	if out.Message != "" && !out.Defect {
		m.message = out.Message
	}

	m.syncCursors()
	return m, nil
}

// syncCursors keeps the cursors on existing rows and the region cursor on the current region
func (m *Model) syncCursors() {
	for i, r := range m.view.Regions {
		if r == m.view.Region {
			m.regionCursor = i
		}
	}
	m.instanceCursor = clamp(m.instanceCursor, len(m.view.Instances))
	if m.view.SelectedInstance >= 0 {
		m.instanceCursor = m.view.SelectedInstance
	}
	m.snapshotCursor = clamp(m.snapshotCursor, len(m.view.Snapshots))
	if m.view.SelectedSnapshot < 0 {
		m.snapshotCursor = 0
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.busy {
			m.quitPending = true
			return m, nil
		}
		return m.dispatch(controller.Event{Kind: controller.WindowClosing})
	}
	if m.busy {
		return m, nil
	}

	if m.message != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.message = ""
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		m.setFocus((m.focus + 1) % 4)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus((m.focus + 3) % 4)
		return m, nil
	}

	if m.focus == focusName {
		if msg.Type == tea.KeyEnter {
			return m.dispatch(controller.Event{Kind: controller.ClickRestore, Name: m.input.Value()})
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.dispatch(controller.Event{Kind: controller.WindowClosing})
	case "r":
		return m.dispatch(controller.Event{Kind: controller.ClickRefresh})
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		return m.activate()
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusName {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case focusRegions:
		m.regionCursor = clamp(m.regionCursor+delta, len(m.view.Regions))
	case focusInstances:
		m.instanceCursor = clamp(m.instanceCursor+delta, len(m.view.Instances))
	case focusSnapshots:
		m.snapshotCursor = clamp(m.snapshotCursor+delta, len(m.view.Snapshots))
	}
}

// activate sends the event for the row under the cursor. Empty lists send nothing.
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusRegions:
		if len(m.view.Regions) > 0 {
			return m.dispatch(controller.Event{Kind: controller.SelectRegion, Index: m.regionCursor})
		}
	case focusInstances:
		if len(m.view.Instances) > 0 {
			return m.dispatch(controller.Event{Kind: controller.ClickInstanceRow, Index: m.instanceCursor})
		}
	case focusSnapshots:
		if len(m.view.Snapshots) > 0 {
			return m.dispatch(controller.Event{Kind: controller.ClickSnapshotRow, Index: m.snapshotCursor})
		}
	}
	return m, nil
}
