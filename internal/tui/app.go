// Package tui renders the task board in the terminal. It is a read-only
// consumer of the board controller's snapshots; every mutation goes through
// controller operations issued as commands.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ganot/taskdeck/internal/board"
	"github.com/ganot/taskdeck/internal/scope"
	"github.com/ganot/taskdeck/internal/teams"
)

type mode int

const (
	modeList mode = iota
	modeCreate
	modeEdit
	modeConfirmDelete
	modeAssign
	modeStatus
	modeTeams
)

// Model is the bubbletea model for the task board.
type Model struct {
	ctx      context.Context
	ctrl     *board.Controller
	filter   *scope.Context
	teamsSvc *teams.Service

	mode   mode
	cursor int
	width  int
	height int

	titleInput textinput.Model
	descInput  textinput.Model
	priority   int    // index into priorities for the create form
	createErr  string // shown inside the create form, never as a notification

	editID     int64
	pendingDel int64
	rosterCur  int
	statusCur  int
	teamCur    int
}

type opDoneMsg struct {
	err error
}

// createDoneMsg settles a create submission. Unlike other operations the
// form stays open on failure so the user's input is not lost.
type createDoneMsg struct {
	err error
}

type tickMsg time.Time

// New creates the TUI model.
func New(ctx context.Context, ctrl *board.Controller, filter *scope.Context, teamsSvc *teams.Service) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000

	return Model{
		ctx:        ctx,
		ctrl:       ctrl,
		filter:     filter,
		teamsSvc:   teamsSvc,
		titleInput: title,
		descInput:  desc,
	}
}

// Run starts the program.
func Run(ctx context.Context, ctrl *board.Controller, filter *scope.Context, teamsSvc *teams.Service) error {
	p := tea.NewProgram(New(ctx, ctrl, filter, teamsSvc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reloadCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.Reload(m.ctx)
		_ = m.teamsSvc.Load(m.ctx)
		return opDoneMsg{err: err}
	}
}

func (m Model) opCmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: fn()}
	}
}

// setScopeCmd applies a scope change off the update loop: the bound
// controller reload is a blocking network round-trip and must not stall
// input handling.
func (m Model) setScopeCmd(s scope.Scope) tea.Cmd {
	return func() tea.Msg {
		m.filter.Set(s)
		return opDoneMsg{}
	}
}
