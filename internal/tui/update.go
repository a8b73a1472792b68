package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/scope"
)

var priorities = []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}

// statuses is the full set offered by the status picker. Any status may move
// to any other in a single step.
var statuses = task.Statuses()

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Periodic redraw so notification expiry and background loads show up.
		return m, tickCmd()
	case opDoneMsg:
		m.clampCursor()
		return m, nil
	case createDoneMsg:
		if msg.err != nil {
			m.createErr = msg.err.Error()
			return m, nil
		}
		m.mode = modeList
		m.createErr = ""
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeCreate:
		return m.updateCreate(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeAssign:
		return m.updateAssign(msg)
	case modeStatus:
		return m.updateStatus(msg)
	case modeTeams:
		return m.updateTeams(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.Tasks())-1 {
			m.cursor++
		}
	case "r":
		return m, m.reloadCmd()
	case "m":
		m.cursor = 0
		return m, m.setScopeCmd(scope.Mine())
	case "t":
		m.mode = modeTeams
		m.teamCur = 0
	case "n":
		m.mode = modeCreate
		m.createErr = ""
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.priority = 1 // medium
		m.descInput.Blur()
		return m, m.titleInput.Focus()
	case "s":
		if _, ok := m.selected(); ok {
			m.mode = modeStatus
			m.statusCur = 0
		}
	case "e":
		if t, ok := m.selected(); ok {
			if err := m.ctrl.BeginEdit(t.ID); err != nil {
				return m, nil
			}
			m.mode = modeEdit
			m.editID = t.ID
			d, _ := m.ctrl.DraftFor(t.ID)
			m.titleInput.SetValue(d.Title)
			m.descInput.SetValue(d.Description)
			m.descInput.Blur()
			return m, m.titleInput.Focus()
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.pendingDel = t.ID
		}
	case "a":
		if _, ok := m.selected(); ok && m.ctrl.RosterActive() {
			m.mode = modeAssign
			m.rosterCur = 0
		}
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.createErr = ""
		return m, nil
	case "tab":
		if m.titleInput.Focused() {
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.titleInput.Focus()
	case "ctrl+p":
		m.priority = (m.priority + 1) % len(priorities)
		return m, nil
	case "enter":
		draft := task.CreateDraft{
			Title:       m.titleInput.Value(),
			Description: m.descInput.Value(),
			Priority:    priorities[m.priority],
		}
		if id, ok := m.filter.Current().TeamID(); ok {
			draft.TeamID = &id
		}
		// Stay in the form: a failure is shown inline there with the
		// input intact, and only a successful result closes it.
		return m, func() tea.Msg {
			return createDoneMsg{err: m.ctrl.Create(m.ctx, draft)}
		}
	}
	var cmd tea.Cmd
	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editID
	switch msg.String() {
	case "esc":
		m.ctrl.CancelEdit(id)
		m.mode = modeList
		return m, nil
	case "tab":
		if m.titleInput.Focused() {
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.titleInput.Focus()
	case "ctrl+p":
		d, ok := m.ctrl.DraftFor(id)
		if !ok {
			m.mode = modeList
			return m, nil
		}
		next := nextPriority(d.Priority)
		_ = m.ctrl.SetDraftPriority(id, next)
		return m, nil
	case "enter":
		_ = m.ctrl.SetDraftTitle(id, m.titleInput.Value())
		_ = m.ctrl.SetDraftDescription(id, m.descInput.Value())
		m.mode = modeList
		return m, m.opCmd(func() error { return m.ctrl.SaveEdit(m.ctx, id) })
	}
	var cmd tea.Cmd
	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
		_ = m.ctrl.SetDraftTitle(id, m.titleInput.Value())
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
		_ = m.ctrl.SetDraftDescription(id, m.descInput.Value())
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.pendingDel
		m.mode = modeList
		m.pendingDel = 0
		return m, m.opCmd(func() error { return m.ctrl.Remove(m.ctx, id) })
	case "n", "esc":
		m.mode = modeList
		m.pendingDel = 0
	}
	return m, nil
}

func (m Model) updateAssign(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	roster := m.ctrl.Roster()
	switch msg.String() {
	case "esc":
		m.mode = modeList
	case "up", "k":
		if m.rosterCur > 0 {
			m.rosterCur--
		}
	case "down", "j":
		if m.rosterCur < len(roster)-1 {
			m.rosterCur++
		}
	case "enter", " ":
		t, ok := m.selected()
		if !ok || m.rosterCur >= len(roster) {
			m.mode = modeList
			return m, nil
		}
		member := roster[m.rosterCur]
		m.mode = modeList
		if t.HasAssignee(member.ID) {
			return m, m.opCmd(func() error { return m.ctrl.Unassign(m.ctx, t.ID, member.ID) })
		}
		return m, m.opCmd(func() error { return m.ctrl.Assign(m.ctx, t.ID, member.ID) })
	}
	return m, nil
}

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
	case "up", "k":
		if m.statusCur > 0 {
			m.statusCur--
		}
	case "down", "j":
		if m.statusCur < len(statuses)-1 {
			m.statusCur++
		}
	case "enter":
		t, ok := m.selected()
		m.mode = modeList
		if !ok {
			return m, nil
		}
		next := statuses[m.statusCur]
		return m, m.opCmd(func() error { return m.ctrl.ChangeStatus(m.ctx, t.ID, next) })
	}
	return m, nil
}

func (m Model) updateTeams(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	teams := m.teamsSvc.Teams()
	switch msg.String() {
	case "esc":
		m.mode = modeList
	case "up", "k":
		if m.teamCur > 0 {
			m.teamCur--
		}
	case "down", "j":
		if m.teamCur < len(teams)-1 {
			m.teamCur++
		}
	case "enter":
		m.mode = modeList
		if m.teamCur < len(teams) {
			m.cursor = 0
			return m, m.setScopeCmd(scope.Team(teams[m.teamCur].ID))
		}
	}
	return m, nil
}

func (m *Model) selected() (task.Task, bool) {
	tasks := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if n == 0 {
		m.cursor = 0
	} else if m.cursor >= n {
		m.cursor = n - 1
	}
}

func nextPriority(p task.Priority) task.Priority {
	for i, cur := range priorities {
		if cur == p {
			return priorities[(i+1)%len(priorities)]
		}
	}
	return task.PriorityMedium
}
