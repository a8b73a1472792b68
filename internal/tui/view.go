package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ganot/taskdeck/internal/board"
	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/notify"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	busyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusToDo:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		task.StatusBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteString(dimStyle.Render("  scope: " + m.ctrl.Scope().String()))
	if m.ctrl.Loading() {
		b.WriteString(busyStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if msg := m.ctrl.ListError(); msg != "" {
		b.WriteString(errStyle.Render("! "+msg) + "\n\n")
	}

	switch m.mode {
	case modeCreate:
		b.WriteString(m.viewCreate())
	case modeAssign:
		b.WriteString(m.viewAssign())
	case modeStatus:
		b.WriteString(m.viewStatus())
	case modeTeams:
		b.WriteString(m.viewTeams())
	default:
		b.WriteString(m.viewList())
	}

	if n := m.ctrl.Notices().Current(); n != nil {
		b.WriteString("\n" + renderNotice(n))
	}
	b.WriteString(helpStyle.Render("\n" + m.helpLine()))
	return b.String()
}

func (m Model) viewList() string {
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks in this scope.")
	}

	var b strings.Builder
	for i, t := range tasks {
		line := m.renderTask(t, i == m.cursor)
		b.WriteString(line + "\n")
		if m.mode == modeEdit && m.ctrl.IsEditing(t.ID) {
			b.WriteString(m.viewEditForm(t.ID))
		}
		if m.mode == modeConfirmDelete && t.ID == m.pendingDel {
			b.WriteString(errStyle.Render("    delete this task? (y/n)") + "\n")
		}
		if msg := m.ctrl.TaskError(t.ID); msg != "" {
			b.WriteString(errStyle.Render("    ! "+msg) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderTask(t task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	status := statusStyles[t.Status].Render(string(t.Status))
	line := fmt.Sprintf("%s#%d %s  [%s] %s", cursor, t.ID, t.Title, t.Priority, status)

	if marker, held := m.ctrl.LockFor(t.ID); held {
		line += busyStyle.Render("  (" + markerLabel(marker) + ")")
	}
	if len(t.Assignees) > 0 {
		line += dimStyle.Render("  " + assigneeLabels(t.Assignees))
	}
	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func (m Model) viewEditForm(id int64) string {
	d, ok := m.ctrl.DraftFor(id)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("    " + m.titleInput.View() + "\n")
	b.WriteString("    " + m.descInput.View() + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("    priority: %s (ctrl+p)", d.Priority)) + "\n")
	return b.String()
}

func (m Model) viewCreate() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task") + "\n")
	b.WriteString(m.titleInput.View() + "\n")
	b.WriteString(m.descInput.View() + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("priority: %s (ctrl+p)", priorities[m.priority])) + "\n")
	if m.createErr != "" {
		b.WriteString(errStyle.Render("! "+m.createErr) + "\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Status") + "\n")
	t, _ := m.selected()
	for i, st := range statuses {
		cursor := "  "
		if i == m.statusCur {
			cursor = "> "
		}
		mark := " "
		if st == t.Status {
			mark = "*"
		}
		line := fmt.Sprintf("%s[%s] %s", cursor, mark, st)
		if i == m.statusCur {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewAssign() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assignees") + "\n")
	if msg := m.ctrl.RosterError(); msg != "" {
		b.WriteString(errStyle.Render("! "+msg) + "\n")
		return b.String()
	}
	t, _ := m.selected()
	for i, member := range m.ctrl.Roster() {
		cursor := "  "
		if i == m.rosterCur {
			cursor = "> "
		}
		mark := " "
		if t.HasAssignee(member.ID) {
			mark = "*"
		}
		line := fmt.Sprintf("%s[%s] %s", cursor, mark, member.DisplayLabel())
		if i == m.rosterCur {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewTeams() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Teams") + "\n")
	if msg := m.teamsSvc.LoadError(); msg != "" {
		b.WriteString(errStyle.Render("! "+msg) + "\n")
	}
	teams := m.teamsSvc.Teams()
	if len(teams) == 0 {
		b.WriteString(dimStyle.Render("No teams.") + "\n")
	}
	for i, tm := range teams {
		cursor := "  "
		if i == m.teamCur {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s (%d members)", cursor, tm.Name, tm.MemberCount())
		if i == m.teamCur {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeCreate:
		return "enter: save • tab: next field • ctrl+p: priority • esc: cancel"
	case modeEdit:
		return "enter: save • tab: next field • ctrl+p: priority • esc: cancel"
	case modeAssign:
		return "enter: toggle assignee • esc: back"
	case modeStatus:
		return "enter: set status • esc: back"
	case modeTeams:
		return "enter: switch scope • esc: back"
	case modeConfirmDelete:
		return "y: delete • n: keep"
	}
	return "n: new • e: edit • s: status • a: assign • d: delete • t: team scope • m: my tasks • r: reload • q: quit"
}

func renderNotice(n *notify.Notification) string {
	if n.Kind == notify.KindSuccess {
		return successStyle.Render("✓ " + n.Message)
	}
	return dimStyle.Render(n.Message)
}

func markerLabel(m board.Marker) string {
	switch m {
	case board.MarkerSaving:
		return "saving"
	case board.MarkerDeleting:
		return "deleting"
	case board.MarkerMutating:
		return "updating"
	}
	return "busy"
}

func assigneeLabels(users []user.User) string {
	labels := make([]string, len(users))
	for i, u := range users {
		labels[i] = u.DisplayLabel()
	}
	return strings.Join(labels, ", ")
}
