package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/board"
	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/gateway/mocks"
	"github.com/ganot/taskdeck/internal/notify"
	"github.com/ganot/taskdeck/internal/scope"
	"github.com/ganot/taskdeck/internal/teams"
)

type fixedIdentity struct {
	id int64
}

func (f fixedIdentity) CurrentUserID(context.Context) (int64, error) {
	return f.id, nil
}

func newTestModel(t *testing.T, tasksGw *mocks.TaskGateway, teamsGw *mocks.TeamGateway) (Model, *board.Controller, *scope.Context, *teams.Service) {
	t.Helper()
	ctrl := board.NewController(tasksGw, teamsGw, fixedIdentity{id: 42}, notify.NewQueue(), nil)
	fc := scope.NewContext("taskdeck:///tasks")
	svc := teams.NewService(teamsGw, fixedIdentity{id: 42}, nil)
	ctrl.BindScope(context.Background(), fc)
	return New(context.Background(), ctrl, fc, svc), ctrl, fc, svc
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestCreateFailureStaysInFormWithInlineError(t *testing.T) {
	tasksGw := &mocks.TaskGateway{}
	tasksGw.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("title already taken"))
	m, ctrl, _, _ := newTestModel(t, tasksGw, &mocks.TeamGateway{})

	m, _ = step(t, m, keyRune('n'))
	m.titleInput.SetValue("duplicate")

	m, cmd := step(t, m, keyEnter())
	require.Equal(t, modeCreate, m.mode, "form stays open while the create is in flight")
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	require.Equal(t, modeCreate, m.mode)
	require.Equal(t, "duplicate", m.titleInput.Value(), "input survives the failure")
	require.Contains(t, m.View(), "title already taken")
	require.Nil(t, ctrl.Notices().Current(), "failures never reach the notification line")
}

func TestCreateSuccessClosesForm(t *testing.T) {
	tasksGw := &mocks.TaskGateway{}
	created := task.Task{ID: 1, Title: "new thing", Status: task.StatusToDo, Priority: task.PriorityMedium}
	tasksGw.On("Create", mock.Anything, mock.Anything).Return(&created, nil)
	tasksGw.On("ListByUser", mock.Anything, int64(42)).Return([]task.Task{created}, nil)
	m, ctrl, _, _ := newTestModel(t, tasksGw, &mocks.TeamGateway{})

	m, _ = step(t, m, keyRune('n'))
	m.titleInput.SetValue("new thing")
	m, cmd := step(t, m, keyEnter())
	m, _ = step(t, m, cmd())

	require.Equal(t, modeList, m.mode)
	require.Empty(t, m.createErr)
	require.Empty(t, m.titleInput.Value())
	require.Len(t, ctrl.Tasks(), 1)
}

func TestStatusPickerOffersAllFourStatuses(t *testing.T) {
	tasksGw := &mocks.TaskGateway{}
	tasksGw.On("ListByUser", mock.Anything, int64(42)).Return([]task.Task{{ID: 1, Title: "x", Status: task.StatusToDo, Priority: task.PriorityLow}}, nil)
	done := task.Task{ID: 1, Title: "x", Status: task.StatusDone, Priority: task.PriorityLow}
	tasksGw.On("ChangeStatus", mock.Anything, int64(1), task.StatusDone).Return(&done, nil)

	m, ctrl, _, _ := newTestModel(t, tasksGw, &mocks.TeamGateway{})
	require.NoError(t, ctrl.Reload(context.Background()))

	m, _ = step(t, m, keyRune('s'))
	require.Equal(t, modeStatus, m.mode)
	view := m.View()
	for _, st := range task.Statuses() {
		require.Contains(t, view, string(st))
	}

	// TO_DO straight to DONE: one pick, one mutation.
	for i := 0; i < 3; i++ {
		m, _ = step(t, m, keyRune('j'))
	}
	m, cmd := step(t, m, keyEnter())
	require.Equal(t, modeList, m.mode)
	m, _ = step(t, m, cmd())

	got, ok := ctrl.Task(1)
	require.True(t, ok)
	require.Equal(t, task.StatusDone, got.Status)
	tasksGw.AssertNumberOfCalls(t, "ChangeStatus", 1)
}

func TestScopeSwitchRunsOutsideUpdateLoop(t *testing.T) {
	tasksGw := &mocks.TaskGateway{}
	teamsGw := &mocks.TeamGateway{}
	teamsGw.On("ListForUser", mock.Anything, int64(42)).Return([]team.Team{{ID: 3, Name: "platform"}}, nil)
	teamsGw.On("ListMembers", mock.Anything, int64(3)).Return([]user.User{{ID: 42, Username: "ana"}}, nil)
	tasksGw.On("ListByTeam", mock.Anything, int64(3)).Return([]task.Task{{ID: 2, Title: "team task"}}, nil)

	m, ctrl, fc, svc := newTestModel(t, tasksGw, teamsGw)
	require.NoError(t, svc.Load(context.Background()))

	m, _ = step(t, m, keyRune('t'))
	require.Equal(t, modeTeams, m.mode)
	m, cmd := step(t, m, keyEnter())

	// The key handler only schedules the switch; the blocking reload runs
	// in the returned command, not inside Update.
	require.True(t, fc.Current().IsMine())
	tasksGw.AssertNumberOfCalls(t, "ListByTeam", 0)
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	require.Equal(t, scope.Team(3), fc.Current())
	tasksGw.AssertNumberOfCalls(t, "ListByTeam", 1)
	require.Len(t, ctrl.Tasks(), 1)
}
