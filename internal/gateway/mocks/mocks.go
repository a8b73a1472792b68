package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
)

// TaskGateway is a mock for gateway.TaskGateway.
type TaskGateway struct {
	mock.Mock
}

func (m *TaskGateway) Create(ctx context.Context, draft task.CreateDraft) (*task.Task, error) {
	args := m.Called(ctx, draft)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) Get(ctx context.Context, id int64) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) ListByTeam(ctx context.Context, teamID int64) ([]task.Task, error) {
	args := m.Called(ctx, teamID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) ListByUser(ctx context.Context, userID int64) ([]task.Task, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) UpdateFields(ctx context.Context, id int64, patch task.FieldPatch) (*task.Task, error) {
	args := m.Called(ctx, id, patch)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskGateway) ChangeStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	args := m.Called(ctx, id, status)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) Assign(ctx context.Context, taskID, userID int64) (*task.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) Unassign(ctx context.Context, taskID, userID int64) (*task.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// TeamGateway is a mock for gateway.TeamGateway.
type TeamGateway struct {
	mock.Mock
}

func (m *TeamGateway) Create(ctx context.Context, req team.CreateRequest) (*team.Team, error) {
	args := m.Called(ctx, req)
	if t, ok := args.Get(0).(*team.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamGateway) ListForUser(ctx context.Context, userID int64) ([]team.Team, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]team.Team); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamGateway) ListMembers(ctx context.Context, teamID int64) ([]user.User, error) {
	args := m.Called(ctx, teamID)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamGateway) AddMember(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *TeamGateway) RemoveMember(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

// ProfileGateway is a mock for gateway.ProfileGateway.
type ProfileGateway struct {
	mock.Mock
}

func (m *ProfileGateway) GetProfile(ctx context.Context) (*user.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
