package teams_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/gateway/mocks"
	"github.com/ganot/taskdeck/internal/teams"
)

type staticIdentity struct {
	me user.User
}

func (s staticIdentity) CurrentUserID(context.Context) (int64, error) {
	return s.me.ID, nil
}

func admin() *user.User {
	return &user.User{ID: 1, Username: "boss"}
}

func newService(gw *mocks.TeamGateway) *teams.Service {
	return teams.NewService(gw, staticIdentity{me: *admin()}, nil)
}

func TestLoadFetchesTeamsForCurrentUser(t *testing.T) {
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2, Name: "Core"}}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Teams(), 1)
	require.Empty(t, s.LoadError())
}

func TestCreateValidatesName(t *testing.T) {
	gw := &mocks.TeamGateway{}
	s := newService(gw)

	err := s.Create(context.Background(), team.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, team.ErrInvalidInput)
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOpenManageLoadsRoster(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2, Name: "Core", Admin: admin()}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{*admin(), {ID: 5}}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))

	managed, ok := s.Managed()
	require.True(t, ok)
	require.Equal(t, "Core", managed.Name)
	require.Equal(t, 2, s.MemberCount())
}

func TestOpenManageRosterFailureClearsMembers(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return(nil, errors.New("roster down"))

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.Error(t, s.OpenManage(ctx, 2))

	require.Empty(t, s.Members())
	require.Equal(t, "roster down", s.MembersError())
}

func TestAddMemberValidatesNumericID(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))

	for _, raw := range []string{"abc", "", "-4", "0", "1.5"} {
		require.ErrorIs(t, s.AddMember(ctx, raw), team.ErrInvalidMemberID, "input %q", raw)
	}
	gw.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMemberRefreshesRosterAndTeams(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{*admin()}, nil).Once()
	gw.On("AddMember", mock.Anything, int64(2), int64(5)).Return(nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{*admin(), {ID: 5}}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))
	require.NoError(t, s.AddMember(ctx, " 5 "))

	require.Equal(t, 2, s.MemberCount())
	gw.AssertNumberOfCalls(t, "ListForUser", 2)
}

func TestRemoveMemberRefusesAdmin(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2, Admin: admin()}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{*admin()}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))

	require.ErrorIs(t, s.RemoveMember(ctx, 1), team.ErrAdminRemoval)
	gw.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveMemberFailureKeptInline(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{{ID: 5}}, nil)
	gw.On("RemoveMember", mock.Anything, int64(2), int64(5)).Return(errors.New("nope"))

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))

	require.Error(t, s.RemoveMember(ctx, 5))
	require.Equal(t, "nope", s.MembersError())
}

func TestCloseManageResetsState(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.TeamGateway{}
	gw.On("ListForUser", mock.Anything, int64(1)).Return([]team.Team{{ID: 2}}, nil)
	gw.On("ListMembers", mock.Anything, int64(2)).Return([]user.User{{ID: 5}}, nil)

	s := newService(gw)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.OpenManage(ctx, 2))

	s.CloseManage()
	_, ok := s.Managed()
	require.False(t, ok)
	require.Empty(t, s.Members())
	require.Empty(t, s.MembersError())
}
