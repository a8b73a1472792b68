package gateway

import (
	"context"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
)

// TaskGateway exposes the remote task resource. Every call either resolves
// with a decoded entity or fails with a classified error; there is no retry
// or caching at this layer.
type TaskGateway interface {
	Create(ctx context.Context, draft task.CreateDraft) (*task.Task, error)
	Get(ctx context.Context, id int64) (*task.Task, error)
	ListByTeam(ctx context.Context, teamID int64) ([]task.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]task.Task, error)
	UpdateFields(ctx context.Context, id int64, patch task.FieldPatch) (*task.Task, error)
	Delete(ctx context.Context, id int64) error
	ChangeStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error)
	Assign(ctx context.Context, taskID, userID int64) (*task.Task, error)
	Unassign(ctx context.Context, taskID, userID int64) (*task.Task, error)
}

// TeamGateway exposes the remote team resource.
type TeamGateway interface {
	Create(ctx context.Context, req team.CreateRequest) (*team.Team, error)
	ListForUser(ctx context.Context, userID int64) ([]team.Team, error)
	ListMembers(ctx context.Context, teamID int64) ([]user.User, error)
	AddMember(ctx context.Context, teamID, userID int64) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
}

// ProfileGateway exposes the authenticated user's own profile.
type ProfileGateway interface {
	GetProfile(ctx context.Context) (*user.User, error)
}
