// Package teams implements team management: the user's team list plus a
// member-management view over one team at a time.
package teams

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/gateway"
)

// Identity resolves the current authenticated user id.
type Identity interface {
	CurrentUserID(ctx context.Context) (int64, error)
}

// Service handles team operations. Member counts shown anywhere come from
// the roster loaded here, never from a stored counter.
type Service struct {
	gw       gateway.TeamGateway
	identity Identity
	logger   *slog.Logger

	mu         sync.Mutex
	teams      []team.Team
	loadErr    string
	managed    *team.Team
	members    []user.User
	membersErr string
}

// NewService creates a team service.
func NewService(gw gateway.TeamGateway, identity Identity, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{gw: gw, identity: identity, logger: logger}
}

// Load fetches the current user's teams.
func (s *Service) Load(ctx context.Context) error {
	me, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		s.setLoadErr(err)
		return err
	}
	list, err := s.gw.ListForUser(ctx, me)
	if err != nil {
		s.setLoadErr(err)
		return fmt.Errorf("loading teams: %w", err)
	}
	s.mu.Lock()
	s.teams = list
	s.loadErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Service) setLoadErr(err error) {
	s.mu.Lock()
	s.loadErr = err.Error()
	s.mu.Unlock()
}

// Create validates and creates a team, then refreshes the team list.
func (s *Service) Create(ctx context.Context, req team.CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return team.ErrInvalidInput
	}
	if _, err := s.gw.Create(ctx, req); err != nil {
		return err
	}
	return s.Load(ctx)
}

// OpenManage selects a team for member management and loads its roster. A
// roster failure clears the member list and is kept separate from the team
// list error.
func (s *Service) OpenManage(ctx context.Context, teamID int64) error {
	s.mu.Lock()
	var target *team.Team
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			t := s.teams[i]
			target = &t
			break
		}
	}
	s.mu.Unlock()
	if target == nil {
		return team.ErrTeamNotFound
	}

	s.mu.Lock()
	s.managed = target
	s.mu.Unlock()
	return s.refreshMembers(ctx, teamID)
}

// CloseManage leaves the member-management view.
func (s *Service) CloseManage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.managed = nil
	s.members = nil
	s.membersErr = ""
}

func (s *Service) refreshMembers(ctx context.Context, teamID int64) error {
	list, err := s.gw.ListMembers(ctx, teamID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.members = nil
		s.membersErr = err.Error()
		return fmt.Errorf("loading members: %w", err)
	}
	s.members = list
	s.membersErr = ""
	return nil
}

// AddMember parses a raw user-id input, validates it is a positive integer,
// adds the member and refreshes the roster and team list.
func (s *Service) AddMember(ctx context.Context, rawUserID string) error {
	userID, err := strconv.ParseInt(strings.TrimSpace(rawUserID), 10, 64)
	if err != nil || userID <= 0 {
		return team.ErrInvalidMemberID
	}

	s.mu.Lock()
	managed := s.managed
	s.mu.Unlock()
	if managed == nil {
		return team.ErrTeamNotFound
	}

	if err := s.gw.AddMember(ctx, managed.ID, userID); err != nil {
		s.mu.Lock()
		s.membersErr = err.Error()
		s.mu.Unlock()
		return err
	}
	if err := s.refreshMembers(ctx, managed.ID); err != nil {
		return err
	}
	return s.Load(ctx)
}

// RemoveMember removes a member and refreshes the roster and team list. The
// team administrator cannot be removed; the caller is expected to have
// confirmed the removal with the user.
func (s *Service) RemoveMember(ctx context.Context, userID int64) error {
	s.mu.Lock()
	managed := s.managed
	s.mu.Unlock()
	if managed == nil {
		return team.ErrTeamNotFound
	}
	if managed.IsAdmin(userID) {
		return team.ErrAdminRemoval
	}

	if err := s.gw.RemoveMember(ctx, managed.ID, userID); err != nil {
		s.mu.Lock()
		s.membersErr = err.Error()
		s.mu.Unlock()
		return err
	}
	if err := s.refreshMembers(ctx, managed.ID); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Teams returns the loaded team list.
func (s *Service) Teams() []team.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]team.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// LoadError returns the team-list load error, if any.
func (s *Service) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Managed returns the team currently open for management.
func (s *Service) Managed() (team.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.managed == nil {
		return team.Team{}, false
	}
	return *s.managed, true
}

// Members returns the roster of the managed team.
func (s *Service) Members() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, len(s.members))
	copy(out, s.members)
	return out
}

// MembersError returns the roster error for the managed team, if any.
func (s *Service) MembersError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.membersErr
}

// MemberCount returns the derived member count of the managed team.
func (s *Service) MemberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
