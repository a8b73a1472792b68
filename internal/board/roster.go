package board

import "github.com/ganot/taskdeck/internal/domain/user"

// roster caches the member list of the team in the active scope. Its error
// state is independent of the task list so the assignment picker can disable
// itself even when the tasks loaded fine.
type roster struct {
	teamID  int64 // 0 when no team scope is active
	members []user.User
	err     string
}

// SetMembers records a successfully loaded member list.
func (r *roster) SetMembers(teamID int64, members []user.User) {
	r.teamID = teamID
	r.members = members
	r.err = ""
}

// SetError clears the cache and records a roster-level failure.
func (r *roster) SetError(teamID int64, msg string) {
	r.teamID = teamID
	r.members = nil
	r.err = msg
}

// Reset returns the roster to the "no team selected" state.
func (r *roster) Reset() {
	r.teamID = 0
	r.members = nil
	r.err = ""
}

// Active reports whether a team scope is loaded.
func (r *roster) Active() bool {
	return r.teamID != 0
}

// Contains reports whether the user id is a member of the cached roster.
func (r *roster) Contains(userID int64) bool {
	for _, m := range r.members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the member list.
func (r *roster) Snapshot() []user.User {
	out := make([]user.User, len(r.members))
	for i := range r.members {
		out[i] = r.members[i].Clone()
	}
	return out
}
