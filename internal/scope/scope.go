// Package scope models the task-list filter: either the current user's own
// tasks or one team's tasks. The scope is externalized as the `teamId` query
// parameter of a navigable URL so a location string reproduces the filter.
package scope

import (
	"fmt"
	"net/url"
	"strconv"
)

// Scope is either Mine (no team) or Team(id) with a positive id. The zero
// value is Mine.
type Scope struct {
	teamID int64
}

// Mine is the "my tasks" scope.
func Mine() Scope {
	return Scope{}
}

// Team returns the scope for one team's tasks. Non-positive ids collapse to
// Mine, mirroring how a malformed URL parameter is treated.
func Team(id int64) Scope {
	if id <= 0 {
		return Scope{}
	}
	return Scope{teamID: id}
}

// IsMine reports whether the scope is "my tasks".
func (s Scope) IsMine() bool {
	return s.teamID == 0
}

// TeamID returns the team id and true for a team scope.
func (s Scope) TeamID() (int64, bool) {
	if s.teamID == 0 {
		return 0, false
	}
	return s.teamID, true
}

func (s Scope) String() string {
	if s.teamID == 0 {
		return "mine"
	}
	return fmt.Sprintf("team(%d)", s.teamID)
}

// FromURL derives the scope from a location. A missing, non-numeric or
// non-positive teamId parameter yields Mine.
func FromURL(u *url.URL) Scope {
	raw := u.Query().Get("teamId")
	if raw == "" {
		return Mine()
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return Mine()
	}
	return Team(id)
}

// ApplyToURL writes the scope into the location's query string. Mine removes
// the teamId parameter entirely.
func (s Scope) ApplyToURL(u *url.URL) {
	q := u.Query()
	if s.teamID == 0 {
		q.Del("teamId")
	} else {
		q.Set("teamId", strconv.FormatInt(s.teamID, 10))
	}
	u.RawQuery = q.Encode()
}
