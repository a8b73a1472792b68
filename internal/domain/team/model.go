package team

import (
	"time"

	"github.com/ganot/taskdeck/internal/domain/user"
)

// Team represents a team as returned by the remote API. Member count is
// always derived from the roster, never stored independently.
type Team struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Admin       *user.User  `json:"admin,omitempty"`
	Members     []user.User `json:"members,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
}

// MemberCount returns the derived member count.
func (t *Team) MemberCount() int {
	return len(t.Members)
}

// IsAdmin reports whether the user id is the team's administrator.
func (t *Team) IsAdmin(userID int64) bool {
	return t.Admin != nil && t.Admin.ID == userID
}

// CreateRequest describes team creation inputs.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
