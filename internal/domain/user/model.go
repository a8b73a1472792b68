package user

import "fmt"

// User represents a member of the system as returned by the remote API.
type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Clone returns a copy whose Roles slice does not share a backing array
// with the receiver.
func (u User) Clone() User {
	out := u
	if u.Roles != nil {
		out.Roles = append([]string(nil), u.Roles...)
	}
	return out
}

// DisplayLabel returns the name to render for a user: display name, else
// username, else email, else a synthesized "User #<id>" label. Every place a
// user is shown must go through this.
func (u User) DisplayLabel() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return fmt.Sprintf("User #%d", u.ID)
}
