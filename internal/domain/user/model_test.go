package user_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/domain/user"
)

func TestDisplayLabelPrecedence(t *testing.T) {
	cases := []struct {
		name string
		u    user.User
		want string
	}{
		{"display name wins", user.User{ID: 1, Username: "ana", DisplayName: "Ana B", Email: "a@x.io"}, "Ana B"},
		{"username next", user.User{ID: 1, Username: "ana", Email: "a@x.io"}, "ana"},
		{"email next", user.User{ID: 1, Email: "a@x.io"}, "a@x.io"},
		{"synthesized last", user.User{ID: 12}, "User #12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.u.DisplayLabel())
		})
	}
}
