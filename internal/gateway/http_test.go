package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/gateway"
)

type staticToken string

func (s staticToken) Token() (string, bool) {
	return string(s), s != ""
}

func TestBearerAndIdempotencyHeaders(t *testing.T) {
	var gotAuth, gotKey1, gotKey2 string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		if calls == 1 {
			gotKey1 = r.Header.Get("X-Idempotency-Key")
		} else {
			gotKey2 = r.Header.Get("X-Idempotency-Key")
		}
		_ = json.NewEncoder(w).Encode(task.Task{ID: 1})
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	_, err := c.Tasks.ChangeStatus(context.Background(), 1, task.StatusDone)
	require.NoError(t, err)
	_, err = c.Tasks.ChangeStatus(context.Background(), 1, task.StatusToDo)
	require.NoError(t, err)

	require.Equal(t, "Bearer tok", gotAuth)
	require.NotEmpty(t, gotKey1)
	require.NotEqual(t, gotKey1, gotKey2, "each mutation carries a fresh key")
}

func TestGetCarriesNoIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("X-Idempotency-Key"))
		_ = json.NewEncoder(w).Encode([]task.Task{})
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	_, err := c.Tasks.ListByUser(context.Background(), 1)
	require.NoError(t, err)
}

func TestErrorMessageExtractedFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "title is required"})
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	_, err := c.Tasks.Create(context.Background(), task.CreateDraft{})

	var callErr *gateway.CallError
	require.ErrorAs(t, err, &callErr)
	require.Equal(t, http.StatusBadRequest, callErr.StatusCode)
	require.Equal(t, "title is required", callErr.Error())
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	_, err := c.Profile.GetProfile(context.Background())

	var callErr *gateway.CallError
	require.ErrorAs(t, err, &callErr)
	require.Equal(t, http.StatusText(http.StatusBadGateway), callErr.Error())
}

func TestUnauthorizedClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken(""), nil)
	_, err := c.Profile.GetProfile(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestNotFoundClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	_, err := c.Tasks.Get(context.Background(), 99)
	require.ErrorIs(t, err, gateway.ErrNotFound)
	require.False(t, errors.Is(err, gateway.ErrUnauthorized))
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, nil, staticToken("tok"), nil)
	require.NoError(t, c.Tasks.Delete(context.Background(), 1))
}
