package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
)

// TokenSource supplies the bearer credential for outgoing calls. It is
// implemented by the session store; the gateway never persists credentials.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the HTTP entity gateway. The typed surfaces hang off Tasks,
// Teams and Profile so each consumer can depend on just the interface it
// needs.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger

	Tasks   *TaskClient
	Teams   *TeamClient
	Profile *ProfileClient
}

// NewClient creates a gateway client. baseURL is the API root, e.g.
// "https://host/api". httpClient may be nil to use http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
	c.Tasks = &TaskClient{c}
	c.Teams = &TeamClient{c}
	c.Profile = &ProfileClient{c}
	return c
}

var (
	_ TaskGateway    = (*TaskClient)(nil)
	_ TeamGateway    = (*TeamClient)(nil)
	_ ProfileGateway = (*ProfileClient)(nil)
)

// wireError mirrors the error body shape of the remote API.
type wireError struct {
	Message string `json:"message"`
}

// call issues one request and decodes the response into out when out is
// non-nil. Mutating calls carry a fresh idempotency key so the server can
// deduplicate accidental resends.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := http.StatusText(res.StatusCode)
		var we wireError
		if decodeErr := json.NewDecoder(res.Body).Decode(&we); decodeErr == nil && we.Message != "" {
			msg = we.Message
		}
		c.logger.Debug("gateway call failed",
			"method", method, "path", path, "status", res.StatusCode)
		return &CallError{StatusCode: res.StatusCode, Message: msg}
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// TaskClient implements TaskGateway over HTTP.
type TaskClient struct {
	c *Client
}

func (g *TaskClient) Create(ctx context.Context, draft task.CreateDraft) (*task.Task, error) {
	var t task.Task
	if err := g.c.call(ctx, http.MethodPost, "/tasks", draft, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TaskClient) Get(ctx context.Context, id int64) (*task.Task, error) {
	var t task.Task
	if err := g.c.call(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TaskClient) ListByTeam(ctx context.Context, teamID int64) ([]task.Task, error) {
	var list []task.Task
	if err := g.c.call(ctx, http.MethodGet, fmt.Sprintf("/tasks/team/%d", teamID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *TaskClient) ListByUser(ctx context.Context, userID int64) ([]task.Task, error) {
	var list []task.Task
	if err := g.c.call(ctx, http.MethodGet, fmt.Sprintf("/tasks/user/%d", userID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *TaskClient) UpdateFields(ctx context.Context, id int64, patch task.FieldPatch) (*task.Task, error) {
	var t task.Task
	if err := g.c.call(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TaskClient) Delete(ctx context.Context, id int64) error {
	return g.c.call(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (g *TaskClient) ChangeStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	var t task.Task
	body := map[string]task.Status{"status": status}
	if err := g.c.call(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/status", id), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TaskClient) Assign(ctx context.Context, taskID, userID int64) (*task.Task, error) {
	var t task.Task
	path := fmt.Sprintf("/tasks/%d/assignees/%d", taskID, userID)
	if err := g.c.call(ctx, http.MethodPost, path, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TaskClient) Unassign(ctx context.Context, taskID, userID int64) (*task.Task, error) {
	var t task.Task
	path := fmt.Sprintf("/tasks/%d/assignees/%d", taskID, userID)
	if err := g.c.call(ctx, http.MethodDelete, path, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TeamClient implements TeamGateway over HTTP.
type TeamClient struct {
	c *Client
}

func (g *TeamClient) Create(ctx context.Context, req team.CreateRequest) (*team.Team, error) {
	var t team.Team
	if err := g.c.call(ctx, http.MethodPost, "/teams", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *TeamClient) ListForUser(ctx context.Context, userID int64) ([]team.Team, error) {
	var list []team.Team
	path := "/teams?userId=" + url.QueryEscape(fmt.Sprintf("%d", userID))
	if err := g.c.call(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *TeamClient) ListMembers(ctx context.Context, teamID int64) ([]user.User, error) {
	var list []user.User
	if err := g.c.call(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/members", teamID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (g *TeamClient) AddMember(ctx context.Context, teamID, userID int64) error {
	return g.c.call(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/members/%d", teamID, userID), nil, nil)
}

func (g *TeamClient) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return g.c.call(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d/members/%d", teamID, userID), nil, nil)
}

// ProfileClient implements ProfileGateway over HTTP.
type ProfileClient struct {
	c *Client
}

func (g *ProfileClient) GetProfile(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := g.c.call(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
