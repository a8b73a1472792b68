// Package testserver runs an in-memory stand-in for the remote task API so
// integration tests can drive the real HTTP gateway end to end.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/team"
	"github.com/ganot/taskdeck/internal/domain/user"
)

// TestServer holds the fake API and its in-memory state. State mutators are
// safe for concurrent use.
type TestServer struct {
	Server *httptest.Server
	Token  string

	mu     sync.Mutex
	nextID int64
	me     user.User
	users  map[int64]user.User
	teams  map[int64]*team.Team
	tasks  map[int64]*task.Task
	order  []int64 // task insertion order

	failNext map[string]string // operation -> message
}

// New starts a fake API that accepts the given bearer token and reports the
// given user as the authenticated profile.
func New(t *testing.T, token string, me user.User) *TestServer {
	t.Helper()

	ts := &TestServer{
		Token:    token,
		nextID:   1,
		me:       me,
		users:    map[int64]user.User{me.ID: me},
		teams:    map[int64]*team.Team{},
		tasks:    map[int64]*task.Task{},
		failNext: map[string]string{},
	}

	r := chi.NewRouter()
	r.Use(ts.requireBearer)

	r.Get("/api/users/me", ts.handleProfile)

	r.Post("/api/tasks", ts.handleCreateTask)
	r.Get("/api/tasks/{id}", ts.handleGetTask)
	r.Get("/api/tasks/team/{teamId}", ts.handleTasksByTeam)
	r.Get("/api/tasks/user/{userId}", ts.handleTasksByUser)
	r.Patch("/api/tasks/{id}", ts.handleUpdateTask)
	r.Delete("/api/tasks/{id}", ts.handleDeleteTask)
	r.Patch("/api/tasks/{id}/status", ts.handleChangeStatus)
	r.Post("/api/tasks/{id}/assignees/{userId}", ts.handleAssign)
	r.Delete("/api/tasks/{id}/assignees/{userId}", ts.handleUnassign)

	r.Post("/api/teams", ts.handleCreateTeam)
	r.Get("/api/teams", ts.handleTeamsForUser)
	r.Get("/api/teams/{teamId}/members", ts.handleMembers)
	r.Post("/api/teams/{teamId}/members/{userId}", ts.handleAddMember)
	r.Delete("/api/teams/{teamId}/members/{userId}", ts.handleRemoveMember)

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Server.Close)
	return ts
}

// BaseURL returns the API root of the fake server.
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL + "/api"
}

// AddUser registers a user.
func (ts *TestServer) AddUser(u user.User) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.users[u.ID] = u
}

// AddTeam registers a team with the given members.
func (ts *TestServer) AddTeam(t team.Team) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	cp := t
	ts.teams[t.ID] = &cp
}

// SeedTask inserts a task directly, bypassing the HTTP surface.
func (ts *TestServer) SeedTask(t task.Task) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	cp := t
	ts.tasks[t.ID] = &cp
	ts.order = append(ts.order, t.ID)
	if t.ID >= ts.nextID {
		ts.nextID = t.ID + 1
	}
}

// FailNext makes the next call of the named operation (e.g. "delete",
// "status", "assign", "update") answer 500 with the message.
func (ts *TestServer) FailNext(op, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failNext[op] = message
}

func (ts *TestServer) takeFailure(op string) (string, bool) {
	msg, ok := ts.failNext[op]
	if ok {
		delete(ts.failNext, op)
	}
	return msg, ok
}

func (ts *TestServer) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" || token != ts.Token {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func (ts *TestServer) handleProfile(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	me := ts.me
	ts.mu.Unlock()
	writeJSON(w, http.StatusOK, me)
}

type createTaskBody struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    task.Priority `json:"priority"`
	TeamID      *int64        `json:"teamId"`
	AssigneeIDs []int64       `json:"assigneeIds"`
}

func (ts *TestServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if msg, ok := ts.takeFailure("create"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if body.TeamID != nil {
		tm, ok := ts.teams[*body.TeamID]
		if !ok {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		for _, id := range body.AssigneeIDs {
			if !memberOf(tm, id) {
				writeError(w, http.StatusBadRequest, "assignee is not a team member")
				return
			}
		}
	}

	prio := body.Priority
	if prio == "" {
		prio = task.PriorityMedium
	}
	t := &task.Task{
		ID:          ts.nextID,
		Title:       body.Title,
		Description: body.Description,
		Status:      task.StatusToDo,
		Priority:    prio,
		TeamID:      body.TeamID,
	}
	ts.nextID++
	for _, id := range body.AssigneeIDs {
		if u, ok := ts.users[id]; ok && !t.HasAssignee(id) {
			t.Assignees = append(t.Assignees, u)
		}
	}
	ts.tasks[t.ID] = t
	ts.order = append(ts.order, t.ID)
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	t, ok := ts.tasks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleTasksByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, _ := pathID(r, "teamId")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	list := []task.Task{}
	for _, id := range ts.order {
		t := ts.tasks[id]
		if t != nil && t.TeamID != nil && *t.TeamID == teamID {
			list = append(list, *t)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (ts *TestServer) handleTasksByUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := pathID(r, "userId")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	list := []task.Task{}
	for _, id := range ts.order {
		t := ts.tasks[id]
		if t != nil && t.HasAssignee(userID) {
			list = append(list, *t)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

type updateTaskBody struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Priority    *task.Priority `json:"priority"`
}

func (ts *TestServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	var body updateTaskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("update"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	t, ok := ts.tasks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if body.Title != nil {
		t.Title = *body.Title
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if body.Priority != nil {
		t.Priority = *body.Priority
	}
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("delete"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if _, ok := ts.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	delete(ts.tasks, id)
	for i, oid := range ts.order {
		if oid == id {
			ts.order = append(ts.order[:i], ts.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ts *TestServer) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	var body struct {
		Status task.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("status"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	t, ok := ts.tasks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	t.Status = body.Status
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleAssign(w http.ResponseWriter, r *http.Request) {
	taskID, _ := pathID(r, "id")
	userID, _ := pathID(r, "userId")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("assign"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	t, ok := ts.tasks[taskID]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	u, ok := ts.users[userID]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if t.TeamID != nil {
		tm := ts.teams[*t.TeamID]
		if tm == nil || !memberOf(tm, userID) {
			writeError(w, http.StatusBadRequest, "assignee is not a team member")
			return
		}
	}
	if !t.HasAssignee(userID) {
		t.Assignees = append(t.Assignees, u)
	}
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleUnassign(w http.ResponseWriter, r *http.Request) {
	taskID, _ := pathID(r, "id")
	userID, _ := pathID(r, "userId")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("unassign"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	t, ok := ts.tasks[taskID]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	for i := range t.Assignees {
		if t.Assignees[i].ID == userID {
			t.Assignees = append(t.Assignees[:i], t.Assignees[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var body team.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	me := ts.me
	t := &team.Team{
		ID:          ts.nextID,
		Name:        body.Name,
		Description: body.Description,
		Admin:       &me,
		Members:     []user.User{me},
	}
	ts.nextID++
	ts.teams[t.ID] = t
	writeJSON(w, http.StatusOK, t)
}

func (ts *TestServer) handleTeamsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	list := []team.Team{}
	for _, t := range ts.teams {
		if memberOf(t, userID) {
			list = append(list, *t)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (ts *TestServer) handleMembers(w http.ResponseWriter, r *http.Request) {
	teamID, _ := pathID(r, "teamId")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if msg, ok := ts.takeFailure("members"); ok {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	t, ok := ts.teams[teamID]
	if !ok {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}
	writeJSON(w, http.StatusOK, t.Members)
}

func (ts *TestServer) handleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, _ := pathID(r, "teamId")
	userID, _ := pathID(r, "userId")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	t, ok := ts.teams[teamID]
	if !ok {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}
	u, ok := ts.users[userID]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if !memberOf(t, userID) {
		t.Members = append(t.Members, u)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ts *TestServer) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, _ := pathID(r, "teamId")
	userID, _ := pathID(r, "userId")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	t, ok := ts.teams[teamID]
	if !ok {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}
	if t.Admin != nil && t.Admin.ID == userID {
		writeError(w, http.StatusBadRequest, "cannot remove the team admin")
		return
	}
	for i := range t.Members {
		if t.Members[i].ID == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func memberOf(t *team.Team, userID int64) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
