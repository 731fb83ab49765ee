package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaceHub/configs"
	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/handlers"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/servers/database"
	"spaceHub/internal/services"
)

// loopbackBroker delivers published messages to local subscribers, standing in for redis.
type loopbackBroker struct {
	mu       sync.Mutex
	handlers map[string][]func([]byte)
}

func newLoopbackBroker() *loopbackBroker {
	return &loopbackBroker{handlers: make(map[string][]func([]byte))}
}

func (b *loopbackBroker) Publish(ctx context.Context, channel string, message []byte) error {
	b.mu.Lock()
	subscribers := append([]func([]byte){}, b.handlers[channel]...)
	b.mu.Unlock()
	for _, handler := range subscribers {
		handler(message)
	}
	return nil
}

func (b *loopbackBroker) Subscribe(ctx context.Context, channel string, handler func([]byte)) error {
	b.mu.Lock()
	b.handlers[channel] = append(b.handlers[channel], handler)
	index := len(b.handlers[channel]) - 1
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[channel][index] = func([]byte) {}
	}()
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	server *HttpServer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	v := viper.New()
	v.Set("server.mode", gin.TestMode)
	v.Set("jwt.secret", "test-secret")
	v.Set("jwt.expiration_time", 3600)
	config := &configs.Config{Viper: v}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	uploadsDir := t.TempDir()
	localStorage, err := services.NewLocalStorageService(uploadsDir)
	require.NoError(t, err)

	broker := newLoopbackBroker()
	policy := access.NewPolicy()
	authRepo := repositories.NewAuthenticationRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	fileManager := services.NewFileManagerService(localStorage, 10<<20)
	authService := services.NewAuthenticationService(authRepo, config)
	activityService := services.NewActivityService(repositories.NewActivityRepository(db), workspaceRepo, policy)
	chatService := services.NewChatService(repositories.NewChatRepository(db), authRepo, workspaceRepo, policy, broker, activityService)
	whiteboardService := services.NewWhiteboardService(repositories.NewWhiteboardRepository(db), workspaceRepo, policy, broker, activityService)

	restHandler := handlers.NewRestHandler(
		authService,
		services.NewWorkspaceService(workspaceRepo, policy, activityService, fileManager),
		services.NewTaskService(repositories.NewTaskRepository(db), workspaceRepo, policy, activityService),
		services.NewDocumentService(repositories.NewDocumentRepository(db), workspaceRepo, policy, fileManager, activityService),
		chatService,
		services.NewEventService(repositories.NewEventRepository(db), authRepo, workspaceRepo, policy),
		whiteboardService,
		activityService,
		10<<20,
	)

	server := NewHttpServer(
		ctx,
		cancel,
		config,
		authService,
		restHandler,
		handlers.NewSocketChatHandler(ctx, authService, chatService, 50, 50),
		handlers.NewSocketWhiteboardHandler(ctx, authService, whiteboardService, 50, 50),
		uploadsDir,
	)
	return &testServer{router: server.Router(), server: server}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

// signUp registers and logs in a user, returning its id and token.
func (ts *testServer) signUp(t *testing.T, name string) (uint, string) {
	t.Helper()
	rec, _ := ts.do(t, nethttp.MethodPost, "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	rec, env := ts.do(t, nethttp.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    name + "@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.User.ID, login.Token
}

func (ts *testServer) createWorkspace(t *testing.T, token string, private bool) *models.WorkspaceResponse {
	t.Helper()
	rec, env := ts.do(t, nethttp.MethodPost, "/api/workspaces", token, map[string]any{
		"name":     "Platform",
		"settings": map[string]bool{"is_private": private},
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var workspace models.WorkspaceResponse
	require.NoError(t, json.Unmarshal(env.Data, &workspace))
	return &workspace
}

func TestRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec, env := ts.do(t, nethttp.MethodGet, "/api/workspaces", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{errs.ErrUnauthorized.Error()}, env.Errors)

	rec, env = ts.do(t, nethttp.MethodGet, "/api/workspaces", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{errs.ErrInvalidToken.Error()}, env.Errors)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "ada")

	rec, env := ts.do(t, nethttp.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "Wrong-passw0rd",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{errs.ErrWrongCredentials.Error()}, env.Errors)
}

func TestPrivateWorkspace_NonMemberIsForbidden(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.signUp(t, "owner")
	_, outsiderToken := ts.signUp(t, "outsider")
	workspace := ts.createWorkspace(t, ownerToken, true)

	path := fmt.Sprintf("/api/workspaces/%d/tasks", workspace.ID)
	rec, _ := ts.do(t, nethttp.MethodPost, path, ownerToken, map[string]string{"title": "Ship it"})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	rec, env := ts.do(t, nethttp.MethodGet, path, outsiderToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	assert.Equal(t, []string{errs.ErrForbidden.Error()}, env.Errors)

	rec, _ = ts.do(t, nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/members", workspace.ID), outsiderToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, nethttp.MethodGet, "/api/workspaces/9999/tasks", outsiderToken, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestTaskRoutes(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.signUp(t, "owner")
	workspace := ts.createWorkspace(t, token, false)

	rec, env := ts.do(t, nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/tasks", workspace.ID), token, map[string]string{
		"title": "Write docs",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var task models.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, enums.TASK_STATUS_TODO, task.Status)
	assert.Equal(t, enums.TASK_PRIORITY_MEDIUM, task.Priority)

	rec, env = ts.do(t, nethttp.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), token, map[string]string{
		"status": enums.TASK_STATUS_DONE,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, enums.TASK_STATUS_DONE, task.Status)

	rec, _ = ts.do(t, nethttp.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), token, map[string]string{
		"status": "blocked",
	})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, nethttp.MethodDelete, fmt.Sprintf("/api/workspaces/%d/tasks/%d", workspace.ID, task.ID), token, nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	rec, env = ts.do(t, nethttp.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, []string{errs.ErrTaskNotFound.Error()}, env.Errors)

	rec, env = ts.do(t, nethttp.MethodGet, fmt.Sprintf("/api/workspaces/%d/activities", workspace.ID), token, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var feed models.ActivityListResponse
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.NotEmpty(t, feed.Activities)
	assert.Equal(t, enums.ACTIVITY_TASK_COMPLETED, feed.Activities[0].Type)
}

func TestEventRoutes_EndMustFollowStart(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.signUp(t, "owner")
	workspace := ts.createWorkspace(t, token, false)
	path := fmt.Sprintf("/api/workspaces/%d/events", workspace.ID)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rec, env := ts.do(t, nethttp.MethodPost, path, token, map[string]any{
		"title": "Standup",
		"start": start,
		"end":   start,
	})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{errs.ErrEventEndBeforeStart.Error()}, env.Errors)

	rec, env = ts.do(t, nethttp.MethodGet, path, token, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, _ = ts.do(t, nethttp.MethodPost, path, token, map[string]any{
		"title": "Standup",
		"start": start,
		"end":   start.Add(15 * time.Minute),
	})
	assert.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
}

func TestMemberRoutes_OwnerCannotBeModified(t *testing.T) {
	ts := newTestServer(t)
	ownerID, ownerToken := ts.signUp(t, "owner")
	memberID, memberToken := ts.signUp(t, "member")
	workspace := ts.createWorkspace(t, ownerToken, false)

	rec, _ := ts.do(t, nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/members", workspace.ID), memberToken, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec, _ = ts.do(t, nethttp.MethodPut, fmt.Sprintf("/api/workspaces/%d/members/%d", workspace.ID, memberID), ownerToken, map[string]string{
		"role": enums.ROLE_ADMIN,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	for _, token := range []string{ownerToken, memberToken} {
		rec, env := ts.do(t, nethttp.MethodPut, fmt.Sprintf("/api/workspaces/%d/members/%d", workspace.ID, ownerID), token, map[string]string{
			"role": enums.ROLE_MEMBER,
		})
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{errs.ErrCannotModifyOwner.Error()}, env.Errors)

		rec, _ = ts.do(t, nethttp.MethodDelete, fmt.Sprintf("/api/workspaces/%d/members/%d", workspace.ID, ownerID), token, nil)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	}
}

func TestDocumentRoutes_Upload(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.signUp(t, "owner")
	workspace := ts.createWorkspace(t, token, false)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "Roadmap"))
	part, err := writer.CreateFormFile("file", "roadmap.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("q1: ship"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/documents", workspace.ID), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var document models.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &document))
	assert.Equal(t, "Roadmap", document.Name)
	require.True(t, strings.HasPrefix(document.File.URL, "/uploads/file-"))

	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, document.File.URL, nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "q1: ship", rec.Body.String())
}

func TestWhiteboardSocket_BroadcastsCommits(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.signUp(t, "owner")
	_, memberToken := ts.signUp(t, "member")
	workspace := ts.createWorkspace(t, ownerToken, false)

	rec, _ := ts.do(t, nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/members", workspace.ID), memberToken, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	server := httptest.NewServer(ts.router)
	defer server.Close()
	url := fmt.Sprintf("ws%s/ws/workspaces/%d/whiteboard?token=", strings.TrimPrefix(server.URL, "http"), workspace.ID)

	_, resp, err := websocket.DefaultDialer.Dial(url+"garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	owner, _, err := websocket.DefaultDialer.Dial(url+ownerToken, nil)
	require.NoError(t, err)
	defer owner.Close()
	member, _, err := websocket.DefaultDialer.Dial(url+memberToken, nil)
	require.NoError(t, err)
	defer member.Close()

	initial := readUntil(t, owner, enums.SOCKET_EVENT_HISTORY_STATE)
	assert.Equal(t, 0, initial.History.Cursor)
	assert.False(t, initial.History.CanUndo)
	readUntil(t, member, enums.SOCKET_EVENT_HISTORY_STATE)

	require.NoError(t, owner.WriteJSON(models.WhiteboardSocketMessage{
		Event:    enums.SOCKET_EVENT_COMMIT_WHITEBOARD,
		Elements: models.Elements{{ID: "a", Type: enums.ELEMENT_RECTANGLE, Width: 10, Height: 10}},
	}))

	state := readUntil(t, member, enums.SOCKET_EVENT_WHITEBOARD_STATE)
	require.Len(t, state.Whiteboard.Elements, 1)
	assert.Equal(t, "a", state.Whiteboard.Elements[0].ID)

	history := readUntil(t, owner, enums.SOCKET_EVENT_HISTORY_STATE)
	assert.Equal(t, 1, history.History.Cursor)
	assert.True(t, history.History.CanUndo)

	require.NoError(t, owner.WriteJSON(models.WhiteboardSocketMessage{Event: "erase"}))
	failure := readUntil(t, owner, enums.SOCKET_EVENT_ERROR)
	assert.Equal(t, errs.ErrUnknownSocketEvent.Error(), failure.Error)

	require.NoError(t, owner.WriteJSON(models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_UNDO_WHITEBOARD}))
	state = readUntil(t, member, enums.SOCKET_EVENT_WHITEBOARD_STATE)
	assert.Empty(t, state.Whiteboard.Elements)
}

func TestWhiteboardSocket_RemovedMemberIsDisconnected(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.signUp(t, "owner")
	memberID, memberToken := ts.signUp(t, "member")
	workspace := ts.createWorkspace(t, ownerToken, false)

	rec, _ := ts.do(t, nethttp.MethodPost, fmt.Sprintf("/api/workspaces/%d/members", workspace.ID), memberToken, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	server := httptest.NewServer(ts.router)
	defer server.Close()
	url := fmt.Sprintf("ws%s/ws/workspaces/%d/whiteboard?token=", strings.TrimPrefix(server.URL, "http"), workspace.ID)

	member, _, err := websocket.DefaultDialer.Dial(url+memberToken, nil)
	require.NoError(t, err)
	defer member.Close()
	readUntil(t, member, enums.SOCKET_EVENT_HISTORY_STATE)

	rec, _ = ts.do(t, nethttp.MethodPut, fmt.Sprintf("/api/workspaces/%d", workspace.ID), ownerToken, map[string]any{
		"settings": map[string]bool{"is_private": true},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	rec, _ = ts.do(t, nethttp.MethodDelete, fmt.Sprintf("/api/workspaces/%d/members/%d", workspace.ID, memberID), ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	require.NoError(t, member.WriteJSON(models.WhiteboardSocketMessage{
		Event:    enums.SOCKET_EVENT_COMMIT_WHITEBOARD,
		Elements: models.Elements{{ID: "a", Type: enums.ELEMENT_RECTANGLE}},
	}))
	failure := readUntil(t, member, enums.SOCKET_EVENT_ERROR)
	assert.Equal(t, errs.ErrForbidden.Error(), failure.Error)

	_, _, err = member.ReadMessage()
	assert.Error(t, err)

	rec, env := ts.do(t, nethttp.MethodGet, fmt.Sprintf("/api/workspaces/%d/whiteboard", workspace.ID), ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var board models.WhiteboardResponse
	require.NoError(t, json.Unmarshal(env.Data, &board))
	assert.Empty(t, board.Elements)
}

func readUntil(t *testing.T, conn *websocket.Conn, event string) *models.WhiteboardSocketMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var message models.WhiteboardSocketMessage
		require.NoError(t, conn.ReadJSON(&message))
		if message.Event == event {
			return &message
		}
	}
}
