package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"spaceHub/configs"
	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/interfaces/mocks"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/servers/database"
)

type testEnv struct {
	db          *gorm.DB
	broker      *mocks.MockBroker
	files       *mocks.MockFileManager
	auth        *AuthenticationService
	activities  *ActivityService
	workspaces  *WorkspaceService
	tasks       *TaskService
	documents   *DocumentService
	chat        *ChatService
	events      *EventService
	whiteboards *WhiteboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	v := viper.New()
	v.Set("jwt.secret", "test-secret")
	v.Set("jwt.expiration_time", 3600)
	config := &configs.Config{Viper: v}

	broker := new(mocks.MockBroker)
	broker.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	files := new(mocks.MockFileManager)

	authRepo := repositories.NewAuthenticationRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	policy := access.NewPolicy()
	fileManager := NewFileManagerService(files, 10<<20)
	activities := NewActivityService(repositories.NewActivityRepository(db), workspaceRepo, policy)

	return &testEnv{
		db:          db,
		broker:      broker,
		files:       files,
		auth:        NewAuthenticationService(authRepo, config),
		activities:  activities,
		workspaces:  NewWorkspaceService(workspaceRepo, policy, activities, fileManager),
		tasks:       NewTaskService(repositories.NewTaskRepository(db), workspaceRepo, policy, activities),
		documents:   NewDocumentService(repositories.NewDocumentRepository(db), workspaceRepo, policy, fileManager, activities),
		chat:        NewChatService(repositories.NewChatRepository(db), authRepo, workspaceRepo, policy, broker, activities),
		events:      NewEventService(repositories.NewEventRepository(db), authRepo, workspaceRepo, policy),
		whiteboards: NewWhiteboardService(repositories.NewWhiteboardRepository(db), workspaceRepo, policy, broker, activities),
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) workspace(t *testing.T, owner *models.User, private bool) *models.WorkspaceResponse {
	t.Helper()
	workspace, errors := e.workspaces.CreateWorkspace(context.Background(), owner.ID, &models.CreateWorkspaceRequestBody{
		Name:     "team",
		Settings: &models.WorkspaceSettings{IsPrivate: private},
	})
	require.Empty(t, errors)
	return workspace
}

func ptr[T any](v T) *T { return &v }

func TestAuthenticationService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, errors := env.auth.Register(ctx, &models.RegisterRequestBody{
		Username: "ada", Email: "Ada@Example.com", Password: "Passw0rd!",
	})
	require.Empty(t, errors)
	assert.Equal(t, "ada@example.com", user.Email)

	_, errors = env.auth.Register(ctx, &models.RegisterRequestBody{
		Username: "ada2", Email: "ada@example.com", Password: "Passw0rd!",
	})
	assert.Equal(t, []error{errs.ErrUserAlreadyExists}, errors)

	_, errors = env.auth.Login(ctx, &models.LoginRequestBody{Email: "ada@example.com", Password: "wrong-password"})
	assert.Equal(t, []error{errs.ErrWrongCredentials}, errors)

	login, errors := env.auth.Login(ctx, &models.LoginRequestBody{Email: "ada@example.com", Password: "Passw0rd!"})
	require.Empty(t, errors)
	claims, err := env.auth.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)

	_, err = env.auth.VerifyToken(login.Token + "x")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	users, errors := env.auth.GetAllUsersWithPagination(ctx, 1, 10)
	require.Empty(t, errors)
	assert.EqualValues(t, 1, users.Pagination.TotalItems)
}

func TestWorkspaceService_Membership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob, carol := env.user(t, "owner"), env.user(t, "bob"), env.user(t, "carol")

	workspace := env.workspace(t, owner, false)
	require.Len(t, workspace.Members, 1)
	assert.Equal(t, enums.ROLE_ADMIN, workspace.Members[0].Role)

	joined, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)
	assert.Len(t, joined.Members, 2)

	_, errors = env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	assert.Equal(t, []error{errs.ErrAlreadyMember}, errors)
	_, errors = env.workspaces.JoinWorkspace(ctx, workspace.ID, owner.ID)
	assert.Equal(t, []error{errs.ErrAlreadyMember}, errors)

	// plain members cannot change roles
	_, errors = env.workspaces.UpdateMemberRole(ctx, workspace.ID, bob.ID, owner.ID, enums.ROLE_MEMBER)
	assert.Equal(t, []error{errs.ErrAdminRequired}, errors)

	members, errors := env.workspaces.UpdateMemberRole(ctx, workspace.ID, owner.ID, bob.ID, enums.ROLE_ADMIN)
	require.Empty(t, errors)
	assert.Equal(t, enums.ROLE_ADMIN, members[1].Role)

	_, errors = env.workspaces.UpdateMemberRole(ctx, workspace.ID, owner.ID, bob.ID, "superuser")
	assert.Equal(t, []error{errs.ErrInvalidRole}, errors)

	_, errors = env.workspaces.UpdateMemberRole(ctx, workspace.ID, owner.ID, carol.ID, enums.ROLE_ADMIN)
	assert.Equal(t, []error{errs.ErrMemberNotFound}, errors)

	_, errors = env.workspaces.JoinWorkspace(ctx, workspace.ID, carol.ID)
	require.Empty(t, errors)
	members, errors = env.workspaces.RemoveMember(ctx, workspace.ID, carol.ID, carol.ID)
	require.Empty(t, errors)
	assert.Len(t, members, 2)

	activities, errors := env.activities.GetActivities(ctx, workspace.ID, owner.ID, 1, 20)
	require.Empty(t, errors)
	assert.EqualValues(t, 3, activities.Pagination.TotalItems)
	assert.Equal(t, enums.ACTIVITY_MEMBER_LEFT, activities.Activities[0].Type)
}

func TestWorkspaceService_OwnerCannotBeModified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob := env.user(t, "owner"), env.user(t, "bob")
	workspace := env.workspace(t, owner, false)

	_, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)
	_, errors = env.workspaces.UpdateMemberRole(ctx, workspace.ID, owner.ID, bob.ID, enums.ROLE_ADMIN)
	require.Empty(t, errors)

	for _, actor := range []uint{owner.ID, bob.ID} {
		_, errors = env.workspaces.UpdateMemberRole(ctx, workspace.ID, actor, owner.ID, enums.ROLE_MEMBER)
		assert.Equal(t, []error{errs.ErrCannotModifyOwner}, errors)
		_, errors = env.workspaces.RemoveMember(ctx, workspace.ID, actor, owner.ID)
		assert.Equal(t, []error{errs.ErrCannotModifyOwner}, errors)
	}
}

func TestWorkspaceService_PrivateWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, outsider := env.user(t, "owner"), env.user(t, "outsider")
	workspace := env.workspace(t, owner, true)

	_, errors := env.workspaces.GetWorkspace(ctx, workspace.ID, outsider.ID)
	assert.Equal(t, []error{errs.ErrForbidden}, errors)

	_, errors = env.tasks.GetTasks(ctx, workspace.ID, outsider.ID, "")
	assert.Equal(t, []error{errs.ErrForbidden}, errors)

	_, errors = env.workspaces.JoinWorkspace(ctx, workspace.ID, outsider.ID)
	assert.Equal(t, []error{errs.ErrPrivateWorkspaceJoin}, errors)

	_, errors = env.workspaces.GetWorkspace(ctx, 4242, outsider.ID)
	assert.Equal(t, []error{errs.ErrWorkspaceNotFound}, errors)
}

func TestWorkspaceService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob := env.user(t, "owner"), env.user(t, "bob")
	workspace := env.workspace(t, owner, false)
	_, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)

	assert.Equal(t, []error{errs.ErrAdminRequired}, env.workspaces.DeleteWorkspace(ctx, workspace.ID, bob.ID))
	assert.Empty(t, env.workspaces.DeleteWorkspace(ctx, workspace.ID, owner.ID))

	_, errors = env.workspaces.GetWorkspace(ctx, workspace.ID, owner.ID)
	assert.Equal(t, []error{errs.ErrWorkspaceNotFound}, errors)
}

func TestTaskService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob, outsider := env.user(t, "owner"), env.user(t, "bob"), env.user(t, "outsider")
	workspace := env.workspace(t, owner, false)
	_, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)

	_, errors = env.tasks.CreateTask(ctx, workspace.ID, bob.ID, &models.TaskRequestBody{
		Title: ptr("write docs"), AssigneeID: ptr(outsider.ID),
	})
	assert.Equal(t, []error{errs.ErrAssigneeNotInSpace}, errors)

	task, errors := env.tasks.CreateTask(ctx, workspace.ID, bob.ID, &models.TaskRequestBody{
		Title: ptr("write docs"), AssigneeID: ptr(owner.ID), Labels: []string{"docs"},
	})
	require.Empty(t, errors)
	assert.Equal(t, enums.TASK_STATUS_TODO, task.Status)
	assert.Equal(t, enums.TASK_PRIORITY_MEDIUM, task.Priority)
	assert.Equal(t, owner.ID, task.Assignee.ID)
	assert.Equal(t, "bob", task.CreatedBy.Username)

	updated, errors := env.tasks.UpdateTask(ctx, 0, task.ID, bob.ID, &models.TaskRequestBody{Status: ptr(enums.TASK_STATUS_DONE)})
	require.Empty(t, errors)
	assert.Equal(t, enums.TASK_STATUS_DONE, updated.Status)
	assert.Equal(t, "write docs", updated.Title)
	assert.Equal(t, models.StringList{"docs"}, updated.Labels)

	done, errors := env.tasks.GetTasks(ctx, workspace.ID, owner.ID, enums.TASK_STATUS_DONE)
	require.Empty(t, errors)
	assert.Len(t, done, 1)
	_, errors = env.tasks.GetTasks(ctx, workspace.ID, owner.ID, "blocked")
	assert.Equal(t, []error{errs.ErrInvalidTaskStatus}, errors)

	_, errors = env.tasks.GetTask(ctx, workspace.ID+1, task.ID, owner.ID)
	assert.Equal(t, []error{errs.ErrTaskNotFound}, errors)

	assert.Equal(t, []error{errs.ErrAdminRequired}, env.tasks.DeleteTask(ctx, 0, task.ID, bob.ID))
	assert.Empty(t, env.tasks.DeleteTask(ctx, workspace.ID, task.ID, owner.ID))

	activities, errors := env.activities.GetActivities(ctx, workspace.ID, owner.ID, 1, 1)
	require.Empty(t, errors)
	require.Len(t, activities.Activities, 1)
	assert.Equal(t, enums.ACTIVITY_TASK_COMPLETED, activities.Activities[0].Type)
}

func TestEventService_EndMustFollowStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob := env.user(t, "owner"), env.user(t, "bob")
	workspace := env.workspace(t, owner, false)
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	_, errors := env.events.CreateEvent(ctx, workspace.ID, owner.ID, &models.EventRequestBody{
		Title: "retro", Start: &start, End: &start,
	})
	assert.Equal(t, []error{errs.ErrEventEndBeforeStart}, errors)

	var count int64
	require.NoError(t, env.db.Model(&models.Event{}).Count(&count).Error)
	assert.Zero(t, count)

	end := start.Add(time.Hour)
	event, errors := env.events.CreateEvent(ctx, workspace.ID, owner.ID, &models.EventRequestBody{
		Title: "retro", Start: &start, End: &end, Attendees: []uint{bob.ID, 999},
	})
	require.Empty(t, errors)
	assert.Equal(t, enums.DEFAULT_EVENT_COLOR, event.Color)
	require.Len(t, event.Attendees, 1)
	assert.Equal(t, bob.ID, event.Attendees[0].ID)

	before := start.Add(-time.Hour)
	_, errors = env.events.UpdateEvent(ctx, workspace.ID, event.ID, owner.ID, &models.EventRequestBody{
		Title: "retro", Start: &start, End: &before,
	})
	assert.Equal(t, []error{errs.ErrEventEndBeforeStart}, errors)

	updated, errors := env.events.UpdateEvent(ctx, workspace.ID, event.ID, owner.ID, &models.EventRequestBody{
		Title: "retro v2", Start: &start, End: &end, Color: "#000000", Attendees: []uint{},
	})
	require.Empty(t, errors)
	assert.Equal(t, "retro v2", updated.Title)
	assert.Empty(t, updated.Attendees)

	assert.Equal(t, []error{errs.ErrEventNotFound}, env.events.DeleteEvent(ctx, workspace.ID, event.ID+1, owner.ID))
	assert.Empty(t, env.events.DeleteEvent(ctx, workspace.ID, event.ID, owner.ID))
}

func TestChatService_Channels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob := env.user(t, "owner"), env.user(t, "bob")
	workspace := env.workspace(t, owner, false)
	_, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)

	general, errors := env.chat.CreateChannel(ctx, workspace.ID, owner.ID, &models.CreateChannelRequestBody{Name: " General "})
	require.Empty(t, errors)
	assert.Equal(t, "general", general.Name)

	_, errors = env.chat.CreateChannel(ctx, workspace.ID, bob.ID, &models.CreateChannelRequestBody{Name: "GENERAL"})
	assert.Equal(t, []error{errs.ErrChannelAlreadyExists}, errors)

	secret, errors := env.chat.CreateChannel(ctx, workspace.ID, owner.ID, &models.CreateChannelRequestBody{Name: "leads", IsPrivate: true})
	require.Empty(t, errors)

	channels, errors := env.chat.GetChannels(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)
	require.Len(t, channels, 1)
	assert.Equal(t, general.ID, channels[0].ID)

	_, errors = env.chat.GetMessages(ctx, 0, secret.ID, bob.ID)
	assert.Equal(t, []error{errs.ErrNotChannelMember}, errors)
}

func TestChatService_Messages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, bob := env.user(t, "owner"), env.user(t, "bob")
	workspace := env.workspace(t, owner, false)
	_, errors := env.workspaces.JoinWorkspace(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)
	channel, errors := env.chat.CreateChannel(ctx, workspace.ID, owner.ID, &models.CreateChannelRequestBody{Name: "general"})
	require.Empty(t, errors)

	message, errors := env.chat.SendMessage(ctx, 0, channel.ID, owner.ID, &models.MessageRequest{Content: "hello"})
	require.Empty(t, errors)
	env.broker.AssertCalled(t, "Publish", mock.Anything, enums.RedisChannelMessages(channel.ID), mock.Anything)

	_, errors = env.chat.SendMessage(ctx, 0, channel.ID, owner.ID, &models.MessageRequest{Content: "  "})
	assert.Equal(t, []error{errs.ErrMessageContent}, errors)

	_, errors = env.chat.EditMessage(ctx, message.ID, bob.ID, &models.MessageRequest{Content: "hijacked"})
	assert.Equal(t, []error{errs.ErrNotMessageSender}, errors)

	edited, errors := env.chat.EditMessage(ctx, message.ID, owner.ID, &models.MessageRequest{Content: "hello all"})
	require.Empty(t, errors)
	assert.True(t, edited.IsEdited)
	assert.Equal(t, "hello all", edited.Content)

	reacted, errors := env.chat.ToggleReaction(ctx, message.ID, bob.ID, "👍")
	require.Empty(t, errors)
	assert.Equal(t, models.Reactions{{Emoji: "👍", Users: []uint{bob.ID}}}, reacted.Reactions)

	reacted, errors = env.chat.ToggleReaction(ctx, message.ID, bob.ID, "👍")
	require.Empty(t, errors)
	assert.Empty(t, reacted.Reactions)

	messages, errors := env.chat.GetMessages(ctx, workspace.ID, channel.ID, bob.ID)
	require.Empty(t, errors)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello all", messages[0].Content)
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestDocumentService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, outsider := env.user(t, "owner"), env.user(t, "outsider")
	workspace := env.workspace(t, owner, true)

	env.files.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(5), mock.Anything).
		Return("/uploads/stored.txt", nil)
	env.files.On("DeleteFile", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	public, errors := env.documents.CreateDocument(ctx, workspace.ID, owner.ID,
		&models.CreateDocumentRequest{IsPublic: true}, multipartFile(t, "notes.txt", []byte("hello")))
	require.Empty(t, errors)
	assert.Equal(t, "notes.txt", public.Name)
	assert.Equal(t, "/uploads/stored.txt", public.File.URL)
	assert.Regexp(t, `^file-[0-9a-f-]{36}\.txt$`, public.File.Key)

	hidden, errors := env.documents.CreateDocument(ctx, workspace.ID, owner.ID,
		&models.CreateDocumentRequest{Name: "plan"}, multipartFile(t, "plan.txt", []byte("12345")))
	require.Empty(t, errors)

	_, errors = env.documents.GetDocument(ctx, public.ID, outsider.ID)
	assert.Empty(t, errors)
	_, errors = env.documents.GetDocument(ctx, hidden.ID, outsider.ID)
	assert.Equal(t, []error{errs.ErrForbidden}, errors)

	_, errors = env.documents.CreateDocument(ctx, workspace.ID, owner.ID, &models.CreateDocumentRequest{}, nil)
	assert.Equal(t, []error{errs.ErrNoFileUploaded}, errors)

	assert.Empty(t, env.documents.DeleteDocument(ctx, hidden.ID, owner.ID))
	env.files.AssertCalled(t, "DeleteFile", mock.Anything, hidden.File.Key)

	documents, errors := env.documents.GetDocuments(ctx, workspace.ID, owner.ID)
	require.Empty(t, errors)
	assert.Len(t, documents, 1)
}

func TestWhiteboardSession_UndoRedo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	workspace := env.workspace(t, owner, false)

	session, board, errors := env.whiteboards.OpenSession(ctx, workspace.ID, owner.ID)
	require.Empty(t, errors)
	assert.Empty(t, board.Elements)

	s1 := models.Elements{{ID: "1", Type: enums.ELEMENT_RECTANGLE}}
	s2 := models.Elements{{ID: "1", Type: enums.ELEMENT_RECTANGLE}, {ID: "2", Type: enums.ELEMENT_CIRCLE}}
	s3 := models.Elements{{ID: "3", Type: enums.ELEMENT_TEXT, Text: "hi"}}

	for _, elements := range []models.Elements{s1, s2} {
		_, err := session.Handle(ctx, &models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_COMMIT_WHITEBOARD, Elements: elements})
		require.NoError(t, err)
	}
	state, err := session.Handle(ctx, &models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_UNDO_WHITEBOARD})
	require.NoError(t, err)
	assert.Equal(t, 1, state.History.Cursor)

	stored, errors := env.whiteboards.GetWhiteboard(ctx, workspace.ID, owner.ID)
	require.Empty(t, errors)
	require.Len(t, stored.Elements, 1)
	assert.Equal(t, "1", stored.Elements[0].ID)

	state, err = session.Handle(ctx, &models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_COMMIT_WHITEBOARD, Elements: s3})
	require.NoError(t, err)
	assert.False(t, state.History.CanRedo)
	assert.Equal(t, 3, state.History.Length)

	state, err = session.Handle(ctx, &models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_REDO_WHITEBOARD})
	require.NoError(t, err)
	assert.Equal(t, 2, state.History.Cursor)

	stored, errors = env.whiteboards.GetWhiteboard(ctx, workspace.ID, owner.ID)
	require.Empty(t, errors)
	require.Len(t, stored.Elements, 1)
	assert.Equal(t, "3", stored.Elements[0].ID)
	assert.Equal(t, owner.ID, stored.Elements[0].CreatedBy)

	state, err = session.Handle(ctx, &models.WhiteboardSocketMessage{Event: enums.SOCKET_EVENT_CLEAR_WHITEBOARD})
	require.NoError(t, err)
	assert.Equal(t, 4, state.History.Length)

	_, err = session.Handle(ctx, &models.WhiteboardSocketMessage{Event: "explode"})
	assert.ErrorIs(t, err, errs.ErrUnknownSocketEvent)

	_, err = session.Handle(ctx, &models.WhiteboardSocketMessage{
		Event: enums.SOCKET_EVENT_COMMIT_WHITEBOARD, Elements: models.Elements{{Type: "hexagon"}},
	})
	assert.ErrorIs(t, err, errs.ErrInvalidElementType)

	env.broker.AssertCalled(t, "Publish", mock.Anything, enums.RedisChannelWhiteboard(workspace.ID), mock.Anything)
}

func TestWhiteboardSession_RemovedMemberCannotEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	bob := env.user(t, "bob")
	workspace := env.workspace(t, owner, true)
	require.NoError(t, repositories.NewWorkspaceRepository(env.db).AddMember(ctx, &models.WorkspaceMember{
		WorkspaceID: workspace.ID, UserID: bob.ID, Role: enums.ROLE_MEMBER, JoinedAt: time.Now(),
	}))

	session, _, errors := env.whiteboards.OpenSession(ctx, workspace.ID, bob.ID)
	require.Empty(t, errors)
	_, err := session.Handle(ctx, &models.WhiteboardSocketMessage{
		Event: enums.SOCKET_EVENT_COMMIT_WHITEBOARD, Elements: models.Elements{{ID: "1", Type: enums.ELEMENT_RECTANGLE}},
	})
	require.NoError(t, err)

	_, errors = env.workspaces.RemoveMember(ctx, workspace.ID, owner.ID, bob.ID)
	require.Empty(t, errors)

	assert.ErrorIs(t, session.Authorize(ctx), errs.ErrForbidden)
	for _, event := range []string{
		enums.SOCKET_EVENT_COMMIT_WHITEBOARD,
		enums.SOCKET_EVENT_UNDO_WHITEBOARD,
		enums.SOCKET_EVENT_CLEAR_WHITEBOARD,
	} {
		_, err = session.Handle(ctx, &models.WhiteboardSocketMessage{
			Event: event, Elements: models.Elements{{ID: "2", Type: enums.ELEMENT_CIRCLE}},
		})
		assert.ErrorIs(t, err, errs.ErrForbidden, event)
	}

	stored, errors := env.whiteboards.GetWhiteboard(ctx, workspace.ID, owner.ID)
	require.Empty(t, errors)
	require.Len(t, stored.Elements, 1)
	assert.Equal(t, "1", stored.Elements[0].ID)
}

func TestChatService_WatchChannelAfterRemoval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	bob := env.user(t, "bob")
	workspace := env.workspace(t, owner, true)
	require.NoError(t, repositories.NewWorkspaceRepository(env.db).AddMember(ctx, &models.WorkspaceMember{
		WorkspaceID: workspace.ID, UserID: bob.ID, Role: enums.ROLE_MEMBER, JoinedAt: time.Now(),
	}))
	channel, errors := env.chat.CreateChannel(ctx, workspace.ID, owner.ID, &models.CreateChannelRequestBody{Name: "general"})
	require.Empty(t, errors)

	assert.Empty(t, env.chat.WatchChannel(ctx, channel.ID, bob.ID))

	_, errors = env.workspaces.RemoveMember(ctx, workspace.ID, owner.ID, bob.ID)
	require.Empty(t, errors)
	assert.Equal(t, []error{errs.ErrForbidden}, env.chat.WatchChannel(ctx, channel.ID, bob.ID))
}

func TestWhiteboardService_UpdateKeepsBackground(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	workspace := env.workspace(t, owner, false)

	updated, errors := env.whiteboards.UpdateWhiteboard(ctx, workspace.ID, owner.ID, &models.UpdateWhiteboardRequestBody{
		Elements: models.Elements{{ID: "a", Type: enums.ELEMENT_LINE, Points: []models.Point{{X: 1, Y: 2}}}},
	})
	require.Empty(t, errors)
	assert.Equal(t, enums.DEFAULT_WHITEBOARD_BACKGROUND, updated.Background)
	assert.Equal(t, "owner", updated.LastModifiedBy.Username)

	updated, errors = env.whiteboards.UpdateWhiteboard(ctx, workspace.ID, owner.ID, &models.UpdateWhiteboardRequestBody{Background: "#000000"})
	require.Empty(t, errors)
	assert.Equal(t, "#000000", updated.Background)
	assert.Len(t, updated.Elements, 1)
}
