package services

import (
	"context"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/history"
	"spaceHub/internal/models"
	"spaceHub/internal/validators"
)

// WhiteboardSession is one client's editing session. It keeps the client's own
// undo/redo history, seeded with the board as it was when the session opened.
type WhiteboardSession struct {
	service     *WhiteboardService
	workspaceID uint
	userID      uint
	history     *history.History[models.Elements]
}

func (ws *WhiteboardService) OpenSession(ctx context.Context, workspaceID, actorID uint) (*WhiteboardSession, *models.WhiteboardResponse, []error) {
	if _, errors := ws.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, nil, errors
	}
	whiteboard, err := ws.whiteboardRepo.FindOrCreateWhiteboard(ctx, workspaceID)
	if err != nil {
		return nil, nil, []error{err}
	}

	h := history.New[models.Elements]()
	h.Commit(whiteboard.Elements.Clone())

	return &WhiteboardSession{
		service:     ws,
		workspaceID: workspaceID,
		userID:      actorID,
		history:     h,
	}, whiteboard.ToWhiteboardResponse(), nil
}

// Handle applies one client event. Accepted changes are persisted and published as
// whiteboard_state; the returned history_state goes back to this client only. Undo and
// redo at the ends of the history change nothing.
func (s *WhiteboardSession) Handle(ctx context.Context, message *models.WhiteboardSocketMessage) (*models.WhiteboardSocketMessage, error) {
	if err := s.Authorize(ctx); err != nil {
		return nil, err
	}

	var (
		next    models.Elements
		changed bool
	)

	switch message.Event {
	case enums.SOCKET_EVENT_COMMIT_WHITEBOARD:
		if errors := validators.ValidateElements(message.Elements); len(errors) > 0 {
			return nil, errors[0]
		}
		next = message.Elements.Clone()
		s.history.Commit(next)
		changed = true
	case enums.SOCKET_EVENT_UNDO_WHITEBOARD:
		next, changed = s.history.Undo()
	case enums.SOCKET_EVENT_REDO_WHITEBOARD:
		next, changed = s.history.Redo()
	case enums.SOCKET_EVENT_CLEAR_WHITEBOARD:
		next = models.Elements{}
		s.history.Clear(next)
		changed = true
	default:
		return nil, errs.ErrUnknownSocketEvent
	}

	if changed {
		if _, err := s.service.save(ctx, s.workspaceID, s.userID, next, ""); err != nil {
			return nil, err
		}
	}
	return s.State(), nil
}

// Authorize re-checks that the session's user may still use the workspace. Membership
// can be revoked while the socket is open.
func (s *WhiteboardSession) Authorize(ctx context.Context) error {
	if _, errors := s.service.authorize(ctx, s.workspaceID, s.userID, access.Options{}); len(errors) > 0 {
		return errors[0]
	}
	return nil
}

func (s *WhiteboardSession) State() *models.WhiteboardSocketMessage {
	return &models.WhiteboardSocketMessage{
		Event: enums.SOCKET_EVENT_HISTORY_STATE,
		History: &models.HistoryState{
			Cursor:  s.history.Cursor(),
			Length:  s.history.Len(),
			CanUndo: s.history.CanUndo(),
			CanRedo: s.history.CanRedo(),
		},
	}
}

func (s *WhiteboardSession) WorkspaceID() uint {
	return s.workspaceID
}
