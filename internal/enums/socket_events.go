package enums

// Whiteboard socket events, client to server.
const (
	SOCKET_EVENT_COMMIT_WHITEBOARD = "commit"
	SOCKET_EVENT_UNDO_WHITEBOARD   = "undo"
	SOCKET_EVENT_REDO_WHITEBOARD   = "redo"
	SOCKET_EVENT_CLEAR_WHITEBOARD  = "clear"
)

// Server to client.
const (
	SOCKET_EVENT_WHITEBOARD_STATE = "whiteboard_state"
	SOCKET_EVENT_HISTORY_STATE    = "history_state"
	SOCKET_EVENT_ERROR            = "error"
)
