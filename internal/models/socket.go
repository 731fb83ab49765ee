package models

// WhiteboardSocketMessage is the frame exchanged on the whiteboard websocket and
// published to the board's redis channel.
type WhiteboardSocketMessage struct {
	Event      string              `json:"event"`
	Elements   Elements            `json:"elements,omitempty"`
	Whiteboard *WhiteboardResponse `json:"whiteboard,omitempty"`
	History    *HistoryState       `json:"history,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type HistoryState struct {
	Cursor  int  `json:"cursor"`
	Length  int  `json:"length"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}
