package enums

const (
	ACTIVITY_TASK_CREATED       = "task_created"
	ACTIVITY_TASK_UPDATED       = "task_updated"
	ACTIVITY_TASK_COMPLETED     = "task_completed"
	ACTIVITY_DOCUMENT_CREATED   = "document_created"
	ACTIVITY_DOCUMENT_UPDATED   = "document_updated"
	ACTIVITY_MESSAGE_SENT       = "message_sent"
	ACTIVITY_CHANNEL_CREATED    = "channel_created"
	ACTIVITY_MEMBER_JOINED      = "member_joined"
	ACTIVITY_MEMBER_LEFT        = "member_left"
	ACTIVITY_WHITEBOARD_UPDATED = "whiteboard_updated"
)

const (
	TARGET_TASK       = "Task"
	TARGET_DOCUMENT   = "Document"
	TARGET_MESSAGE    = "Message"
	TARGET_CHANNEL    = "Channel"
	TARGET_WHITEBOARD = "Whiteboard"
	TARGET_USER       = "User"
)
