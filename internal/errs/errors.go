package errs

import "errors"

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidParams      = Error("invalid params")
	ErrInvalidPageOrSize  = Error("invalid page or size")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidUser        = Error("invalid user")
	ErrUsername           = Error("username is empty or too short")
	ErrWrongCredentials   = Error("wrong email or password")

	ErrWorkspaceName         = Error("workspace name is required")
	ErrAlreadyMember         = Error("user is already a member of this workspace")
	ErrInvalidRole           = Error("role must be admin or member")
	ErrCannotModifyOwner     = Error("cannot change role of or remove the workspace owner")
	ErrTaskTitle             = Error("task title is required")
	ErrInvalidTaskStatus     = Error("task status must be one of todo, in_progress, review, done")
	ErrInvalidTaskPriority   = Error("task priority must be one of low, medium, high")
	ErrAssigneeNotInSpace    = Error("assignee is not a member of this workspace")
	ErrDocumentName          = Error("document name is required")
	ErrNoFileUploaded        = Error("no file uploaded")
	ErrFileTooLarge          = Error("uploaded file is too large")
	ErrChannelName           = Error("channel name must be between 2 and 50 characters")
	ErrChannelAlreadyExists  = Error("channel with this name already exists")
	ErrMessageContent        = Error("message content is required")
	ErrEmojiRequired         = Error("emoji is required")
	ErrEventTitle            = Error("event title is required")
	ErrEventDates            = Error("event start and end are required")
	ErrEventEndBeforeStart   = Error("end date must be after start date")
	ErrInvalidRecurrence     = Error("recurring pattern must be one of daily, weekly, monthly, yearly")
	ErrInvalidElementType    = Error("whiteboard element type must be one of rectangle, circle, line, text, image")
	ErrUnknownSocketEvent    = Error("unknown whiteboard event")

	ErrUnauthorized = Error("unauthorized")
	ErrInvalidToken = Error("invalid token")

	ErrForbidden            = Error("access denied")
	ErrAdminRequired        = Error("admin access required")
	ErrNotChannelMember     = Error("not authorized to access this channel")
	ErrNotMessageSender     = Error("only the sender can edit this message")
	ErrPrivateWorkspaceJoin = Error("private workspaces are invite only")

	ErrUserNotFound       = Error("user not found")
	ErrWorkspaceNotFound  = Error("workspace not found")
	ErrMemberNotFound     = Error("member not found")
	ErrTaskNotFound       = Error("task not found")
	ErrDocumentNotFound   = Error("document not found")
	ErrChannelNotFound    = Error("channel not found")
	ErrMessageNotFound    = Error("message not found")
	ErrEventNotFound      = Error("event not found")
	ErrWhiteboardNotFound = Error("whiteboard not found")

	ErrUnableToOpenUploadedFile = Error("unable to open uploaded file")
	ErrUnableToUploadFile       = Error("unable to upload file")
	ErrInternal                 = Error("something went wrong")
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

var kinds = map[Error]Kind{
	ErrUnauthorized:     KindUnauthorized,
	ErrInvalidToken:     KindUnauthorized,
	ErrWrongCredentials: KindUnauthorized,

	ErrForbidden:            KindForbidden,
	ErrAdminRequired:        KindForbidden,
	ErrNotChannelMember:     KindForbidden,
	ErrNotMessageSender:     KindForbidden,
	ErrPrivateWorkspaceJoin: KindForbidden,

	ErrUserNotFound:       KindNotFound,
	ErrWorkspaceNotFound:  KindNotFound,
	ErrMemberNotFound:     KindNotFound,
	ErrTaskNotFound:       KindNotFound,
	ErrDocumentNotFound:   KindNotFound,
	ErrChannelNotFound:    KindNotFound,
	ErrMessageNotFound:    KindNotFound,
	ErrEventNotFound:      KindNotFound,
	ErrWhiteboardNotFound: KindNotFound,

	ErrUnableToOpenUploadedFile: KindInternal,
	ErrUnableToUploadFile:       KindInternal,
	ErrInternal:                 KindInternal,
}

// KindOf classifies err. Sentinels not listed above are request problems and count as
// validation errors; anything that is not an errs.Error is internal.
func KindOf(err error) Kind {
	var e Error
	if !errors.As(err, &e) {
		return KindInternal
	}
	if kind, ok := kinds[e]; ok {
		return kind
	}
	return KindValidation
}
