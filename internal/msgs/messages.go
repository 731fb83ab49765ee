package msgs

const (
	MsgOperationSuccessful     = "operation successful"
	MsgOperationFailed         = "operation failed"
	MsgUserCreatedSuccessfully = "user created successfully"
	MsgYouMustLoginFirst       = "you must login first"
	MsgJoinedWorkspace         = "successfully joined workspace"
	MsgWorkspaceDeleted        = "workspace deleted successfully"
	MsgTaskDeleted             = "task deleted successfully"
	MsgDocumentDeleted         = "document deleted successfully"
	MsgEventRemoved            = "event removed"
	MsgSomethingWentWrong      = "something went wrong"
)
