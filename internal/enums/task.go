package enums

const (
	TASK_STATUS_TODO        = "todo"
	TASK_STATUS_IN_PROGRESS = "in_progress"
	TASK_STATUS_REVIEW      = "review"
	TASK_STATUS_DONE        = "done"
)

const (
	TASK_PRIORITY_LOW    = "low"
	TASK_PRIORITY_MEDIUM = "medium"
	TASK_PRIORITY_HIGH   = "high"
)

var taskStatuses = map[string]bool{
	TASK_STATUS_TODO:        true,
	TASK_STATUS_IN_PROGRESS: true,
	TASK_STATUS_REVIEW:      true,
	TASK_STATUS_DONE:        true,
}

var taskPriorities = map[string]bool{
	TASK_PRIORITY_LOW:    true,
	TASK_PRIORITY_MEDIUM: true,
	TASK_PRIORITY_HIGH:   true,
}

func IsValidTaskStatus(status string) bool {
	return taskStatuses[status]
}

func IsValidTaskPriority(priority string) bool {
	return taskPriorities[priority]
}
