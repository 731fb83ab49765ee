package validators

import (
	"strings"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

// ValidateTask checks a create (partial=false) or update (partial=true) body.
func ValidateTask(body *models.TaskRequestBody, partial bool) []error {
	var errors []error

	if body.Title == nil {
		if !partial {
			errors = append(errors, errs.ErrTaskTitle)
		}
	} else if strings.TrimSpace(*body.Title) == "" {
		errors = append(errors, errs.ErrTaskTitle)
	}

	if body.Status != nil && !enums.IsValidTaskStatus(*body.Status) {
		errors = append(errors, errs.ErrInvalidTaskStatus)
	}

	if body.Priority != nil && !enums.IsValidTaskPriority(*body.Priority) {
		errors = append(errors, errs.ErrInvalidTaskPriority)
	}
	return errors
}
