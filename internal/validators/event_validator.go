package validators

import (
	"strings"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

func ValidateEvent(body *models.EventRequestBody) []error {
	var errors []error

	if strings.TrimSpace(body.Title) == "" {
		errors = append(errors, errs.ErrEventTitle)
	}

	if body.Start == nil || body.End == nil {
		errors = append(errors, errs.ErrEventDates)
	} else if !body.End.After(*body.Start) {
		errors = append(errors, errs.ErrEventEndBeforeStart)
	}

	if !enums.IsValidRecurringPattern(body.RecurringPattern) {
		errors = append(errors, errs.ErrInvalidRecurrence)
	}
	return errors
}
