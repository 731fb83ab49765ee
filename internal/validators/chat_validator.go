package validators

import (
	"strings"
	"unicode/utf8"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

func ValidateChannel(body *models.CreateChannelRequestBody) []error {
	var errors []error
	length := utf8.RuneCountInString(strings.TrimSpace(body.Name))
	if length < 2 || length > 50 {
		errors = append(errors, errs.ErrChannelName)
	}
	return errors
}

func ValidateMessage(body *models.MessageRequest) []error {
	var errors []error
	if strings.TrimSpace(body.Content) == "" {
		errors = append(errors, errs.ErrMessageContent)
	}
	return errors
}
