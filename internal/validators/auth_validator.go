package validators

import (
	"regexp"
	"strings"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// at least 8 characters from digits, letters and @#$%^&+=!
	passwordPattern = regexp.MustCompile(`^(?:[0-9a-zA-Z@#$%^&+=!]{8,})(?:(.*[0-9])?(.*[a-z])?(.*[A-Z])?(.*[@#$%^&+=!])?)$`)
)

func ValidateRegistration(body *models.RegisterRequestBody) []error {
	var errors []error
	if body == nil {
		errors = append(errors, errs.ErrInvalidUser)
		return errors
	}

	if !ValidateEmail(body.Email) {
		errors = append(errors, errs.ErrInvalidEmail)
	}

	if !ValidatePassword(body.Password) {
		errors = append(errors, errs.ErrInvalidPassword)
	}

	if len(strings.TrimSpace(body.Username)) < 2 {
		errors = append(errors, errs.ErrUsername)
	}
	return errors
}

func ValidateEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

func ValidatePassword(password string) bool {
	return passwordPattern.MatchString(password)
}
