package validators

import (
	"strings"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

func ValidateCreateWorkspace(body *models.CreateWorkspaceRequestBody) []error {
	var errors []error
	if strings.TrimSpace(body.Name) == "" {
		errors = append(errors, errs.ErrWorkspaceName)
	}
	return errors
}

func ValidateUpdateWorkspace(body *models.UpdateWorkspaceRequestBody) []error {
	var errors []error
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		errors = append(errors, errs.ErrWorkspaceName)
	}
	return errors
}

func ValidateRole(role string) []error {
	if !enums.IsValidRole(role) {
		return []error{errs.ErrInvalidRole}
	}
	return nil
}
