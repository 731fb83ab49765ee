package validators

import (
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

func ValidateElements(elements models.Elements) []error {
	var errors []error
	for _, element := range elements {
		if !enums.IsValidElementType(element.Type) {
			errors = append(errors, errs.ErrInvalidElementType)
			break
		}
	}
	return errors
}
