package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// notFound swaps gorm.ErrRecordNotFound for the caller's sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// duplicated swaps gorm.ErrDuplicatedKey for the caller's sentinel. The database must be
// opened with TranslateError.
func duplicated(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}
