package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
	// MaxPage keeps (page-1)*size well inside an int for any size up to MaxSize.
	MaxPage = 100_000
)

func StrToTime(value string) (*time.Time, error) {
	result, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Paginate is a gorm scope for 1-based page numbers.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset, limit := pageWindow(page, size)
		return db.Offset(offset).Limit(limit)
	}
}

func pageWindow(page, size int) (offset, limit int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return (page - 1) * size, size
}

// NormalizePage parses page and size query values, falling back to defaults and capping both.
func NormalizePage(page, size string) (int, int) {
	pageInt, err := strconv.Atoi(page)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(page, "-") {
		pageInt = MaxPage
	} else if err != nil || pageInt < 1 {
		pageInt = DefaultPage
	}
	if pageInt > MaxPage {
		pageInt = MaxPage
	}
	sizeInt, err := strconv.Atoi(size)
	if err != nil || sizeInt < 1 {
		sizeInt = DefaultSize
	}
	if sizeInt > MaxSize {
		sizeInt = MaxSize
	}
	return pageInt, sizeInt
}

// ParseID parses a positive numeric path parameter.
func ParseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
