package interfaces

import (
	"context"
	"io"
)

// FileManager stores uploaded document contents. UploadFile returns the URL clients use
// to fetch the object.
type FileManager interface {
	UploadFile(ctx context.Context, key string, file io.Reader, fileSize int64, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
