package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"

	"spaceHub/internal/enums"
)

// LocalStorageService keeps uploads on disk; the http server serves the directory
// under enums.UPLOADS_ROUTE.
type LocalStorageService struct {
	dir string
}

func NewLocalStorageService(dir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorageService{dir: dir}, nil
}

func (ls *LocalStorageService) Dir() string {
	return ls.dir
}

func (ls *LocalStorageService) UploadFile(ctx context.Context, key string, file io.Reader, fileSize int64, contentType string) (string, error) {
	name := filepath.Base(key)
	target := filepath.Join(ls.dir, name)
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(out, io.LimitReader(file, fileSize))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Never leave a truncated upload behind to be served.
		os.Remove(target)
		return "", err
	}
	return path.Join(enums.UPLOADS_ROUTE, name), nil
}

func (ls *LocalStorageService) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(ls.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
