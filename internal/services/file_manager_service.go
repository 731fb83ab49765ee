package services

import (
	"context"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"spaceHub/internal/errs"
	"spaceHub/internal/interfaces"
	"spaceHub/internal/models"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
	maxBytes    int64
}

func NewFileManagerService(fileManager interfaces.FileManager, maxBytes int64) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
		maxBytes:    maxBytes,
	}
}

// ObjectKey names stored objects file-<uuid><ext>, keeping the original extension.
func ObjectKey(originalName string) string {
	return "file-" + uuid.NewString() + filepath.Ext(originalName)
}

func (fs *FileManagerService) UploadDocumentFile(ctx context.Context, header *multipart.FileHeader) (*models.DocumentFile, error) {
	if header == nil {
		return nil, errs.ErrNoFileUploaded
	}
	if fs.maxBytes > 0 && header.Size > fs.maxBytes {
		return nil, errs.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		slog.ErrorContext(ctx, "open uploaded file", "error", err)
		return nil, errs.ErrUnableToOpenUploadedFile
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := ObjectKey(header.Filename)
	url, err := fs.fileManager.UploadFile(ctx, key, file, header.Size, contentType)
	if err != nil {
		slog.ErrorContext(ctx, "upload document file", "key", key, "error", err)
		return nil, errs.ErrUnableToUploadFile
	}

	return &models.DocumentFile{
		OriginalName: header.Filename,
		MimeType:     contentType,
		Size:         header.Size,
		URL:          url,
		Key:          key,
	}, nil
}

func (fs *FileManagerService) DeleteDocumentFile(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return fs.fileManager.DeleteFile(ctx, key)
}
