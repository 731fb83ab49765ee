package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockFileManager struct {
	mock.Mock
}

func (m *MockFileManager) UploadFile(ctx context.Context, key string, file io.Reader, fileSize int64, contentType string) (string, error) {
	args := m.Called(ctx, key, file, fileSize, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileManager) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
