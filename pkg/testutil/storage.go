package testutil

import (
	"context"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/storage"
)

type MockStorage struct {
	UploadFunc   func(context.Context, *storage.UploadObject) error
	DownloadFunc func(ctx context.Context, bucket, key string) ([]byte, error)
}

func (m *MockStorage) Upload(ctx context.Context, obj *storage.UploadObject) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, bucket, key)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
