package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/storage"
)

// Source returns the raw catalog document. It is read again on every Load.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
}

type FileSource struct {
	Path string
}

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

type StorageSource struct {
	Storage storage.Storage
	Bucket  string
	Key     string
}

func (s StorageSource) Read(ctx context.Context) ([]byte, error) {
	return s.Storage.Download(ctx, s.Bucket, s.Key)
}

// BytesSource serves a fixed document.
type BytesSource []byte

func (s BytesSource) Read(ctx context.Context) ([]byte, error) {
	return s, nil
}

func NewSource(cfg config.CatalogConfigs) (Source, error) {
	switch cfg.Source {
	case "", "file":
		return FileSource{Path: cfg.Path}, nil
	case "s3":
		s3Storage, err := storage.NewS3Storage(cfg)
		if err != nil {
			return nil, err
		}

		return StorageSource{Storage: s3Storage, Bucket: cfg.Bucket, Key: cfg.Key}, nil
	default:
		return nil, fmt.Errorf("invalid catalog source %s", cfg.Source)
	}
}
