package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestStorageSource_Read(t *testing.T) {
	var gotBucket, gotKey string
	mockStorage := &testutil.MockStorage{
		DownloadFunc: func(_ context.Context, bucket, key string) ([]byte, error) {
			gotBucket, gotKey = bucket, key
			return []byte(testCatalog), nil
		},
	}

	c := New(StorageSource{Storage: mockStorage, Bucket: "quests", Key: "catalog.yaml"})
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, "quests", gotBucket)
	require.Equal(t, "catalog.yaml", gotKey)

	_, err := c.Lookup("QE012")
	require.NoError(t, err)
}

func TestStorageSource_ReadError(t *testing.T) {
	mockStorage := &testutil.MockStorage{
		DownloadFunc: func(context.Context, string, string) ([]byte, error) {
			return nil, errors.New("no such key")
		},
	}

	err := New(StorageSource{Storage: mockStorage}).Load(context.Background())
	require.Error(t, err)
}

func TestNewSource(t *testing.T) {
	source, err := NewSource(config.CatalogConfigs{Path: "quests.yaml"})
	require.NoError(t, err)
	require.Equal(t, FileSource{Path: "quests.yaml"}, source)

	_, err = NewSource(config.CatalogConfigs{Source: "ftp"})
	require.Error(t, err)
}
