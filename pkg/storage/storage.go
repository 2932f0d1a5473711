package storage

import "context"

type Storage interface {
	Upload(context.Context, *UploadObject) error
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

type UploadObject struct {
	Bucket string
	Key    string
	Mime   string
	Data   []byte
}
