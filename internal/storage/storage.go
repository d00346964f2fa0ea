package storage

import "context"

// ObjectInfo represents metadata for a stored report object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the operations the report archive needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	UploadObject(ctx context.Context, key string, contentType string, data []byte) error
}
