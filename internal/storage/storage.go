// Package storage keeps uploaded document bytes in an object store. Keys are
// opaque strings chosen by the caller; implementations must be safe for
// concurrent use.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned by Get when no object exists under the key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys a backend cannot store, such as
	// keys that would leave the local storage root.
	ErrInvalidKey = errors.New("invalid object key")
)

// PermanentError wraps a backend failure that repeating the call cannot fix,
// such as a rejected credential or an invalid bucket.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "storage rejected request: " + e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for uploaded documents.
type Storage interface {
	// Put uploads an object under key, streaming from r.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object for reading. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
