package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"printshop/internal/resilience"
)

// Resilient wraps a Storage so every call goes through the resilience
// executor. Put buffers the body so a retry can replay it; uploads are capped
// by the HTTP layer, which keeps the buffer bounded.
type Resilient struct {
	next Storage
	exec *resilience.Executor
}

func NewResilient(next Storage, exec *resilience.Executor) *Resilient {
	return &Resilient{next: next, exec: exec}
}

var _ Storage = (*Resilient)(nil)

// classify never retries a missing object, a bad key or a request the backend
// rejected. Only the rejection counts against the breaker.
func classify(err error) resilience.ErrorClassification {
	var perm *PermanentError
	switch {
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrInvalidKey):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	case errors.As(err, &perm):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}
	return resilience.DefaultClassifier(err)
}

func (s *Resilient) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("read upload body: %w", err)
	}
	opt.Size = int64(len(body))

	var info ObjectInfo
	err = s.exec.Execute(ctx, "storage.put", func(ctx context.Context) error {
		var putErr error
		info, putErr = s.next.Put(ctx, key, bytes.NewReader(body), opt)
		return putErr
	}, classify)
	return info, err
}

func (s *Resilient) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	var (
		rc   io.ReadCloser
		info ObjectInfo
	)
	err := s.exec.Execute(ctx, "storage.get", func(ctx context.Context) error {
		var getErr error
		rc, info, getErr = s.next.Get(ctx, key)
		return getErr
	}, classify)
	return rc, info, err
}

func (s *Resilient) Delete(ctx context.Context, key string) error {
	return s.exec.Execute(ctx, "storage.delete", func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	}, classify)
}
