package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"printshop/internal/advisor"
	"printshop/internal/model"
	"printshop/internal/pages"
	"printshop/internal/repository"
	"printshop/internal/storage"
)

// sniffLen is the number of leading bytes filetype needs to match a header.
const sniffLen = 261

const maxFileTypeLen = 10

var ErrReaderNil = fmt.Errorf("%w: reader is nil", ErrValidation)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"items"`
	Total int              `json:"total"`
}

// UploadInput describes a file received from the upload collaborator.
type UploadInput struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content, estimates its page count and saves the
	// metadata. The stored object is removed again if the metadata save fails.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns all documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// ListByUser returns the user's documents, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Document, error)

	Get(ctx context.Context, id string) (*model.Document, error)

	// Open returns the document metadata and a reader over its content.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// Delete removes the user's document from storage and the repository.
	// A document owned by someone else is reported as not found.
	Delete(ctx context.Context, id, userID string) error

	// Recommend suggests print settings for a document. Unknown documents get
	// the default recommendation.
	Recommend(ctx context.Context, id string) model.Recommendation
}

type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	maxBytes int64
	now      func() time.Time
}

// NewDocumentService constructs a DocumentService. maxBytes <= 0 disables the
// size check.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, maxBytes int64) DocumentService {
	return &documentService{store: store, repo: repo, maxBytes: maxBytes, now: time.Now}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, validationf("userId is required")
	}
	if in.Size < 0 {
		return nil, validationf("size must not be negative")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, validationf("file exceeds the %d byte upload limit", s.maxBytes)
	}

	r, fileType, contentType, err := detectType(in.Reader, in.Filename, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	id := uuid.NewString()
	storedName := id
	if fileType != "" {
		storedName += "." + fileType
	}
	key := "documents/" + storedName

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w: %w", ErrUpstream, err)
	}

	size := objInfo.Size
	if size <= 0 {
		size = in.Size
	}
	name := filepath.Base(in.Filename)
	if name == "." || name == "/" {
		name = storedName
	}

	doc := &model.Document{
		ID:             id,
		UserID:         in.UserID,
		Name:           name,
		Filename:       storedName,
		StoragePath:    key,
		FileType:       fileType,
		ContentType:    contentType,
		Size:           size,
		EstimatedPages: pages.Estimate(size, fileType),
		CreatedAt:      s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// cleanFileType lower-cases an extension and drops it unless it is a short
// run of ASCII letters and digits.
func cleanFileType(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if len(ext) > maxFileTypeLen || strings.IndexFunc(ext, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) >= 0 {
		return ""
	}
	return ext
}

// detectType derives the lower-case file type from the file name extension,
// falling back to the content's magic bytes. The returned reader replays the
// bytes consumed while sniffing.
func detectType(r io.Reader, filename, contentType string) (io.Reader, string, string, error) {
	fileType := cleanFileType(filepath.Ext(filename))

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", "", err
	}
	head = head[:n]
	replay := io.MultiReader(bytes.NewReader(head), r)

	if fileType == "" {
		if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
			fileType = kind.Extension
		}
	}

	if contentType == "" || contentType == "application/octet-stream" {
		switch kind, err := filetype.Match(head); {
		case err == nil && kind != filetype.Unknown:
			contentType = kind.MIME.Value
		case fileType != "" && filetype.GetType(fileType) != filetype.Unknown:
			contentType = filetype.GetType(fileType).MIME.Value
		default:
			contentType = "application/octet-stream"
		}
	}
	return replay, fileType, contentType, nil
}

func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) ListByUser(ctx context.Context, userID string) ([]model.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("userId is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("document content %w", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read from storage: %w: %w", ErrUpstream, err)
	}
	return rc, doc, nil
}

func (s *documentService) Delete(ctx context.Context, id, userID string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if userID != "" && doc.UserID != userID {
		return fmt.Errorf("document %w", ErrNotFound)
	}
	// storage first: a failed delete keeps the row that points at the object
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w: %w", ErrUpstream, err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Recommend(ctx context.Context, id string) model.Recommendation {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return advisor.Default()
	}
	ft := doc.FileType
	if ft == "" {
		ft = doc.Name
	}
	return advisor.Recommend(ft)
}
