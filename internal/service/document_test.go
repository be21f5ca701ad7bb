package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printshop/internal/advisor"
	"printshop/internal/logger"
	"printshop/internal/model"
	"printshop/internal/repository"
	"printshop/internal/repository/memory"
	repoMocks "printshop/internal/repository/mocks"
	"printshop/internal/resilience"
	"printshop/internal/storage"
	storeMocks "printshop/internal/storage/mocks"
)

// pngHeader is the PNG magic number followed by an IHDR chunk start.
var pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         func() UploadInput
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, doc *model.Document)
	}{
		{
			name: "happy path estimates pages from size and extension",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "Thesis.PDF", ContentType: "application/pdf", Size: 3 * 1024 * 1024, Reader: strings.NewReader("%PDF-1.7")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf") && strings.Count(key, "/") == 1
				}), mock.Anything, storage.PutObjectOptions{
					Size:        3 * 1024 * 1024,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "Thesis.PDF"},
				}).Return(func(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
				}, nil)
			},
			check: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, "pdf", doc.FileType)
				assert.Equal(t, "Thesis.PDF", doc.Name)
				assert.Equal(t, 30, doc.EstimatedPages)
				assert.Equal(t, "user-1", doc.UserID)
				assert.Equal(t, "documents/"+doc.ID+".pdf", doc.StoragePath)
			},
		},
		{
			name: "validation error - nil reader",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "test.txt"}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrReaderNil,
		},
		{
			name: "validation error - over the size limit",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "big.pdf", Size: 11 << 20, Reader: strings.NewReader("x")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name: "storage error is upstream",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "test.txt", Size: 5, Reader: strings.NewReader("hello")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErr: ErrUpstream,
		},
		{
			name: "repository error with successful rollback",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "test.txt", Size: 5, Reader: strings.NewReader("hello")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			in: func() UploadInput {
				return UploadInput{UserID: "user-1", Filename: "test.txt", Size: 5, Reader: strings.NewReader("hello")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mStore, mRepo)

			var svc DocumentService
			if tt.check != nil {
				// the happy path persists to a real store so the saved record can be inspected
				svc = NewDocumentService(mStore, memory.NewDocumentRepository(), 10<<20)
			} else {
				svc = NewDocumentService(mStore, mRepo, 10<<20)
			}

			doc, err := svc.Upload(ctx, tt.in())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				require.NotNil(t, doc)
				tt.check(t, doc)
			}

			mStore.AssertExpectations(t)
		})
	}
}

func TestDocumentService_UploadSniffsMissingExtension(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewDocumentService(mStore, memory.NewDocumentRepository(), 0)

	var stored string
	mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, ".png") }), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			b, _ := io.ReadAll(args.Get(2).(io.Reader))
			stored = string(b)
		}).
		Return(func(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
		}, nil)

	content := pngHeader + strings.Repeat("\x00", 400)
	doc, err := svc.Upload(ctx, UploadInput{
		UserID:      "user-1",
		Filename:    "scan",
		ContentType: "application/octet-stream",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	})

	require.NoError(t, err)
	assert.Equal(t, "png", doc.FileType)
	assert.Equal(t, "image/png", doc.ContentType)
	assert.Equal(t, 1, doc.EstimatedPages)
	assert.Equal(t, content, stored, "sniffed bytes must still reach storage")
}

func TestDocumentService_CreateThenGetReturnsSameFields(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewDocumentService(mStore, memory.NewDocumentRepository(), 0)

	mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
		}, nil)

	created, err := svc.Upload(ctx, UploadInput{UserID: "user-1", Filename: "notes.docx", Size: 1 << 20, Reader: strings.NewReader("PK")})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 8, got.EstimatedPages)
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, 0)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name: "not found - mapping repository.ErrNotFound",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, 0)

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
					assert.NotErrorIs(t, err, ErrNotFound)
				}
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		userID     string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name:   "happy path",
			id:     "valid-id",
			userID: "user-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id", UserID: "user-1", StoragePath: "path/to/obj"}, nil)
				mStore.On("Delete", ctx, "path/to/obj").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:   "another user's document is not found",
			id:     "valid-id",
			userID: "user-2",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id", UserID: "user-1", StoragePath: "path/to/obj"}, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "not found",
			id:     "missing-id",
			userID: "user-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "storage delete error",
			id:     "storage-fail-id",
			userID: "user-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Document{ID: "id", UserID: "user-1", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(errors.New("storage fail"))
			},
			wantErr: ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, 0)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Open(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(mStore, mRepo, 0)

	mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", StoragePath: "documents/u/doc-1.pdf"}, nil)
	mStore.On("Get", ctx, "documents/u/doc-1.pdf").Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{}, nil).Once()

	rc, doc, err := svc.Open(ctx, "doc-1")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF", string(body))
	assert.Equal(t, "doc-1", doc.ID)

	mStore.On("Get", ctx, "documents/u/doc-1.pdf").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound).Once()
	_, _, err = svc.Open(ctx, "doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentService_Recommend(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(nil, mRepo, 0)

	mRepo.On("FindByID", ctx, "slides").Return(&model.Document{ID: "slides", FileType: "pptx"}, nil)
	mRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	rec := svc.Recommend(ctx, "slides")
	require.NotNil(t, rec.ColorMode)
	assert.Equal(t, model.ColorModeColor, *rec.ColorMode)

	assert.Equal(t, advisor.Default(), svc.Recommend(ctx, "missing"))
}

func TestDocumentService_UploadKeysIgnoreUserID(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:        3,
		RetryInitialBackoff:     time.Millisecond,
		RetryMaxBackoff:         time.Millisecond,
		RetryMultiplier:         1,
		BreakerEnabled:          true,
		BreakerMinRequests:      5,
		BreakerFailureRatio:     0.6,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}, logger.Discard())
	svc := NewDocumentService(storage.NewResilient(local, exec), memory.NewDocumentRepository(), 10<<20)

	upload := func(userID, filename string) (*model.Document, error) {
		return svc.Upload(ctx, UploadInput{UserID: userID, Filename: filename, Size: 5, Reader: strings.NewReader("hello")})
	}

	for _, userID := range []string{"john..doe", "../../etc", "a/b", "john..doe", "..", `c:\temp`} {
		doc, err := upload(userID, "notes.txt")
		require.NoError(t, err, userID)
		assert.Equal(t, userID, doc.UserID)
		assert.Equal(t, "documents/"+doc.ID+".txt", doc.StoragePath)
	}

	doc, err := upload("alice", "notes.txt")
	require.NoError(t, err)

	rc, _, err := svc.Open(ctx, doc.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestCleanFileType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: ".PDF", want: "pdf"},
		{ext: ".docx", want: "docx"},
		{ext: "", want: ""},
		{ext: `.x\y`, want: ""},
		{ext: ".tar gz", want: ""},
		{ext: ".averyverylongextension", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanFileType(tt.ext), tt.ext)
	}
}
