package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docsum/internal/extract"
	llmMocks "docsum/internal/llm/mocks"
	"docsum/internal/model"
	"docsum/internal/repository"
	repoMocks "docsum/internal/repository/mocks"
	"docsum/internal/storage"
	storeMocks "docsum/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testOpts = DocumentOptions{SummaryInputLimit: 5, PreviewLength: 3}

func newTestService(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) DocumentService {
	return NewDocumentService(mStore, mRepo, extract.New(), mLLM, testOpts, nil)
}

func echoCreate(ctx context.Context, doc *model.Document) *model.Document {
	out := *doc
	return &out
}

func TestDocumentService_Summarize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		filename   string
		body       io.Reader
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, doc *model.Document)
	}{
		{
			name:     "happy path",
			filename: "notes.txt",
			body:     strings.NewReader("hello world"),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) {
				mLLM.On("Generate", ctx, "Summarize this document:\n\nhello").Return("A greeting.", nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".txt")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.Size == 11 && opt.ContentType == "text/plain" && opt.Metadata["original-filename"] == "notes.txt"
				})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
				}, nil)
				mRepo.On("Create", ctx, mock.AnythingOfType("*model.Document")).
					Return(func(ctx context.Context, doc *model.Document) *model.Document { return echoCreate(ctx, doc) }, nil)
			},
			check: func(t *testing.T, doc *model.Document) {
				assert.NotEmpty(t, doc.ID)
				assert.Equal(t, "notes.txt", doc.Filename)
				assert.Equal(t, "hello world", doc.Content)
				assert.Equal(t, "hel", doc.PreviewText)
				assert.Equal(t, "A greeting.", doc.Summary)
				assert.Equal(t, "documents/"+doc.ID+".txt", doc.StoragePath)
				assert.False(t, doc.UploadedAt.IsZero())
			},
		},
		{
			name:     "model failure stores fallback summary",
			filename: "notes.md",
			body:     strings.NewReader("# hi"),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) {
				mLLM.On("Generate", ctx, mock.Anything).Return("", errors.New("rate limited"))
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/x.md"}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Summary == SummaryUnavailable
				})).Return(func(ctx context.Context, doc *model.Document) *model.Document { return echoCreate(ctx, doc) }, nil)
			},
			check: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, "Summary not available", doc.Summary)
			},
		},
		{
			name:       "validation error - nil reader",
			filename:   "notes.txt",
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *llmMocks.MockProvider) {},
			wantErr:    ErrReaderNil,
		},
		{
			name:       "unsupported type",
			filename:   "photo.png",
			body:       strings.NewReader("png"),
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *llmMocks.MockProvider) {},
			wantErr:    ErrUnsupportedType,
		},
		{
			name:       "empty file",
			filename:   "empty.txt",
			body:       strings.NewReader(""),
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *llmMocks.MockProvider) {},
			wantErr:    ErrEmptyDocument,
		},
		{
			name:       "whitespace only",
			filename:   "blank.txt",
			body:       strings.NewReader(" \n\t "),
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *llmMocks.MockProvider) {},
			wantErr:    ErrEmptyDocument,
		},
		{
			name:       "corrupt docx",
			filename:   "bad.docx",
			body:       strings.NewReader("not a zip"),
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *llmMocks.MockProvider) {},
			wantErr:    ErrInvalidDocument,
		},
		{
			name:     "storage error",
			filename: "notes.txt",
			body:     strings.NewReader("hello"),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) {
				mLLM.On("Generate", ctx, mock.Anything).Return("sum", nil)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "repository error with successful rollback",
			filename: "notes.txt",
			body:     strings.NewReader("hello"),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) {
				mLLM.On("Generate", ctx, mock.Anything).Return("sum", nil)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/k.txt"}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "documents/k.txt").Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "repository error with failed rollback",
			filename: "notes.txt",
			body:     strings.NewReader("hello"),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mLLM *llmMocks.MockProvider) {
				mLLM.On("Generate", ctx, mock.Anything).Return("sum", nil)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/k.txt"}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "documents/k.txt").Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			mLLM := new(llmMocks.MockProvider)
			tt.setupMocks(mStore, mRepo, mLLM)
			svc := newTestService(mStore, mRepo, mLLM)

			doc, err := svc.Summarize(ctx, tt.body, tt.filename, 0)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, doc)
			default:
				require.NoError(t, err)
				require.NotNil(t, doc)
				tt.check(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mLLM.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    bool
		wantTotal  int
	}{
		{
			name:   "page",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			wantTotal: 2,
		},
		{
			name:   "negative values list everything",
			limit:  -5,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 0, Offset: 0}).
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
			tt.setupMocks(mRepo)
			svc := NewDocumentService(nil, mRepo, nil, nil, testOpts, nil)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.Total)
				assert.Len(t, res.Items, tt.wantTotal)
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
		wantAnyErr bool
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
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
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mRepo)
			svc := NewDocumentService(nil, mRepo, nil, nil, testOpts, nil)

			doc, err := svc.Get(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			case tt.wantAnyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
			default:
				require.NoError(t, err)
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
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id", StoragePath: "path/to/obj"}, nil)
				mStore.On("Delete", ctx, "path/to/obj").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "row vanished before delete",
			id:   "racy-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "racy-id").Return(&model.Document{ID: "racy-id", StoragePath: "p"}, nil)
				mStore.On("Delete", ctx, "p").Return(nil)
				mRepo.On("Delete", ctx, "racy-id").Return(repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error",
			id:   "storage-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete storage: storage fail",
		},
		{
			name: "repository delete error",
			id:   "repo-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "repo-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(nil)
				mRepo.On("Delete", ctx, "repo-fail-id").Return(errors.New("db fail"))
			},
			wantErrMsg: "db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mStore, mRepo)
			svc := NewDocumentService(mStore, mRepo, nil, nil, testOpts, nil)

			err := svc.Delete(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_DeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("objects then rows", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore.On("DeletePrefix", ctx, "documents/").Return(3, nil)
		mRepo.On("DeleteAll", ctx).Return(int64(3), nil)

		n, err := NewDocumentService(mStore, mRepo, nil, nil, testOpts, nil).DeleteAll(ctx)

		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage failure keeps rows", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore.On("DeletePrefix", ctx, "documents/").Return(0, errors.New("s3 down"))

		_, err := NewDocumentService(mStore, mRepo, nil, nil, testOpts, nil).DeleteAll(ctx)

		assert.ErrorContains(t, err, "delete storage: s3 down")
		mRepo.AssertNotCalled(t, "DeleteAll", mock.Anything)
	})
}
