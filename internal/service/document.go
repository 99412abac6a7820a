package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docsum/internal/extract"
	"docsum/internal/llm"
	"docsum/internal/model"
	"docsum/internal/repository"
	"docsum/internal/storage"
)

const (
	// SummaryPrompt prefixes the extracted text sent to the model.
	SummaryPrompt = "Summarize this document:\n\n"
	// SummaryUnavailable is stored when the model could not produce a summary.
	SummaryUnavailable = "Summary not available"

	objectPrefix = "documents/"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrFilenameMissing = errors.New("filename is required")
	ErrEmptyDocument   = errors.New("document has no extractable text")
	ErrUnsupportedType = extract.ErrUnsupportedType
	ErrInvalidDocument = extract.ErrInvalidDocument
)

// TextExtractor converts uploaded bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

// DocumentOptions tunes how much text is summarized and previewed.
type DocumentOptions struct {
	SummaryInputLimit int
	PreviewLength     int
}

// DocumentListResult is the service-level DTO for listed documents.
type DocumentListResult struct {
	Items []model.Document
	Total int
}

// DocumentService defines the use cases for summarized documents.
type DocumentService interface {
	// Summarize extracts the text of an uploaded file, summarizes it, keeps the raw file in
	// object storage and persists the record. Storage is rolled back if the DB save fails.
	Summarize(ctx context.Context, r io.Reader, filename string, size int64) (*model.Document, error)

	// List returns documents newest first, without content. limit <= 0 lists everything.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID, content included.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every document from storage and repository and returns how many rows went.
	DeleteAll(ctx context.Context) (int64, error)
}

type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	extract TextExtractor
	llm     llm.Provider
	opts    DocumentOptions
	log     *zap.Logger
	now     func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	repo repository.DocumentRepository,
	extractor TextExtractor,
	provider llm.Provider,
	opts DocumentOptions,
	log *zap.Logger,
) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{
		store:   store,
		repo:    repo,
		extract: extractor,
		llm:     provider,
		opts:    opts,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Summarize(ctx context.Context, r io.Reader, filename string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	filename = filepath.Base(filename)
	if filename == "" || filename == "." || filename == "/" {
		return nil, ErrFilenameMissing
	}
	contentType := extract.ContentType(filename)
	if contentType == "" {
		return nil, ErrUnsupportedType
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	text, err := s.extract.Extract(ctx, filename, raw)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return nil, ErrEmptyDocument
	}

	summary := s.summarize(ctx, filename, text)

	id := uuid.New().String()
	key := objectPrefix + id + filepath.Ext(filename)
	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(raw), storage.PutObjectOptions{
		Size:        int64(len(raw)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(raw)),
		StoragePath: objInfo.Key,
		Content:     text,
		PreviewText: extract.Truncate(text, s.opts.PreviewLength),
		Summary:     summary,
		UploadedAt:  s.now(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.log.Info("document_summarized",
		zap.String("document_id", stored.ID),
		zap.String("filename", filename),
		zap.Int64("size", stored.Size),
		zap.Int64("declared_size", size),
	)
	return stored, nil
}

// summarize never fails; a model error is logged and replaced by SummaryUnavailable.
func (s *documentService) summarize(ctx context.Context, filename, text string) string {
	summary, err := s.llm.Generate(ctx, SummaryPrompt+extract.Truncate(text, s.opts.SummaryInputLimit))
	if err != nil {
		s.log.Warn("summary_failed", zap.String("filename", filename), zap.Error(err))
		return SummaryUnavailable
	}
	if summary == "" {
		return SummaryUnavailable
	}
	return summary
}

func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit < 0 {
		limit = 0
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

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	// a storage failure keeps the row so the object is not orphaned
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("document_deleted", zap.String("document_id", id))
	return nil
}

func (s *documentService) DeleteAll(ctx context.Context) (int64, error) {
	objects, err := s.store.DeletePrefix(ctx, objectPrefix)
	if err != nil {
		return 0, fmt.Errorf("delete storage: %w", err)
	}
	rows, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("documents_deleted", zap.Int64("rows", rows), zap.Int("objects", objects))
	return rows, nil
}
