package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docsum/internal/model"
	"docsum/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullCols = []string{"id", "filename", "content_type", "size", "storage_path", "content", "preview_text", "summary", "uploaded_at"}

func newRepo(t *testing.T) (*DocumentPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentPostgres(db), mock
}

func TestDocumentPostgres_Create(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        5,
		StoragePath: "documents/test-uuid.txt",
		Content:     "hello",
		PreviewText: "hello",
		Summary:     "A greeting.",
		UploadedAt:  now,
	}

	rows := sqlmock.NewRows(fullCols).
		AddRow(doc.ID, doc.Filename, doc.ContentType, doc.Size, doc.StoragePath, doc.Content, doc.PreviewText, doc.Summary, doc.UploadedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Filename, doc.ContentType, doc.Size, doc.StoragePath, doc.Content, doc.PreviewText, doc.Summary, doc.UploadedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.Equal(t, *doc, *result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(fullCols).
			AddRow("test-id", "file.txt", "text/plain", 100, "documents/test-id.txt", "body", "body", "sum", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
		assert.Equal(t, "body", doc.Content)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, doc)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("x").
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FindByID(ctx, "x")
		assert.ErrorContains(t, err, "conn reset")
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	listCols := []string{"id", "filename", "content_type", "size", "storage_path", "preview_text", "summary", "uploaded_at"}

	tests := []struct {
		name      string
		pq        repository.PageQuery
		wantLimit any
	}{
		{name: "page", pq: repository.PageQuery{Limit: 10, Offset: 0}, wantLimit: 10},
		{name: "all rows", pq: repository.PageQuery{}, wantLimit: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

			rows := sqlmock.NewRows(listCols).
				AddRow("b", "b.md", "text/markdown", 3, "documents/b.md", "# b", "B.", time.Now()).
				AddRow("a", "a.txt", "text/plain", 1, "documents/a.txt", "a", "A.", time.Now().Add(-time.Hour))

			mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY uploaded_at DESC").
				WithArgs(tt.wantLimit, tt.pq.Offset).
				WillReturnRows(rows)

			res, err := repo.List(context.Background(), tt.pq)

			require.NoError(t, err)
			assert.Equal(t, 2, res.Total)
			require.Len(t, res.Items, 2)
			assert.Equal(t, "b", res.Items[0].ID)
			assert.Empty(t, res.Items[0].Content)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentPostgres_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing row", affected: 0, wantErr: repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectExec("DELETE FROM documents WHERE id = ?").
				WithArgs("test-id").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), "test-id")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentPostgres_DeleteAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAll(context.Background())

	assert.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
