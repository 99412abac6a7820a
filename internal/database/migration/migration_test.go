package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sentinelQuery = `SELECT to_regclass\('public.documents'\) IS NOT NULL`

func TestEnsureMigrated(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m sqlmock.Sqlmock)
		wantErr   string
		wantEvent string
	}{
		{
			name: "schema exists",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantEvent: "db_migration_skip",
		},
		{
			name: "fresh database",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				m.ExpectExec("CREATE TABLE IF NOT EXISTS documents").WillReturnResult(sqlmock.NewResult(0, 0))
				m.ExpectExec("CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantEvent: "db_migration_success",
		},
		{
			name: "sentinel check fails",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sentinelQuery).WillReturnError(errors.New("conn refused"))
			},
			wantErr:   "failed to check sentinel table",
			wantEvent: "db_migration_failed",
		},
		{
			name: "step fails",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				m.ExpectExec("CREATE TABLE IF NOT EXISTS documents").WillReturnError(errors.New("permission denied"))
			},
			wantErr:   "migration step create_table_documents failed",
			wantEvent: "db_migration_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			core, logs := observer.New(zap.InfoLevel)
			err = EnsureMigrated(context.Background(), db, zap.New(core), "db.local")

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, logs.FilterMessage(tt.wantEvent).Len())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
