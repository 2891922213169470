package gormstore

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockedDB wires a gorm.DB to a sqlmock connection instead of a real
// database, for exercising error-mapping paths that a real sqlite
// round-trip can't easily provoke (a dropped connection, a driver-level
// failure) without a live server.
func newMockedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestTaskStore_FindByID_MapsMissingRowToNotFound(t *testing.T) {
	gdb, mock := newMockedDB(t)
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnRows(sqlmock.NewRows(nil))

	store := NewTaskStore(gdb)
	_, err := store.FindByID(context.Background(), id.New())
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindNotFound, kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_FindByID_MapsDriverErrorToStorageUnavailable(t *testing.T) {
	gdb, mock := newMockedDB(t)
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(errors.New("connection reset by peer"))

	store := NewTaskStore(gdb)
	_, err := store.FindByID(context.Background(), id.New())
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.KindStorageUnavailable, kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
