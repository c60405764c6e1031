package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return New(sqlx.NewDb(raw, "sqlmock"), DriverSQLite), mock
}

// ============================================================================
// Transactions
// ============================================================================

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE club_applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO memberships").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, InTx(ctx))
		q := db.Querier(ctx)
		if _, err := q.ExecContext(ctx, "UPDATE club_applications SET status = ? WHERE id = ?", "accepted", 1); err != nil {
			return err
		}
		_, err := q.ExecContext(ctx, "INSERT INTO memberships (club_id, user_id) VALUES (?, ?)", 1, 2)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("membership insert failed")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE club_applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO memberships").WillReturnError(boom)
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		q := db.Querier(ctx)
		if _, err := q.ExecContext(ctx, "UPDATE club_applications SET status = ? WHERE id = ?", "accepted", 1); err != nil {
			return err
		}
		_, err := q.ExecContext(ctx, "INSERT INTO memberships (club_id, user_id) VALUES (?, ?)", 1, 2)
		return err
	})

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = db.WithTx(context.Background(), func(ctx context.Context) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_NestedJoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM club_applications").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		return db.WithTx(ctx, func(inner context.Context) error {
			_, err := db.Querier(inner).ExecContext(inner, "DELETE FROM club_applications WHERE id = ?", 3)
			return err
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrConnection)
	assert.False(t, called)
}

func TestQuerier_OutsideTransactionUsesPool(t *testing.T) {
	db, _ := newMockDB(t)
	ctx := context.Background()

	assert.False(t, InTx(ctx))
	_, isDB := db.Querier(ctx).(*sqlx.DB)
	assert.True(t, isDB)
}

// ============================================================================
// Error mapping
// ============================================================================

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, MapError(fmt.Errorf("get club: %w", sql.ErrNoRows)), ErrNotFound)
	assert.ErrorIs(t, MapError(&pq.Error{Code: "23505"}), ErrDuplicate)
	assert.ErrorIs(t, MapError(errors.New("UNIQUE constraint failed: users.email")), ErrDuplicate)

	other := errors.New("disk I/O error")
	assert.Equal(t, other, MapError(other))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("syntax error")))
}

// ============================================================================
// SQLite + migrations
// ============================================================================

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql", DSN: "x"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestMigrate_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Driver: DriverSQLite, DSN: "file::memory:?_pragma=foreign_keys(1)"})
	require.NoError(t, err)
	defer db.Close()

	_, _, ok, err := db.MigrationVersion()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate(), "second run is a no-op")

	version, dirty, ok, err := db.MigrationVersion()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	q := db.Querier(ctx)
	_, err = q.ExecContext(ctx, `INSERT INTO users (email, password_hash, name, role) VALUES ('o@x.edu', 'h', 'O', 'owner')`)
	require.NoError(t, err)

	_, err = q.ExecContext(ctx, `INSERT INTO users (email, password_hash, name, role) VALUES ('o@x.edu', 'h', 'O2', 'student')`)
	assert.ErrorIs(t, MapError(err), ErrDuplicate)

	_, err = q.ExecContext(ctx, `INSERT INTO users (email, password_hash, name, role) VALUES ('p@x.edu', 'h', 'P', 'admin')`)
	assert.Error(t, err, "role check constraint")

	_, err = q.ExecContext(ctx, `INSERT INTO clubs (name, owner_id, join_type) VALUES ('Orphan', 999, 'open')`)
	assert.Error(t, err, "foreign keys are enforced")

	require.NoError(t, db.MigrateDown(1))
	_, err = q.ExecContext(ctx, `SELECT 1 FROM users`)
	assert.Error(t, err, "tables dropped")
}
