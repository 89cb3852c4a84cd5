package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/matryer/is"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.TODO(), "invalid", "")
	if err == nil {
		t.Fatal("Open(invalid) => nil, want error")
	}
	if !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("Open(invalid) => %v, want error containing 'unknown driver'", err)
	}
}

func mockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqldb.Close() }) // nolint: errcheck
	return &DB{DB: sqlx.NewDb(sqldb, "sqlmock")}, mock
}

func TestTransactionCommit(t *testing.T) {
	is := is.New(t)
	d, mock := mockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO teams").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := d.TransactionContext(context.TODO(), func(tx *Tx) error {
		_, err := tx.ExecContext(context.TODO(), "INSERT INTO teams (id, name) VALUES (?, ?)", "t1", "Team")
		return err
	})
	is.NoErr(err)
	is.NoErr(mock.ExpectationsWereMet())
}

func TestTransactionRollback(t *testing.T) {
	is := is.New(t)
	d, mock := mockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contacts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := d.TransactionContext(context.TODO(), func(tx *Tx) error {
		if _, err := tx.ExecContext(context.TODO(), "INSERT INTO contacts (id) VALUES (?)", "c1"); err != nil {
			return err
		}
		return boom
	})
	is.True(errors.Is(err, boom))
	is.NoErr(mock.ExpectationsWereMet())
}

func TestTransactionRollbackFailure(t *testing.T) {
	is := is.New(t)
	d, mock := mockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	err := d.TransactionContext(context.TODO(), func(*Tx) error { return boom })
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "failed to rollback"))
	is.NoErr(mock.ExpectationsWereMet())
}

func TestTransactionBeginFailure(t *testing.T) {
	is := is.New(t)
	d, mock := mockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	called := false
	err := d.TransactionContext(context.TODO(), func(*Tx) error {
		called = true
		return nil
	})
	is.True(err != nil)
	is.True(!called)
	is.NoErr(mock.ExpectationsWereMet())
}
