package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestWrapErrorPassthrough(t *testing.T) {
	for _, e := range []error{
		fmt.Errorf("foo"),
		errors.New("bar"),
		&pq.Error{Code: "42P01"},
	} {
		if err := WrapError(e); err != e {
			t.Errorf("WrapError(%v) => %v, want %v", e, err, e)
		}
	}
	if err := WrapError(nil); err != nil {
		t.Errorf("WrapError(nil) => %v, want nil", err)
	}
}

func TestWrapErrorNoRows(t *testing.T) {
	if err := WrapError(sql.ErrNoRows); err != ErrRecordNotFound {
		t.Errorf("WrapError(sql.ErrNoRows) => %v, want %v", err, ErrRecordNotFound)
	}
	wrapped := fmt.Errorf("get contact: %w", sql.ErrNoRows)
	if err := WrapError(wrapped); err != ErrRecordNotFound {
		t.Errorf("WrapError(%v) => %v, want %v", wrapped, err, ErrRecordNotFound)
	}
}

func TestWrapErrorPostgres(t *testing.T) {
	if err := WrapError(&pq.Error{Code: "23505"}); err != ErrDuplicateKey {
		t.Errorf("WrapError(23505) => %v, want %v", err, ErrDuplicateKey)
	}
	if err := WrapError(&pq.Error{Code: "23503"}); err != ErrForeignKey {
		t.Errorf("WrapError(23503) => %v, want %v", err, ErrForeignKey)
	}
}
