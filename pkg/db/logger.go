package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// trace logs a statement once it finished. It is a no-op unless the handle
// was opened in verbose mode.
func trace(l *log.Logger, start time.Time, err error, query string, args ...interface{}) {
	if l == nil {
		return
	}

	query = strings.Join(strings.Fields(query), " ")
	kv := []interface{}{"query", query, "args", args, "took", time.Since(start)}
	if err != nil && err != sql.ErrNoRows {
		kv = append(kv, "err", err)
	}
	l.Debug("trace", kv...)
}

// SelectContext is a wrapper around sqlx.SelectContext that logs the query and arguments.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer func(t time.Time) { trace(d.logger, t, err, query, args...) }(time.Now())
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext is a wrapper around sqlx.GetContext that logs the query and arguments.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer func(t time.Time) { trace(d.logger, t, err, query, args...) }(time.Now())
	return d.DB.GetContext(ctx, dest, query, args...)
}

// QueryxContext is a wrapper around sqlx.QueryxContext that logs the query and arguments.
func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (rows *sqlx.Rows, err error) {
	defer func(t time.Time) { trace(d.logger, t, err, query, args...) }(time.Now())
	return d.DB.QueryxContext(ctx, query, args...)
}

// ExecContext is a wrapper around sqlx.ExecContext that logs the query and arguments.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (res sql.Result, err error) {
	defer func(t time.Time) { trace(d.logger, t, err, query, args...) }(time.Now())
	return d.DB.ExecContext(ctx, query, args...)
}

// SelectContext is a wrapper around sqlx.SelectContext that logs the query and arguments.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer func(s time.Time) { trace(t.logger, s, err, query, args...) }(time.Now())
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// GetContext is a wrapper around sqlx.GetContext that logs the query and arguments.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer func(s time.Time) { trace(t.logger, s, err, query, args...) }(time.Now())
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// QueryxContext is a wrapper around sqlx.QueryxContext that logs the query and arguments.
func (t *Tx) QueryxContext(ctx context.Context, query string, args ...interface{}) (rows *sqlx.Rows, err error) {
	defer func(s time.Time) { trace(t.logger, s, err, query, args...) }(time.Now())
	return t.Tx.QueryxContext(ctx, query, args...)
}

// ExecContext is a wrapper around sqlx.ExecContext that logs the query and arguments.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (res sql.Result, err error) {
	defer func(s time.Time) { trace(t.logger, s, err, query, args...) }(time.Now())
	return t.Tx.ExecContext(ctx, query, args...)
}
