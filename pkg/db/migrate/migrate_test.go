package migrate

import (
	"context"
	"testing"

	"github.com/grantflow/grantflow/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestMigrate(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	var version int64
	is.NoErr(dbx.GetContext(ctx, &version, "SELECT MAX(version) FROM migrations"))
	is.Equal(version, int64(len(migrations)))

	// Running twice is a no-op.
	is.NoErr(Migrate(ctx, dbx))
}

func TestRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	is.NoErr(Rollback(ctx, dbx))
	var version int64
	is.NoErr(dbx.GetContext(ctx, &version, "SELECT MAX(version) FROM migrations"))
	is.Equal(version, int64(len(migrations)-1))

	is.NoErr(Migrate(ctx, dbx))
}

func TestRollbackEmpty(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.True(Rollback(ctx, dbx) != nil)
}

func TestUniqueEmailPerTeam(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	_, err = dbx.ExecContext(ctx, "INSERT INTO teams (id, name) VALUES ('t1', 'one'), ('t2', 'two')")
	is.NoErr(err)
	_, err = dbx.ExecContext(ctx, "INSERT INTO contacts (id, team_id, name, email) VALUES ('c1', 't1', 'Jane', 'jane@example.com')")
	is.NoErr(err)
	_, err = dbx.ExecContext(ctx, "INSERT INTO contacts (id, team_id, name, email) VALUES ('c2', 't2', 'Jane', 'jane@example.com')")
	is.NoErr(err)
	_, err = dbx.ExecContext(ctx, "INSERT INTO contacts (id, team_id, name, email) VALUES ('c3', 't1', 'Janet', 'jane@example.com')")
	is.True(err != nil)
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"create tables":          "create_tables",
		"create contact indexes": "create_contact_indexes",
		"CreateTables":           "create_tables",
	} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) => %q, want %q", in, got, want)
		}
	}
}
