package testscript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/cmd/grantflow/serve"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/cache"
	_ "github.com/grantflow/grantflow/pkg/cache/redis" // cache backend
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/migrate"
	"github.com/grantflow/grantflow/pkg/store/database"
	"github.com/grantflow/grantflow/pkg/test"
	"github.com/grantflow/grantflow/pkg/web"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScript(t *testing.T) {
	mr := miniredis.RunT(t)

	testscript.Run(t, testscript.Params{
		Dir: "./testdata/",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"api":     cmdAPI,
			"jsonvar": cmdJSONVar,
		},
		Setup: func(e *testscript.Env) error {
			httpAddr, err := test.ListenAddr()
			if err != nil {
				return err
			}
			statsAddr, err := test.ListenAddr()
			if err != nil {
				return err
			}
			e.Setenv("API_URL", "http://"+httpAddr)
			e.Setenv("STATS_URL", "http://"+statsAddr)

			data := filepath.Join(e.WorkDir, "data")
			cfg := config.DefaultConfig()
			cfg.Name = "Test Grantflow"
			cfg.DataPath = data
			cfg.HTTP.ListenAddr = httpAddr
			cfg.Stats.ListenAddr = statsAddr
			cfg.DB.DataSource = filepath.Join(e.WorkDir, "grantflow.db") +
				"?_pragma=foreign_keys(1)&_time_format=sqlite"
			cfg.Cache.Backend = "redis"
			cfg.Cache.Redis.Addr = mr.Addr()
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := config.WithContext(context.Background(), cfg)
			ctx = log.WithContext(ctx, log.New(io.Discard))

			dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
			if err != nil {
				return err
			}
			if err := migrate.Migrate(ctx, dbx); err != nil {
				return err
			}

			c, err := cache.New(ctx, cfg.Cache.Backend,
				cache.WithTTL(cfg.Cache.TTL),
				cache.WithPrefix(filepath.Base(e.WorkDir)+":"),
			)
			if err != nil {
				return err
			}

			ctx = db.WithContext(ctx, dbx)
			ctx = backend.WithContext(ctx, backend.New(ctx, cfg, dbx, database.New(ctx, dbx), c))

			srv, err := serve.NewServer(ctx)
			if err != nil {
				return err
			}

			go func() {
				if err := srv.Start(); err != nil {
					e.T().Fatal(err)
				}
			}()

			e.Defer(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					e.T().Fatal(err)
				}
				dbx.Close() //nolint:errcheck
			})

			// wait until the server is up
			for {
				conn, _ := net.DialTimeout("tcp", cfg.HTTP.ListenAddr, time.Second)
				if conn != nil {
					conn.Close()
					break
				}
				time.Sleep(10 * time.Millisecond)
			}

			return nil
		},
	})
}

// cmdAPI sends a request to the API and prints the status code followed by
// the response body. The caller identity is taken from the USER_ID and
// ROLES variables. A non 2xx status fails the command.
//
//	api METHOD PATH [BODY]
func cmdAPI(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 || len(args) > 3 {
		ts.Fatalf("usage: api METHOD PATH [BODY]")
	}

	url := args[1]
	if !strings.HasPrefix(url, "http") {
		url = ts.Getenv("API_URL") + url
	}

	var body io.Reader
	if len(args) == 3 {
		body = strings.NewReader(args[2])
	}

	req, err := http.NewRequest(args[0], url, body)
	ts.Check(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := ts.Getenv("USER_ID"); id != "" {
		req.Header.Set(web.HeaderUserID, id)
	}
	if roles := ts.Getenv("ROLES"); roles != "" {
		req.Header.Set(web.HeaderRoles, roles)
	}

	resp, err := http.DefaultClient.Do(req)
	ts.Check(err)
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	ts.Check(err)
	fmt.Fprintf(ts.Stdout(), "%d\n%s\n", resp.StatusCode, data)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if neg && ok {
		ts.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !neg && !ok {
		ts.Fatalf("unexpected status %d: %s", resp.StatusCode, data)
	}
}

// cmdJSONVar stores a top level string field of the last api response in
// an environment variable.
//
//	jsonvar NAME FIELD
func cmdJSONVar(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 2 {
		ts.Fatalf("usage: jsonvar NAME FIELD")
	}

	out := ts.ReadFile("stdout")
	_, body, _ := strings.Cut(out, "\n")
	var v map[string]any
	ts.Check(json.Unmarshal([]byte(body), &v))
	s, ok := v[args[1]].(string)
	if !ok {
		ts.Fatalf("field %q is not a string in %s", args[1], body)
	}
	ts.Setenv(args[0], s)
}
