package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/cmd/grantflow/serve"
	_ "github.com/grantflow/grantflow/pkg/cache/lru"   // cache backend
	_ "github.com/grantflow/grantflow/pkg/cache/noop"  // cache backend
	_ "github.com/grantflow/grantflow/pkg/cache/redis" // cache backend
	"github.com/grantflow/grantflow/pkg/config"
	logr "github.com/grantflow/grantflow/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "grantflow",
		Short:        "Contact management for grant giving teams",
		Long:         "Grantflow keeps the contacts of a grant giving team, with per field access rules.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		migrateCmd,
		teamCmd,
		groupCmd,
		postalCmd,
		contactCmd,
		manCmd,
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	if err := cfg.Parse(); err != nil {
		log.Error("could not parse config", "err", err)
		return 1
	}

	ctx = config.WithContext(ctx, cfg)
	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Error("could not create logger", "err", err)
		return 1
	}
	if f != nil {
		defer f.Close() //nolint:errcheck
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running grantflow in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
