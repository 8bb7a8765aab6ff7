// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/config"
	"firstaid/dataloader/ingest"
	"firstaid/dataloader/loader"
	"firstaid/dataloader/source"
	"firstaid/dataloader/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errMissingCommand = errors.New("no command given")

func main() {
	// Create the logger instance at the very beginning. The level is raised or
	// lowered once the configuration is loaded.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCommand(viper.New(), logger, level)
	if err := root.Execute(); err != nil {
		logger.Error("Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		fmt.Fprint(os.Stderr, root.UsageString())
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper, logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	root := &cobra.Command{
		Use:           "dataloader <command>",
		Short:         "Seed the first-aid backend collections from JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return errMissingCommand
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (yaml, json or toml)")
	pf.String("data-dir", ".", "Directory or gs:// prefix holding the JSON files")
	pf.String("backend", config.BackendFirestore, "Store backend: firestore, mongo or memory")
	pf.Bool("strict", false, "Also require a name on every record")
	pf.Bool("sync-log", false, "Record each upload in the dataSync collection")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		config.KeyConfigFile: "config",
		config.KeyDataDir:    "data-dir",
		config.KeyBackend:    "backend",
		config.KeyStrict:     "strict",
		config.KeySyncLog:    "sync-log",
		config.KeyLogLevel:   "log-level",
	} {
		// Lookup cannot miss: the flags are declared just above.
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	for _, c := range ingest.DefaultCommands() {
		name := c.Name
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: c.Short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), v, logger, level, name)
			},
		})
	}

	return root
}

func run(ctx context.Context, v *viper.Viper, logger *slog.Logger, level *slog.LevelVar, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = appcontext.WithLogger(ctx, logger)

	cfg, err := config.LoadConfig(ctx, logger, v)
	if err != nil {
		return err
	}
	level.Set(parseLevel(cfg.LogLevel))

	runID := uuid.NewString()
	ctx, cancel := context.WithTimeout(appcontext.WithRunID(ctx, runID), cfg.Timeout)
	defer cancel()
	logger.InfoContext(ctx, "Begin running data loading", "command", command, "runID", runID, "backend", cfg.Backend)

	useGCS := source.IsGCS(cfg.DataDir)

	var creds *storage.Credentials
	if cfg.Backend == config.BackendFirestore || useGCS {
		creds, err = storage.LoadCredentials(ctx, cfg.CredentialsFile, cfg.CredentialsSecret)
		switch {
		case err == nil:
		case cfg.Backend != config.BackendFirestore && errors.Is(err, storage.ErrMissingCredentials):
			logger.InfoContext(ctx, "Using Application Default Credentials for Cloud Storage")
		default:
			return fmt.Errorf("failed to load credentials: %w", err)
		}
	}

	store, err := storage.Open(ctx, cfg, creds)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logger.ErrorContext(ctx, "Error closing store", "error", closeErr)
		}
	}()

	var remote source.Source
	if useGCS {
		gcsSource, gcsErr := source.NewGCS(ctx, creds.ClientOptions()...)
		if gcsErr != nil {
			return gcsErr
		}
		defer gcsSource.Close()
		remote = gcsSource
	}

	opts := []loader.Option{loader.WithStrict(cfg.Strict)}
	if cfg.SyncLog {
		opts = append(opts, loader.WithSyncLog(storage.NewSyncLogger(store)))
	}
	l := loader.New(store, source.NewRouter(source.Local{}, remote), opts...)

	stats, err := ingest.NewRunner(l, cfg.DataDir, ingest.DefaultCommands()).Run(ctx, command)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Data loading completed.")
	stats.Log(logger)
	return nil
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
