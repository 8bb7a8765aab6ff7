// Package ingest dispatches CLI commands to the uploads they stand for.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/loader"
	"firstaid/dataloader/model"
	"firstaid/dataloader/source"
)

// ErrUnknownCommand is returned by Run for a name missing from the command table.
var ErrUnknownCommand = errors.New("unknown command")

// Uploader performs one upload.
type Uploader interface {
	Load(ctx context.Context, target model.Target) (*loader.Result, error)
}

// Runner runs the uploads of a command one after another.
type Runner struct {
	uploader Uploader
	dataDir  string
	commands map[string]Command
}

// NewRunner creates a Runner. Target files resolve against dataDir.
func NewRunner(uploader Uploader, dataDir string, commands []Command) *Runner {
	byName := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd
	}
	return &Runner{uploader: uploader, dataDir: dataDir, commands: byName}
}

// Run executes every upload of the named command. A failed upload is logged and
// recorded in the stats; it does not stop the uploads after it.
func (r *Runner) Run(ctx context.Context, name string) (*loader.Stats, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Running command", "command", name, "uploads", len(cmd.Targets))

	stats := loader.NewStats()
	stats.TotalFiles = len(cmd.Targets)

	for _, target := range cmd.Targets {
		target.File = source.Join(r.dataDir, target.File)

		res, err := r.uploader.Load(ctx, target)
		if err != nil {
			logger.ErrorContext(ctx, "Error uploading data", "file", target.File, "collection", target.Collection, "error", err)
			stats.AddFailure(target.File, err.Error())
			continue
		}
		stats.AddResult(res)
	}

	return stats, nil
}
