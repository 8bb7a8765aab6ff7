package appcontext_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"firstaid/dataloader/appcontext"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := appcontext.WithLogger(context.Background(), logger)

	assert.Same(t, logger, appcontext.LoggerFromContext(ctx))
}

func TestLoggerFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), appcontext.LoggerFromContext(context.Background()))
}

func TestRunIDFromContext(t *testing.T) {
	assert.Empty(t, appcontext.RunIDFromContext(context.Background()))

	ctx := appcontext.WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", appcontext.RunIDFromContext(ctx))
}
