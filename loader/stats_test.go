package loader_test

import (
	"bytes"
	"log/slog"
	"testing"

	"firstaid/dataloader/loader"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	stats := loader.NewStats()
	stats.TotalFiles = 3
	stats.AddResult(&loader.Result{Uploaded: 4, Skipped: 1})
	stats.AddResult(&loader.Result{TemplateCreated: true})
	stats.AddResult(nil)
	stats.AddFailure("categories.json", "file not found")

	assert.Equal(t, 1, stats.ProcessedFiles)
	assert.Equal(t, 1, stats.TemplatesCreated)
	assert.Equal(t, 1, stats.FailedFiles)
	assert.Equal(t, 4, stats.RecordsUploaded)
	assert.Equal(t, 1, stats.RecordsSkipped)

	var buf bytes.Buffer
	stats.Log(slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Contains(t, buf.String(), "Records uploaded: 4")
	assert.Contains(t, buf.String(), "- categories.json: file not found")
}
