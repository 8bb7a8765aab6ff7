package loader

import (
	"fmt"
	"log/slog"
)

// Stats holds statistics about the uploads of one command.
type Stats struct {
	TotalFiles       int
	ProcessedFiles   int
	FailedFiles      int
	TemplatesCreated int
	RecordsUploaded  int
	RecordsSkipped   int
	Failures         map[string]string
}

// NewStats creates and initializes a new Stats object.
func NewStats() *Stats {
	return &Stats{
		Failures: make(map[string]string),
	}
}

// AddFailure records a failed file and its reason.
func (s *Stats) AddFailure(file, reason string) {
	s.FailedFiles++
	s.Failures[file] = reason
}

// AddResult folds the outcome of one upload into the totals.
func (s *Stats) AddResult(res *Result) {
	if res == nil {
		return
	}
	if res.TemplateCreated {
		s.TemplatesCreated++
	} else {
		s.ProcessedFiles++
	}
	s.RecordsUploaded += res.Uploaded
	s.RecordsSkipped += res.Skipped
}

// Log prints the final statistics to the provided logger.
func (s *Stats) Log(logger *slog.Logger) {
	logger.Info("--- Upload Stats ---")
	logger.Info(fmt.Sprintf("Total files: %d", s.TotalFiles))
	logger.Info(fmt.Sprintf("Files uploaded: %d", s.ProcessedFiles))
	logger.Info(fmt.Sprintf("Templates created: %d", s.TemplatesCreated))
	logger.Info(fmt.Sprintf("Files failed/skipped: %d", s.FailedFiles))
	logger.Info(fmt.Sprintf("Records uploaded: %d", s.RecordsUploaded))
	logger.Info(fmt.Sprintf("Records skipped: %d", s.RecordsSkipped))
	if s.FailedFiles > 0 {
		logger.Info("Failed files:")
		for file, reason := range s.Failures {
			logger.Info(fmt.Sprintf("- %s: %s", file, reason))
		}
	}
	logger.Info("--------------------")
}
