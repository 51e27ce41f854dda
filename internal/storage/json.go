package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tdd/internal/domain"
)

// Save writes a run result to the configured JSON output file. Build
// failures come first in the details, followed by runtime failures.
func (s *JSONStorage) Save(result *domain.RunResult) error {
	runID := result.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	details := make([]domain.TestFailure, 0, len(result.BuildFailures)+len(result.Failures))
	details = append(details, result.BuildFailures...)
	details = append(details, result.Failures...)

	output := domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           runID,
			TotalTests:      result.Tests,
			TotalInstances:  result.Instances,
			Completed:       result.Completed,
			Errors:          result.Errors,
			BuildFailures:   len(result.BuildFailures),
			Duration:        result.Duration.String(),
			DurationSeconds: result.Duration.Seconds(),
			MaxErrors:       s.cfg.MaxErrors,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: details,
	}
	return s.SaveOutput(&output)
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
