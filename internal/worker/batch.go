package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Diagnoser defines the interface for producing a report from one
// symptom complaint
type Diagnoser interface {
	DiagnoseReport(ctx context.Context, input string, days int) (*model.Report, error)
}

// DiagnoseJob represents one symptom line to analyze
type DiagnoseJob struct {
	Input     string
	Days      int
	Diagnoser Diagnoser
}

// Execute executes the diagnose job
func (j *DiagnoseJob) Execute(ctx context.Context) Result {
	report, err := j.Diagnoser.DiagnoseReport(ctx, j.Input, j.Days)
	if err != nil {
		return &DiagnoseResult{
			Input:  j.Input,
			Report: nil,
			Error:  err,
		}
	}
	return &DiagnoseResult{
		Input:  j.Input,
		Report: report,
		Error:  nil,
	}
}

// DiagnoseResult represents the result of one diagnose job
type DiagnoseResult struct {
	Input  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the diagnose result
func (r *DiagnoseResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple symptom lines concurrently
type BatchProcessor struct {
	diagnoser   Diagnoser
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(diagnoser Diagnoser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		diagnoser:   diagnoser,
		concurrency: concurrency,
	}
}

// ProcessLines analyzes multiple symptom lines concurrently
func (b *BatchProcessor) ProcessLines(ctx context.Context, lines []string, days int) []*DiagnoseResult {
	if len(lines) == 0 {
		return []*DiagnoseResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	// Submit from a separate goroutine so results can be drained while
	// jobs are still queueing; otherwise a large batch fills both
	// buffered channels and deadlocks.
	go func() {
		for _, line := range lines {
			pool.Submit(&DiagnoseJob{
				Input:     line,
				Days:      days,
				Diagnoser: b.diagnoser,
			})
		}
		pool.Done()
	}()

	results := pool.drain()

	diagResults := make([]*DiagnoseResult, len(results))
	for i, result := range results {
		diagResults[i] = result.(*DiagnoseResult)
	}

	return diagResults
}

// ProcessFile reads symptom lines from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, days int) ([]*DiagnoseResult, error) {
	lines, err := ReadLinesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read input lines: %w", err)
	}

	return b.ProcessLines(ctx, lines, days), nil
}

// ReadLinesFromFile reads symptom lines from a file (one complaint per line)
func ReadLinesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate identical complaints
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
