package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/model"
)

// Evaluator scores one eval file against a gold file
type Evaluator interface {
	EvaluateFiles(ctx context.Context, goldPath, evalPath string) (*model.Report, error)
}

// EvalJob evaluates a single eval file
type EvalJob struct {
	GoldPath  string
	EvalPath  string
	Evaluator Evaluator
}

// Execute runs the evaluation
func (j *EvalJob) Execute(ctx context.Context) Result {
	start := time.Now()
	report, err := j.Evaluator.EvaluateFiles(ctx, j.GoldPath, j.EvalPath)
	return &EvalResult{
		EvalPath: j.EvalPath,
		Report:   report,
		Error:    err,
		Duration: time.Since(start),
	}
}

// EvalResult is the outcome of one evaluation
type EvalResult struct {
	EvalPath string
	Report   *model.Report
	Error    error
	Duration time.Duration
}

// GetError returns the evaluation error
func (r *EvalResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates many eval files against one gold file
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(evaluator Evaluator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// ProcessFiles evaluates every eval file concurrently. Results are returned
// in the order of evalPaths; files that could not run before ctx ended carry
// the context error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, goldPath string, evalPaths []string) []*EvalResult {
	if len(evalPaths) == 0 {
		return []*EvalResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range evalPaths {
		if !pool.Submit(&EvalJob{GoldPath: goldPath, EvalPath: path, Evaluator: b.evaluator}) {
			logger.Warn("batch cancelled before all evaluations were queued", "next", path)
			break
		}
	}

	results := pool.Wait()

	out := make([]*EvalResult, len(evalPaths))
	for i, path := range evalPaths {
		if i < len(results) && results[i] != nil {
			out[i] = results[i].(*EvalResult)
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		out[i] = &EvalResult{EvalPath: path, Error: fmt.Errorf("not evaluated: %w", err)}
	}
	return out
}

// ProcessList evaluates the eval files listed in listPath after any extra
// paths. An empty combined list is an error.
func (b *BatchProcessor) ProcessList(ctx context.Context, goldPath, listPath string, extra ...string) ([]*EvalResult, error) {
	listed, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read eval list: %w", err)
	}
	paths := append(append([]string(nil), extra...), listed...)
	if len(paths) == 0 {
		return nil, fmt.Errorf("eval list %s is empty", listPath)
	}
	return b.ProcessFiles(ctx, goldPath, paths), nil
}

// ReadPathsFromFile reads file paths, one per line. Blank lines and '#'
// comments are skipped, duplicates dropped, and relative paths resolved
// against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
