package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/annoteval/internal/pipeline"
	"github.com/ppiankov/annoteval/internal/worker"
)

var (
	fromFile     string
	outputDir    string
	withFindings bool
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <gold> [eval...]",
	Short: "Score several annotation files against one gold standard in parallel",
	Long: `Batch scores many eval files against the same gold standard:
- Eval files come from arguments and/or a list file (one path per line)
- Files are scored in parallel with a configurable worker count
- Each eval file gets its own JSON and Markdown report

Example:
  annoteval batch gold.txt run1.txt run2.txt
  annoteval batch gold.txt --from-file runs.txt --workers 8 --output-dir ./reports
  annoteval batch gold.txt run*.txt --span sloppy --findings`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindScoringFlags(cmd); err != nil {
			return err
		}
		return viper.BindPFlag("concurrency.workers", cmd.Flags().Lookup("workers"))
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addScoringFlags(batchCmd)

	batchCmd.Flags().StringVar(&fromFile, "from-file", "", "file listing eval paths, one per line")
	batchCmd.Flags().Int("workers", 4, "number of eval files scored concurrently")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./annoteval-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&withFindings, "findings", false, "also write false positive/negative flat files per eval file")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	goldPath := args[0]
	evalPaths := args[1:]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if fromFile == "" && len(evalPaths) == 0 {
		return fmt.Errorf("no eval files given (pass paths or --from-file)")
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	s := p.Settings()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Annoteval Batch Scoring\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Gold:         %s\n", goldPath)
	fmt.Fprintf(os.Stderr, "  Eval args:    %d\n", len(evalPaths))
	if fromFile != "" {
		fmt.Fprintf(os.Stderr, "  Eval list:    %s\n", fromFile)
	}
	fmt.Fprintf(os.Stderr, "  Comparators:  %s spans, %s mentions\n", s.SpanComparator, s.MentionComparator)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	var results []*worker.EvalResult
	if fromFile != "" {
		results, err = processor.ProcessList(ctx, goldPath, fromFile, evalPaths...)
		if err != nil {
			return err
		}
	} else {
		results = processor.ProcessFiles(ctx, goldPath, evalPaths)
	}

	successCount := 0
	failureCount := 0
	renderer := p.Renderer()
	used := make(map[string]bool)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.EvalPath, result.Error)
			continue
		}

		slug := uniqueSlug(used, sanitizeFilename(strings.TrimSuffix(filepath.Base(result.EvalPath), filepath.Ext(result.EvalPath))))
		base := filepath.Join(outputDir, slug)

		if err := renderer.RenderJSON(result.Report, base+".json"); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.EvalPath, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, base+".md"); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.EvalPath, err)
			continue
		}
		if withFindings {
			if _, _, err := renderer.WriteFindings(result.Report, base); err != nil {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write findings: %v\n", result.EvalPath, err)
				continue
			}
		}

		successCount++
		res := result.Report.Result
		fmt.Fprintf(os.Stderr, "✓ %s (P %s, R %s, F %s, %v)\n", result.EvalPath,
			pipeline.FormatRatio(res.Precision()), pipeline.FormatRatio(res.Recall()),
			pipeline.FormatRatio(res.FMeasure()), result.Duration.Round(time.Millisecond))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d eval files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d eval files failed", failureCount, len(results))
	}
	return nil
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." || s == ".." {
		s = "report"
	}

	return s
}

// uniqueSlug returns slug, or slug-N with the lowest free N, so eval files
// with the same base name never overwrite each other's reports
func uniqueSlug(used map[string]bool, slug string) string {
	candidate := slug
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
	used[candidate] = true
	return candidate
}
