package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/annoteval/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	findingsBase string
	scoreTimeout time.Duration
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <gold> <eval>",
	Short: "Score one annotation file against a gold standard",
	Long: `Score compares an eval annotation file against a gold annotation file:
- Annotations are paired within each document
- An eval annotation is a true positive if it matches any gold annotation
- A gold annotation is a false negative if no eval annotation matches it
- Precision, recall and F-measure are printed and optionally written as JSON/Markdown

Files ending in .json hold a JSON array of annotations; anything else is read
as pipe-delimited lines:
  documentID|annotatorID|start end[,start end]|type|coveredText[|slot|v1,v2]*

Example:
  annoteval score gold.txt system.txt
  annoteval score gold.txt system.txt --span sloppy --mention none
  annoteval score gold.txt system.txt --unit entity-parts --json report.json --md report.md`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindScoringFlags(cmd)
	},
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	addScoringFlags(scoreCmd)

	// Output flags
	scoreCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scoreCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scoreCmd.Flags().StringVar(&findingsBase, "findings", "", "write false positives/negatives to <base>.fp.txt and <base>.fn.txt")
	scoreCmd.Flags().DurationVar(&scoreTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runScore(cmd *cobra.Command, args []string) error {
	goldPath, evalPath := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
	defer cancel()

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		s := p.Settings()
		fmt.Fprintf(os.Stderr, "Gold: %s\n", goldPath)
		fmt.Fprintf(os.Stderr, "Eval: %s\n", evalPath)
		fmt.Fprintf(os.Stderr, "Comparators: %s spans, %s mentions, depth %d, unit %s\n",
			s.SpanComparator, s.MentionComparator, s.MaxDepth, s.Unit)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.EvaluateFiles(ctx, goldPath, evalPath)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Compared %d eval against %d gold items in %d documents\n",
			report.EvalCount, report.GoldCount, len(report.Documents))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if findingsBase != "" {
		fp, fn, err := p.Renderer().WriteFindings(report, findingsBase)
		if err != nil {
			return fmt.Errorf("write findings: %w", err)
		}
		fmt.Printf("✓ Wrote false positives: %s\n", fp)
		fmt.Printf("✓ Wrote false negatives: %s\n", fn)
	}

	return nil
}
