package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ppiankov/annoteval/internal/flatfile"
	"github.com/ppiankov/annoteval/internal/model"
)

// maxMarkdownFindings caps the unmatched annotations listed in Markdown
const maxMarkdownFindings = 25

// Renderer writes reports in JSON, Markdown and console form
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer printing summaries to stdout
func NewRenderer() *Renderer {
	return &Renderer{out: os.Stdout}
}

// NewRendererTo creates a renderer printing summaries to w
func NewRendererTo(w io.Writer) *Renderer {
	return &Renderer{out: w}
}

// RenderJSON writes the report as indented JSON. Undefined ratios are null.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown formats the report as a Markdown document
func Markdown(report *model.Report) string {
	var b strings.Builder
	res := report.Result

	fmt.Fprintf(&b, "# Annotation Evaluation\n\n")
	fmt.Fprintf(&b, "- **Gold:** `%s` (%d %s)\n", report.GoldSource, report.GoldCount, unitNoun(report.Settings.Unit))
	fmt.Fprintf(&b, "- **Eval:** `%s` (%d %s)\n", report.EvalSource, report.EvalCount, unitNoun(report.Settings.Unit))
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Settings\n\n")
	b.WriteString("| Span comparator | Mention comparator | Max depth | Unit |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		report.Settings.SpanComparator, report.Settings.MentionComparator,
		depthLabel(report.Settings.MaxDepth), report.Settings.Unit)

	b.WriteString("## Result\n\n")
	b.WriteString("| TP | FP | FN | Precision | Recall | F-measure |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %s | %s | %s |\n\n",
		res.TruePositives, res.FalsePositives, res.FalseNegatives,
		FormatRatio(res.Precision()), FormatRatio(res.Recall()), FormatRatio(res.FMeasure()))

	if len(report.Documents) > 0 {
		b.WriteString("## Documents\n\n")
		b.WriteString("| Document | Gold | Eval | TP | FP | FN | Precision | Recall | F-measure |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|---:|\n")
		for _, d := range report.Documents {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %d | %s | %s | %s |\n",
				d.DocumentID, d.GoldCount, d.EvalCount,
				d.Result.TruePositives, d.Result.FalsePositives, d.Result.FalseNegatives,
				FormatRatio(d.Result.Precision()), FormatRatio(d.Result.Recall()), FormatRatio(d.Result.FMeasure()))
		}
		b.WriteString("\n")
	}

	writeFindings(&b, "False positives", report.FalsePositives)
	writeFindings(&b, "False negatives", report.FalseNegatives)

	return b.String()
}

func writeFindings(b *strings.Builder, title string, anns []model.Annotation) {
	if len(anns) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(anns))
	b.WriteString("```\n")
	for i, a := range anns {
		if i == maxMarkdownFindings {
			fmt.Fprintf(b, "... %d more\n", len(anns)-maxMarkdownFindings)
			break
		}
		b.WriteString(flatfile.Format(a) + "\n")
	}
	b.WriteString("```\n\n")
}

// RenderSummary prints a short console summary
func (r *Renderer) RenderSummary(report *model.Report) {
	res := report.Result
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.out, "  Evaluation: %s vs %s\n", report.EvalSource, report.GoldSource)
	fmt.Fprintf(r.out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "  Comparators:  %s spans, %s mentions, depth %s\n",
		report.Settings.SpanComparator, report.Settings.MentionComparator, depthLabel(report.Settings.MaxDepth))
	fmt.Fprintf(r.out, "  Unit:         %s\n", report.Settings.Unit)
	fmt.Fprintf(r.out, "  Gold / Eval:  %d / %d\n", report.GoldCount, report.EvalCount)
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "  TP: %d  FP: %d  FN: %d\n", res.TruePositives, res.FalsePositives, res.FalseNegatives)
	fmt.Fprintf(r.out, "  Precision:    %s\n", FormatRatio(res.Precision()))
	fmt.Fprintf(r.out, "  Recall:       %s\n", FormatRatio(res.Recall()))
	fmt.Fprintf(r.out, "  F-measure:    %s\n", FormatRatio(res.FMeasure()))
	fmt.Fprintf(r.out, "\n")
}

// WriteFindings writes unmatched annotations as flat files next to base:
// base.fp.txt and base.fn.txt
func (r *Renderer) WriteFindings(report *model.Report, base string) (fpPath, fnPath string, err error) {
	fpPath = base + ".fp.txt"
	fnPath = base + ".fn.txt"
	if err := flatfile.WriteFile(fpPath, report.FalsePositives); err != nil {
		return "", "", err
	}
	if err := flatfile.WriteFile(fnPath, report.FalseNegatives); err != nil {
		return "", "", err
	}
	return fpPath, fnPath, nil
}

// FormatRatio prints a ratio with four decimals, or NaN when undefined
func FormatRatio(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}

func depthLabel(depth int) string {
	if depth < 0 {
		return "unlimited"
	}
	return fmt.Sprint(depth)
}

func unitNoun(unit model.Unit) string {
	if unit == model.UnitEntityParts {
		return "parts"
	}
	return "annotations"
}
