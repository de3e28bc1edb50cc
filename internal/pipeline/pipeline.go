package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/annoteval/internal/cache"
	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/model"
	"github.com/ppiankov/annoteval/internal/score"
)

// Pipeline orchestrates loading, scoring and rendering of one evaluation
type Pipeline struct {
	loader   *Loader
	scorer   *score.Scorer
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	scorer, err := score.FromConfig(cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	var store *cache.AnnotationStore
	if cfg.Cache.Enabled {
		store = cache.NewAnnotationStore(cache.FromConfig(cfg.Cache))
	}

	return &Pipeline{
		loader:   NewLoader(store, cfg.Input.Lenient),
		scorer:   scorer,
		renderer: NewRenderer(),
		config:   cfg,
	}, nil
}

// Settings returns the comparator settings in effect
func (p *Pipeline) Settings() model.Settings {
	return p.scorer.Settings()
}

// EvaluateFiles scores an eval file against a gold file
func (p *Pipeline) EvaluateFiles(ctx context.Context, goldPath, evalPath string) (*model.Report, error) {
	// 1. Load both sides
	var gold, eval []model.Annotation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gold, err = p.loader.Load(gctx, goldPath)
		if err != nil {
			return fmt.Errorf("load gold: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		eval, err = p.loader.Load(gctx, evalPath)
		if err != nil {
			return fmt.Errorf("load eval: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("loaded annotation sets", "gold", goldPath, "gold_count", len(gold), "eval", evalPath, "eval_count", len(eval))

	// 2. Score
	evaluation, err := p.Evaluate(ctx, gold, eval)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	// 3. Build report
	report := &model.Report{
		GoldSource:  goldPath,
		EvalSource:  evalPath,
		GeneratedAt: time.Now().UTC(),
		Settings:    p.scorer.Settings(),
		Evaluation:  evaluation,
	}
	if !p.config.Output.IncludeDocuments {
		report.Documents = nil
	}
	if !p.config.Output.IncludeFindings {
		report.FalsePositives = nil
		report.FalseNegatives = nil
	}

	return report, nil
}

// Evaluate scores documents in parallel. Matches never cross documents, so
// per-document counts add up to the same result as a sequential run.
func (p *Pipeline) Evaluate(ctx context.Context, gold, eval []model.Annotation) (model.Evaluation, error) {
	docs := score.GroupByDocument(gold, eval)
	outcomes := make([]score.DocumentOutcome, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.config.Concurrency.DocumentWorkers))
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.scorer.ScoreDocument(doc)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Evaluation{}, err
	}

	return score.Merge(outcomes), nil
}

// RenderReport renders the report to the requested outputs and prints the
// summary to stdout
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
