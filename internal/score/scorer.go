package score

import (
	"fmt"
	"sort"

	"github.com/ppiankov/annoteval/internal/compare"
	"github.com/ppiankov/annoteval/internal/model"
)

// Scorer pairs gold and eval annotations and counts agreement
type Scorer struct {
	spans    compare.SpanComparator
	mentions *compare.MentionComparator // nil scores on spans alone
	maxDepth int
	unit     model.Unit
}

// Option configures a Scorer
type Option func(*Scorer)

// WithSpanComparator sets the span matching strategy
func WithSpanComparator(sc compare.SpanComparator) Option {
	return func(s *Scorer) { s.spans = sc }
}

// WithMentionComparator sets the mention tree comparator; nil disables
// mention comparison
func WithMentionComparator(mc *compare.MentionComparator) Option {
	return func(s *Scorer) { s.mentions = mc }
}

// WithMaxDepth limits mention comparison to nodes at most depth deep
func WithMaxDepth(depth int) Option {
	return func(s *Scorer) { s.maxDepth = depth }
}

// WithUnit selects whole annotations or entity parts as the counting unit
func WithUnit(unit model.Unit) Option {
	return func(s *Scorer) { s.unit = unit }
}

// NewScorer creates a scorer. Without options it uses strict spans,
// identical mentions and unlimited depth over whole annotations.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		spans:    compare.StrictSpanComparator{},
		mentions: compare.NewIdenticalMentionComparator(),
		maxDepth: -1,
		unit:     model.UnitAnnotation,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spans == nil {
		s.spans = compare.StrictSpanComparator{}
	}
	return s
}

// FromConfig builds a scorer from the scoring section of the config
func FromConfig(cfg model.ScoringConfig) (*Scorer, error) {
	sc, err := compare.SpanComparatorByName(cfg.SpanComparator)
	if err != nil {
		return nil, err
	}
	mc, err := compare.MentionComparatorByName(cfg.MentionComparator, cfg.Synonyms)
	if err != nil {
		return nil, err
	}
	if cfg.MaxDepth < -1 {
		return nil, fmt.Errorf("invalid max depth %d (want -1 or more)", cfg.MaxDepth)
	}

	unit := cfg.Unit
	switch unit {
	case "":
		unit = model.UnitAnnotation
	case model.UnitAnnotation, model.UnitEntityParts:
	default:
		return nil, fmt.Errorf("unknown counting unit %q (want annotation or entity-parts)", cfg.Unit)
	}

	return NewScorer(
		WithSpanComparator(sc),
		WithMentionComparator(mc),
		WithMaxDepth(cfg.MaxDepth),
		WithUnit(unit),
	), nil
}

// Settings describes the scorer for reports
func (s *Scorer) Settings() model.Settings {
	mention := "none"
	if s.mentions != nil {
		mention = s.mentions.Name()
	}
	return model.Settings{
		SpanComparator:    s.spans.Name(),
		MentionComparator: mention,
		MaxDepth:          s.maxDepth,
		Unit:              s.unit,
	}
}

// Compare decides whether two annotations agree. It returns compare.Match,
// compare.SpanMismatch when documents or spans differ, or
// compare.MentionMismatch when spans agree but the mention trees do not.
// Structurally invalid annotations yield an error.
func (s *Scorer) Compare(a, b model.Annotation) (int, error) {
	pa, err := s.prepare(a)
	if err != nil {
		return 0, err
	}
	pb, err := s.prepare(b)
	if err != nil {
		return 0, err
	}
	if a.DocumentID != b.DocumentID {
		return compare.SpanMismatch, nil
	}
	return s.compare(pa, pb), nil
}

// Score compares the eval set against the gold set and returns the counts
func (s *Scorer) Score(gold, eval []model.Annotation) (model.PRFResult, error) {
	ev, err := s.Evaluate(gold, eval)
	if err != nil {
		return model.PRFResult{}, err
	}
	return ev.Result, nil
}

// Evaluate scores gold against eval one document at a time and collects
// per-document results and unmatched annotations
func (s *Scorer) Evaluate(gold, eval []model.Annotation) (model.Evaluation, error) {
	docs := GroupByDocument(gold, eval)
	outcomes := make([]DocumentOutcome, len(docs))
	for i, d := range docs {
		out, err := s.ScoreDocument(d)
		if err != nil {
			return model.Evaluation{}, err
		}
		outcomes[i] = out
	}
	return Merge(outcomes), nil
}

// Document holds the gold and eval annotations of one document
type Document struct {
	ID   string
	Gold []model.Annotation
	Eval []model.Annotation
}

// DocumentOutcome is the scored result of one document
type DocumentOutcome struct {
	model.DocumentResult
	FalsePositives []model.Annotation
	FalseNegatives []model.Annotation
}

// GroupByDocument partitions both sets by document ID. Documents are
// returned sorted by ID; annotations keep their input order.
func GroupByDocument(gold, eval []model.Annotation) []Document {
	index := make(map[string]int)
	var docs []Document

	lookup := func(id string) *Document {
		i, ok := index[id]
		if !ok {
			i = len(docs)
			index[id] = i
			docs = append(docs, Document{ID: id})
		}
		return &docs[i]
	}

	for _, a := range gold {
		d := lookup(a.DocumentID)
		d.Gold = append(d.Gold, a)
	}
	for _, a := range eval {
		d := lookup(a.DocumentID)
		d.Eval = append(d.Eval, a)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

// ScoreDocument scores a single document. Matching is many-to-one: an eval
// annotation is a true positive when it matches any gold annotation, and a
// gold annotation is a false negative only when no eval annotation matches it.
// ScoreDocument does not modify the scorer and may run concurrently.
func (s *Scorer) ScoreDocument(doc Document) (DocumentOutcome, error) {
	gold, err := s.prepareAll(doc.Gold)
	if err != nil {
		return DocumentOutcome{}, fmt.Errorf("document %q gold: %w", doc.ID, err)
	}
	eval, err := s.prepareAll(doc.Eval)
	if err != nil {
		return DocumentOutcome{}, fmt.Errorf("document %q eval: %w", doc.ID, err)
	}

	out := DocumentOutcome{DocumentResult: model.DocumentResult{
		DocumentID: doc.ID,
		GoldCount:  len(gold),
		EvalCount:  len(eval),
	}}

	// 1. Pair every eval item against every gold item
	goldMatched := make([]bool, len(gold))
	for _, e := range eval {
		matched := false
		for gi, g := range gold {
			if s.compare(g, e) == compare.Match {
				matched = true
				goldMatched[gi] = true
			}
		}
		if matched {
			out.Result.TruePositives++
		} else {
			out.Result.FalsePositives++
			out.FalsePositives = append(out.FalsePositives, e.ann)
		}
	}

	// 2. Gold items nobody matched are misses
	for gi, g := range gold {
		if !goldMatched[gi] {
			out.Result.FalseNegatives++
			out.FalseNegatives = append(out.FalseNegatives, g.ann)
		}
	}

	return out, nil
}

// Merge sums document outcomes into one evaluation, preserving their order
func Merge(outcomes []DocumentOutcome) model.Evaluation {
	var ev model.Evaluation
	for _, o := range outcomes {
		ev.Result = ev.Result.Add(o.Result)
		ev.GoldCount += o.GoldCount
		ev.EvalCount += o.EvalCount
		ev.Documents = append(ev.Documents, o.DocumentResult)
		ev.FalsePositives = append(ev.FalsePositives, o.FalsePositives...)
		ev.FalseNegatives = append(ev.FalseNegatives, o.FalseNegatives...)
	}
	return ev
}

// prepared is an annotation with its normalized spans and flattened tree
type prepared struct {
	ann   model.Annotation
	spans []model.Span
	tree  *model.MentionTree
}

func (s *Scorer) prepare(a model.Annotation) (prepared, error) {
	if err := a.Validate(); err != nil {
		return prepared{}, err
	}
	p := prepared{ann: a, spans: a.NormalizedSpans()}
	if s.mentions != nil {
		tree, err := a.Tree()
		if err != nil {
			return prepared{}, err
		}
		p.tree = tree
	}
	return p, nil
}

// prepareAll validates the annotations and, when counting entity parts,
// expands each into its parts
func (s *Scorer) prepareAll(anns []model.Annotation) ([]prepared, error) {
	if s.unit == model.UnitEntityParts {
		var err error
		anns, err = EntityParts(anns)
		if err != nil {
			return nil, err
		}
	}

	out := make([]prepared, 0, len(anns))
	for _, a := range anns {
		p, err := s.prepare(a)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Scorer) compare(a, b prepared) int {
	if r := s.spans.Compare(a.spans, b.spans); r != compare.Match {
		return r
	}
	if s.mentions == nil {
		return compare.Match
	}
	return s.mentions.Compare(a.tree, b.tree, s.spans, s.maxDepth)
}
