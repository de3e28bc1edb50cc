package model

import "time"

// Report is the complete output of one gold-versus-eval evaluation
type Report struct {
	GoldSource  string    `json:"gold_source"`  // Path or label of the reference annotations
	EvalSource  string    `json:"eval_source"`  // Path or label of the system annotations
	GeneratedAt time.Time `json:"generated_at"` // When the evaluation ran
	Settings    Settings  `json:"settings"`     // Comparator configuration used

	Evaluation
}

// Settings records which comparison strategy produced a result
type Settings struct {
	SpanComparator    string `json:"span_comparator"`
	MentionComparator string `json:"mention_comparator"`
	MaxDepth          int    `json:"max_depth"` // -1 means unlimited
	Unit              Unit   `json:"unit"`
}

// Unit is the counting unit of an evaluation
type Unit string

const (
	UnitAnnotation  Unit = "annotation"   // Whole annotations match or not
	UnitEntityParts Unit = "entity-parts" // Whitespace-delimited parts of each annotation
)

// Evaluation is the scored outcome of comparing two annotation sets
type Evaluation struct {
	GoldCount int              `json:"gold_count"` // Gold annotations, or parts when counting entity parts
	EvalCount int              `json:"eval_count"` // Eval annotations, or parts
	Result    PRFResult        `json:"result"`
	Documents []DocumentResult `json:"documents,omitempty"`

	FalsePositives []Annotation `json:"false_positives,omitempty"` // Eval annotations with no gold match
	FalseNegatives []Annotation `json:"false_negatives,omitempty"` // Gold annotations with no eval match
}

// DocumentResult is the per-document share of an evaluation
type DocumentResult struct {
	DocumentID string    `json:"document_id"`
	GoldCount  int       `json:"gold_count"`
	EvalCount  int       `json:"eval_count"`
	Result     PRFResult `json:"result"`
}
