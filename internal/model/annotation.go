package model

import "fmt"

// Annotation ties a class mention tree to the text it covers. The annotation
// owns its mention tree exclusively.
type Annotation struct {
	ID          string        `json:"id"`
	DocumentID  string        `json:"document_id"`
	AnnotatorID string        `json:"annotator_id,omitempty"`
	Spans       []Span        `json:"spans"`
	CoveredText string        `json:"covered_text,omitempty"`
	Mention     *ClassMention `json:"mention"`
}

// Type returns the class name of the root mention, or "" when absent
func (a Annotation) Type() string {
	if a.Mention == nil {
		return ""
	}
	return a.Mention.Name
}

// Validate checks the structural requirements for comparison
func (a Annotation) Validate() error {
	if a.Mention == nil {
		return fmt.Errorf("annotation %q: %w", a.ID, ErrMissingClassMention)
	}
	if a.Mention.Name == "" {
		return fmt.Errorf("annotation %q: %w", a.ID, ErrEmptyMentionName)
	}
	if len(a.Spans) == 0 {
		return fmt.Errorf("annotation %q: %w", a.ID, ErrNoSpans)
	}
	for _, s := range a.Spans {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("annotation %q: %w", a.ID, err)
		}
	}
	return nil
}

// NormalizedSpans returns the annotation's spans in normalized form
func (a Annotation) NormalizedSpans() []Span {
	return NormalizeSpans(a.Spans)
}

// Tree flattens the annotation's mention for comparison. The root class
// mention is linked to the annotation spans unless it carries its own.
func (a Annotation) Tree() (*MentionTree, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	t, err := BuildMentionTree(a.Mention, a.Spans)
	if err != nil {
		return nil, fmt.Errorf("annotation %q: %w", a.ID, err)
	}
	return t, nil
}
