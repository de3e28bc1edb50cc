package model

import (
	"fmt"
	"sort"
	"strings"
)

// CoveredTextSeparator joins the text of discontinuous spans.
const CoveredTextSeparator = " .. "

// Span is a half-open character interval [Start, End) into a document's text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan creates a span, rejecting negative offsets and inverted bounds
func NewSpan(start, end int) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate reports whether the span bounds are well formed
func (s Span) Validate() error {
	if s.Start < 0 || s.Start > s.End {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidSpan, s.Start, s.End)
	}
	return nil
}

// Len returns the number of characters covered
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two spans share at least one character
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Touches reports whether the spans overlap or are directly adjacent
func (s Span) Touches(o Span) bool {
	return s.Start <= o.End && o.Start <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d %d", s.Start, s.End)
}

func spanLess(a, b Span) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// ReduceSpans merges two spans when they overlap or touch. Otherwise both
// spans are returned in start order.
func ReduceSpans(a, b Span) []Span {
	if a.Touches(b) {
		return []Span{{Start: min(a.Start, b.Start), End: max(a.End, b.End)}}
	}
	if spanLess(b, a) {
		return []Span{b, a}
	}
	return []Span{a, b}
}

// NormalizeSpans returns the minimal sorted sequence of non-touching spans
// covering the same characters as the input. The input is not modified.
func NormalizeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return spanLess(sorted[i], sorted[j]) })

	out := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if last.Touches(s) {
			last.End = max(last.End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// SpansEqual reports whether two span sequences have identical bounds in the
// same order
func SpansEqual(a, b []Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CoveredText returns the text under each span, in input order, joined by
// CoveredTextSeparator. Offsets count characters (runes), not bytes.
func CoveredText(spans []Span, text string) (string, error) {
	runes := []rune(text)
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if err := s.Validate(); err != nil {
			return "", err
		}
		if s.End > len(runes) {
			return "", fmt.Errorf("%w: span [%d, %d) in text of length %d",
				ErrCoveredTextOutOfRange, s.Start, s.End, len(runes))
		}
		parts = append(parts, string(runes[s.Start:s.End]))
	}
	return strings.Join(parts, CoveredTextSeparator), nil
}
