// Package compare implements the span and mention matching strategies used
// to decide whether two annotations agree.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/annoteval/internal/model"
)

// Comparison results. Span comparators report SpanMismatch and mention
// comparators report MentionMismatch so callers can tell which layer failed.
const (
	Match           = 0
	SpanMismatch    = -1
	MentionMismatch = -3
)

// SpanComparator decides whether two span sequences match. Inputs need not
// be normalized; implementations normalize before comparing.
type SpanComparator interface {
	Compare(a, b []model.Span) int
	Name() string
}

// StrictSpanComparator matches identical normalized span lists
type StrictSpanComparator struct{}

func (StrictSpanComparator) Name() string { return "strict" }

func (StrictSpanComparator) Compare(a, b []model.Span) int {
	return verdict(model.SpansEqual(model.NormalizeSpans(a), model.NormalizeSpans(b)))
}

// SloppySpanComparator matches when any span of a overlaps any span of b by
// at least one character
type SloppySpanComparator struct{}

func (SloppySpanComparator) Name() string { return "sloppy" }

func (SloppySpanComparator) Compare(a, b []model.Span) int {
	if len(a) == 0 && len(b) == 0 {
		return Match
	}
	for _, x := range a {
		for _, y := range b {
			if x.Overlaps(y) {
				return Match
			}
		}
	}
	return SpanMismatch
}

// SharedStartSpanComparator matches when the earliest starts coincide
type SharedStartSpanComparator struct{}

func (SharedStartSpanComparator) Name() string { return "shared-start" }

func (SharedStartSpanComparator) Compare(a, b []model.Span) int {
	return verdict(sharedStart(a, b))
}

// SharedEndSpanComparator matches when the latest ends coincide
type SharedEndSpanComparator struct{}

func (SharedEndSpanComparator) Name() string { return "shared-end" }

func (SharedEndSpanComparator) Compare(a, b []model.Span) int {
	return verdict(sharedEnd(a, b))
}

// SharedStartOrEndSpanComparator matches when either boundary coincides
type SharedStartOrEndSpanComparator struct{}

func (SharedStartOrEndSpanComparator) Name() string { return "shared-start-or-end" }

func (SharedStartOrEndSpanComparator) Compare(a, b []model.Span) int {
	return verdict(sharedStart(a, b) || sharedEnd(a, b))
}

func verdict(match bool) int {
	if match {
		return Match
	}
	return SpanMismatch
}

// sharedStart and sharedEnd treat two empty lists as matching and a single
// empty list as not matching
func sharedStart(a, b []model.Span) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return firstStart(a) == firstStart(b)
}

func sharedEnd(a, b []model.Span) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return lastEnd(a) == lastEnd(b)
}

func firstStart(spans []model.Span) int {
	start := spans[0].Start
	for _, s := range spans[1:] {
		start = min(start, s.Start)
	}
	return start
}

func lastEnd(spans []model.Span) int {
	end := spans[0].End
	for _, s := range spans[1:] {
		end = max(end, s.End)
	}
	return end
}

var spanComparators = map[string]SpanComparator{
	"strict":              StrictSpanComparator{},
	"sloppy":              SloppySpanComparator{},
	"shared-start":        SharedStartSpanComparator{},
	"shared-end":          SharedEndSpanComparator{},
	"shared-start-or-end": SharedStartOrEndSpanComparator{},
}

// SpanComparatorByName returns a built-in span comparator
func SpanComparatorByName(name string) (SpanComparator, error) {
	sc, ok := spanComparators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown span comparator %q (want one of %s)", name, strings.Join(SpanComparatorNames(), ", "))
	}
	return sc, nil
}

// SpanComparatorNames lists the built-in span comparators
func SpanComparatorNames() []string {
	names := make([]string, 0, len(spanComparators))
	for name := range spanComparators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
