package compare

import (
	"testing"

	"github.com/ppiankov/annoteval/internal/model"
)

func spans(pairs ...int) []model.Span {
	out := make([]model.Span, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Span{Start: pairs[i], End: pairs[i+1]})
	}
	return out
}

func TestSpanComparators_SinglePair(t *testing.T) {
	gold := spans(0, 8)

	// expected verdicts: strict, sloppy, shared-start, shared-end, shared-start-or-end
	tests := []struct {
		name string
		eval []model.Span
		want [5]int
	}{
		{"identical", spans(0, 8), [5]int{Match, Match, Match, Match, Match}},
		{"overlapping right end", spans(0, 12), [5]int{SpanMismatch, Match, Match, SpanMismatch, Match}},
		{"shared end only", spans(4, 8), [5]int{SpanMismatch, Match, SpanMismatch, Match, Match}},
		{"shared start only", spans(0, 15), [5]int{SpanMismatch, Match, Match, SpanMismatch, Match}},
		{"overlap without shared boundary", spans(4, 12), [5]int{SpanMismatch, Match, SpanMismatch, SpanMismatch, SpanMismatch}},
		{"adjacent", spans(8, 10), [5]int{SpanMismatch, SpanMismatch, SpanMismatch, SpanMismatch, SpanMismatch}},
		{"disjoint", spans(20, 30), [5]int{SpanMismatch, SpanMismatch, SpanMismatch, SpanMismatch, SpanMismatch}},
	}

	comparators := []SpanComparator{
		StrictSpanComparator{},
		SloppySpanComparator{},
		SharedStartSpanComparator{},
		SharedEndSpanComparator{},
		SharedStartOrEndSpanComparator{},
	}

	for _, tt := range tests {
		for i, sc := range comparators {
			if got := sc.Compare(gold, tt.eval); got != tt.want[i] {
				t.Errorf("%s/%s: expected %d, got %d", tt.name, sc.Name(), tt.want[i], got)
			}
			// every built-in comparator is symmetric
			if got := sc.Compare(tt.eval, gold); got != tt.want[i] {
				t.Errorf("%s/%s reversed: expected %d, got %d", tt.name, sc.Name(), tt.want[i], got)
			}
		}
	}
}

func TestStrictSpanComparator_Normalizes(t *testing.T) {
	sc := StrictSpanComparator{}

	if sc.Compare(spans(0, 5, 5, 10), spans(0, 10)) != Match {
		t.Error("expected adjacent spans to equal their merge")
	}
	if sc.Compare(spans(20, 30, 0, 10), spans(0, 10, 20, 30)) != Match {
		t.Error("expected span order to be irrelevant")
	}
	if sc.Compare(spans(0, 10, 20, 30), spans(0, 30)) != SpanMismatch {
		t.Error("expected discontinuous spans not to equal their cover")
	}
}

func TestMultiSpanBoundaries(t *testing.T) {
	a := spans(40, 50, 10, 20)
	b := spans(10, 15, 45, 50)

	if (SharedStartSpanComparator{}).Compare(a, b) != Match {
		t.Error("expected earliest starts to match")
	}
	if (SharedEndSpanComparator{}).Compare(a, b) != Match {
		t.Error("expected latest ends to match")
	}
	if (SloppySpanComparator{}).Compare(spans(0, 5, 30, 40), spans(10, 20, 35, 36)) != Match {
		t.Error("expected overlap between second spans to match")
	}
}

func TestSpanComparators_EmptyLists(t *testing.T) {
	for _, name := range SpanComparatorNames() {
		sc, err := SpanComparatorByName(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if sc.Compare(nil, nil) != Match {
			t.Errorf("%s: expected two empty lists to match", name)
		}
		if sc.Compare(nil, spans(0, 8)) != SpanMismatch {
			t.Errorf("%s: expected one empty list not to match", name)
		}
	}
}

func TestSpanComparatorByName(t *testing.T) {
	sc, err := SpanComparatorByName("  Sloppy ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name() != "sloppy" {
		t.Errorf("expected sloppy, got %s", sc.Name())
	}

	if _, err := SpanComparatorByName("fuzzy"); err == nil {
		t.Error("expected error for unknown comparator")
	}

	if n := len(SpanComparatorNames()); n != 5 {
		t.Errorf("expected 5 built-in comparators, got %d", n)
	}
}
