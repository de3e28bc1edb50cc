package model

import (
	"errors"
	"testing"
)

func sp(start, end int) Span {
	return Span{Start: start, End: end}
}

func TestNewSpan_Invalid(t *testing.T) {
	if _, err := NewSpan(5, 3); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("expected ErrInvalidSpan for inverted span, got %v", err)
	}
	if _, err := NewSpan(-1, 3); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("expected ErrInvalidSpan for negative start, got %v", err)
	}
	s, err := NewSpan(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != sp(3, 5) {
		t.Errorf("expected [3,5), got %v", s)
	}
}

func TestReduceSpans_Overlapping(t *testing.T) {
	got := ReduceSpans(sp(3, 6), sp(5, 10))
	if len(got) != 1 || got[0] != sp(3, 10) {
		t.Errorf("expected [3,10), got %v", got)
	}
}

func TestReduceSpans_Adjacent(t *testing.T) {
	got := ReduceSpans(sp(5, 10), sp(3, 5))
	if len(got) != 1 || got[0] != sp(3, 10) {
		t.Errorf("expected touching spans to merge into [3,10), got %v", got)
	}
}

func TestReduceSpans_Disjoint(t *testing.T) {
	got := ReduceSpans(sp(7, 10), sp(3, 5))
	if len(got) != 2 || got[0] != sp(3, 5) || got[1] != sp(7, 10) {
		t.Errorf("expected [3,5) [7,10), got %v", got)
	}
}

func TestNormalizeSpans(t *testing.T) {
	tests := []struct {
		name string
		in   []Span
		want []Span
	}{
		{"overlap in order", []Span{sp(3, 6), sp(5, 10)}, []Span{sp(3, 10)}},
		{"overlap reversed", []Span{sp(5, 10), sp(3, 6)}, []Span{sp(3, 10)}},
		{"disjoint", []Span{sp(7, 10), sp(3, 5)}, []Span{sp(3, 5), sp(7, 10)}},
		{"bridged by third", []Span{sp(3, 5), sp(7, 10), sp(4, 8)}, []Span{sp(3, 10)}},
		{"contained", []Span{sp(3, 5), sp(2, 10), sp(4, 8)}, []Span{sp(2, 10)}},
		{"three disjoint", []Span{sp(13, 15), sp(3, 5), sp(7, 10)}, []Span{sp(3, 5), sp(7, 10), sp(13, 15)}},
		{"same start", []Span{sp(3, 9), sp(3, 4)}, []Span{sp(3, 9)}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSpans(tt.in)
			if !SpansEqual(got, tt.want) {
				t.Errorf("NormalizeSpans(%v) = %v, want %v", tt.in, got, tt.want)
			}
			again := NormalizeSpans(got)
			if !SpansEqual(again, got) {
				t.Errorf("normalize is not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestNormalizeSpans_DoesNotModifyInput(t *testing.T) {
	in := []Span{sp(7, 10), sp(3, 5)}
	NormalizeSpans(in)
	if in[0] != sp(7, 10) || in[1] != sp(3, 5) {
		t.Errorf("input was reordered: %v", in)
	}
}

func TestCoveredText(t *testing.T) {
	// 0123456789012345678901234567890123456789012345
	text := "The quick brown fox jumped over the lazy frog."

	got, err := CoveredText([]Span{sp(4, 19)}, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "quick brown fox" {
		t.Errorf("expected %q, got %q", "quick brown fox", got)
	}

	got, err = CoveredText([]Span{sp(4, 9), sp(20, 26), sp(41, 45)}, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "quick .. jumped .. frog" {
		t.Errorf("expected %q, got %q", "quick .. jumped .. frog", got)
	}
}

func TestCoveredText_OutOfRange(t *testing.T) {
	if _, err := CoveredText([]Span{sp(40, 50)}, "short text"); !errors.Is(err, ErrCoveredTextOutOfRange) {
		t.Errorf("expected ErrCoveredTextOutOfRange, got %v", err)
	}
}

func TestCoveredText_CountsRunes(t *testing.T) {
	got, err := CoveredText([]Span{sp(2, 6)}, "α-β-catenin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "β-ca" {
		t.Errorf("expected rune offsets, got %q", got)
	}
}
