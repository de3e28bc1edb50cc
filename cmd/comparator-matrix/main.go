// Demo program printing how each span comparator judges a set of eval spans
// against the gold span "Androgen" (0-8) and a two-span gold phrase
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/annoteval/internal/compare"
	"github.com/ppiankov/annoteval/internal/model"
)

type spanCase struct {
	label string
	gold  []model.Span
	eval  []model.Span
}

func main() {
	fmt.Println("=== Span Comparator Matrix ===")
	fmt.Println()

	androgen := []model.Span{{Start: 0, End: 8}}
	phrase := []model.Span{{Start: 4, End: 15}, {Start: 26, End: 31}}

	cases := []spanCase{
		{"exact", androgen, []model.Span{{Start: 0, End: 8}}},
		{"longer right", androgen, []model.Span{{Start: 0, End: 9}}},
		{"shorter right", androgen, []model.Span{{Start: 0, End: 7}}},
		{"longer left", androgen, []model.Span{{Start: 0, End: 8}, {Start: 10, End: 12}}},
		{"inside", androgen, []model.Span{{Start: 2, End: 6}}},
		{"same end", androgen, []model.Span{{Start: 3, End: 8}}},
		{"overlap right", androgen, []model.Span{{Start: 6, End: 12}}},
		{"disjoint", androgen, []model.Span{{Start: 9, End: 12}}},
		{"touching", androgen, []model.Span{{Start: 8, End: 12}}},
		{"multi exact", phrase, []model.Span{{Start: 4, End: 15}, {Start: 26, End: 31}}},
		{"multi merged", phrase, []model.Span{{Start: 4, End: 31}}},
		{"multi first", phrase, []model.Span{{Start: 4, End: 15}}},
	}

	names := compare.SpanComparatorNames()

	fmt.Printf("%-14s %-16s", "case", "eval")
	for _, name := range names {
		fmt.Printf(" %-20s", name)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 31+21*len(names)))

	for _, c := range cases {
		fmt.Printf("%-14s %-16s", c.label, spansString(c.eval))
		for _, name := range names {
			sc, err := compare.SpanComparatorByName(name)
			if err != nil {
				fmt.Printf(" %-20s", "error")
				continue
			}
			verdict := "✗"
			if sc.Compare(c.gold, c.eval) == compare.Match {
				verdict = "✓"
			}
			fmt.Printf(" %-20s", verdict)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("Gold spans: %s for single-span cases, %s for multi-span cases\n", spansString(androgen), spansString(phrase))
}

func spansString(spans []model.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = fmt.Sprintf("%d-%d", s.Start, s.End)
	}
	return strings.Join(parts, ",")
}
