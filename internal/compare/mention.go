package compare

import (
	"fmt"
	"strings"

	"github.com/ppiankov/annoteval/internal/model"
)

// NameEquivalence decides whether two mention names denote the same thing
type NameEquivalence interface {
	Equivalent(a, b string) bool
}

// IdenticalNames is exact, case-sensitive string equality
type IdenticalNames struct{}

func (IdenticalNames) Equivalent(a, b string) bool { return a == b }

// SynonymNames treats names in the same group as equivalent. Names outside
// every group fall back to exact equality.
type SynonymNames struct {
	group map[string]int
}

// NewSynonymNames builds an equivalence from groups of interchangeable names.
// A name listed in several groups joins them.
func NewSynonymNames(groups [][]string) *SynonymNames {
	parent := make([]int, len(groups))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	first := make(map[string]int)
	for gi, g := range groups {
		for _, name := range g {
			if prev, ok := first[name]; ok {
				parent[find(gi)] = find(prev)
				continue
			}
			first[name] = gi
		}
	}

	s := &SynonymNames{group: make(map[string]int, len(first))}
	for name, gi := range first {
		s.group[name] = find(gi)
	}
	return s
}

func (s *SynonymNames) Equivalent(a, b string) bool {
	if a == b {
		return true
	}
	ga, okA := s.group[a]
	gb, okB := s.group[b]
	return okA && okB && ga == gb
}

// MentionComparator compares two mention trees node by node in pre-order,
// stopping at the first differing node. The name policy is pluggable; the
// structural walk is shared by every variant.
type MentionComparator struct {
	name  string
	names NameEquivalence
}

// NewMentionComparator creates a comparator with a custom name policy
func NewMentionComparator(name string, names NameEquivalence) *MentionComparator {
	return &MentionComparator{name: name, names: names}
}

// NewIdenticalMentionComparator requires mention names to be identical
func NewIdenticalMentionComparator() *MentionComparator {
	return NewMentionComparator("identical", IdenticalNames{})
}

// NewSynonymMentionComparator accepts names from the same synonym group
func NewSynonymMentionComparator(groups [][]string) *MentionComparator {
	return NewMentionComparator("synonym", NewSynonymNames(groups))
}

// MentionComparatorByName returns a built-in mention comparator. "none"
// yields nil, meaning annotations are matched on spans alone.
func MentionComparatorByName(name string, synonyms [][]string) (*MentionComparator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identical", "":
		return NewIdenticalMentionComparator(), nil
	case "synonym":
		return NewSynonymMentionComparator(synonyms), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mention comparator %q (want identical, synonym or none)", name)
	}
}

// Name identifies the comparator in reports
func (c *MentionComparator) Name() string {
	return c.name
}

// Compare walks both trees in lockstep, visiting only nodes whose depth is
// at most maxDepth (-1 for all nodes). It returns Match or MentionMismatch.
// A nil span comparator means strict span equality.
func (c *MentionComparator) Compare(a, b *model.MentionTree, spans SpanComparator, maxDepth int) int {
	if spans == nil {
		spans = StrictSpanComparator{}
	}

	i, j := 0, 0
	for {
		i = a.Next(i, maxDepth)
		j = b.Next(j, maxDepth)

		if i == -1 && j == -1 {
			return Match
		}
		if i == -1 || j == -1 {
			return MentionMismatch
		}

		na, nb := a.Node(i), b.Node(j)
		if na.Depth != nb.Depth {
			return MentionMismatch
		}
		if !c.nodesMatch(na, nb, spans) {
			return MentionMismatch
		}
		i++
		j++
	}
}

func (c *MentionComparator) nodesMatch(a, b *model.Node, spans SpanComparator) bool {
	if a.Kind != b.Kind {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if !c.names.Equivalent(a.Name, b.Name) {
		return false
	}

	switch a.Kind {
	case model.NodePrimitiveSlot:
		return valuesEqual(a.Values, b.Values)
	case model.NodeClass:
		return spans.Compare(a.Spans, b.Spans) == Match
	}
	return true
}

// valuesEqual compares two sorted value multisets
func valuesEqual(a, b []string) bool {
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
