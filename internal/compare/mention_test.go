package compare

import (
	"testing"

	"github.com/ppiankov/annoteval/internal/model"
)

func tree(t *testing.T, cm *model.ClassMention, rootSpans ...model.Span) *model.MentionTree {
	t.Helper()
	mt, err := model.BuildMentionTree(cm, rootSpans)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	return mt
}

// transport builds "transport(agent=protein[gene_id], theme=protein)"
func transport(agentName string, geneIDs ...int) *model.ClassMention {
	agent := model.NewClassMention(agentName, model.Span{Start: 0, End: 4})
	ids := agent.AddPrimitiveSlot("entrez_gene_id", model.ValueInteger)
	for _, id := range geneIDs {
		ids.AddInt(id)
	}
	theme := model.NewClassMention("protein", model.Span{Start: 20, End: 28})

	root := model.NewClassMention("transport", model.Span{Start: 10, End: 19})
	root.AddComplexSlot("agent", agent)
	root.AddComplexSlot("theme", theme)
	return root
}

func TestMentionComparator_Identical(t *testing.T) {
	mc := NewIdenticalMentionComparator()
	a := tree(t, transport("protein", 7157, 1017))
	b := tree(t, transport("protein", 1017, 7157))

	if got := mc.Compare(a, b, nil, -1); got != Match {
		t.Errorf("expected match regardless of value order, got %d", got)
	}
}

func TestMentionComparator_DepthLimit(t *testing.T) {
	mc := NewIdenticalMentionComparator()
	a := tree(t, transport("protein", 7157))
	b := tree(t, transport("gene", 7157))

	// the differing filler sits at depth 2
	if got := mc.Compare(a, b, nil, -1); got != MentionMismatch {
		t.Errorf("full depth: expected %d, got %d", MentionMismatch, got)
	}
	if got := mc.Compare(a, b, nil, 1); got != Match {
		t.Errorf("depth 1: expected match, got %d", got)
	}
	if got := mc.Compare(a, b, nil, 0); got != Match {
		t.Errorf("depth 0: expected match, got %d", got)
	}
}

func TestMentionComparator_ValueMultisets(t *testing.T) {
	mc := NewIdenticalMentionComparator()

	tests := []struct {
		name string
		a, b []int
		want int
	}{
		{"same values", []int{1, 2}, []int{2, 1}, Match},
		{"different value", []int{1, 2}, []int{1, 3}, MentionMismatch},
		{"duplicate counts", []int{1, 1}, []int{1}, MentionMismatch},
		{"both empty", nil, nil, Match},
	}

	for _, tt := range tests {
		a := tree(t, transport("protein", tt.a...))
		b := tree(t, transport("protein", tt.b...))
		if got := mc.Compare(a, b, nil, -1); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestMentionComparator_Structure(t *testing.T) {
	mc := NewIdenticalMentionComparator()
	base := tree(t, transport("protein", 7157))

	extraSlot := transport("protein", 7157)
	extraSlot.AddComplexSlot("location", model.NewClassMention("nucleus"))
	if got := mc.Compare(base, tree(t, extraSlot), nil, -1); got != MentionMismatch {
		t.Errorf("extra slot: expected %d, got %d", MentionMismatch, got)
	}

	extraFiller := transport("protein", 7157)
	extraFiller.ComplexSlots[1].Fillers = append(extraFiller.ComplexSlots[1].Fillers,
		model.NewClassMention("protein", model.Span{Start: 30, End: 34}))
	if got := mc.Compare(base, tree(t, extraFiller), nil, -1); got != MentionMismatch {
		t.Errorf("extra filler: expected %d, got %d", MentionMismatch, got)
	}

	renamed := transport("protein", 7157)
	renamed.ComplexSlots[0].Name = "cause"
	if got := mc.Compare(base, tree(t, renamed), nil, -1); got != MentionMismatch {
		t.Errorf("renamed slot: expected %d, got %d", MentionMismatch, got)
	}
}

func TestMentionComparator_NestedSpans(t *testing.T) {
	mc := NewIdenticalMentionComparator()
	a := tree(t, transport("protein", 7157))

	shifted := transport("protein", 7157)
	shifted.ComplexSlots[1].Fillers[0].Spans = []model.Span{{Start: 20, End: 30}}
	b := tree(t, shifted)

	if got := mc.Compare(a, b, StrictSpanComparator{}, -1); got != MentionMismatch {
		t.Errorf("strict: expected %d, got %d", MentionMismatch, got)
	}
	if got := mc.Compare(a, b, SloppySpanComparator{}, -1); got != Match {
		t.Errorf("sloppy: expected match, got %d", got)
	}
	if got := mc.Compare(a, b, SharedStartSpanComparator{}, -1); got != Match {
		t.Errorf("shared-start: expected match, got %d", got)
	}
}

func TestMentionComparator_Synonyms(t *testing.T) {
	mc := NewSynonymMentionComparator([][]string{
		{"protein", "gene product"},
		{"gene product", "polypeptide"},
		{"gene", "locus"},
	})

	a := tree(t, transport("protein", 7157))
	b := tree(t, transport("polypeptide", 7157))
	if got := mc.Compare(a, b, nil, -1); got != Match {
		t.Errorf("joined groups: expected match, got %d", got)
	}

	c := tree(t, transport("locus", 7157))
	if got := mc.Compare(a, c, nil, -1); got != MentionMismatch {
		t.Errorf("separate groups: expected %d, got %d", MentionMismatch, got)
	}

	d := tree(t, transport("kinase", 7157))
	e := tree(t, transport("phosphatase", 7157))
	if got := mc.Compare(d, e, nil, -1); got != MentionMismatch {
		t.Errorf("ungrouped names: expected %d, got %d", MentionMismatch, got)
	}
}

func TestMentionComparatorByName(t *testing.T) {
	mc, err := MentionComparatorByName("", nil)
	if err != nil || mc == nil || mc.Name() != "identical" {
		t.Errorf("expected identical default, got %v %v", mc, err)
	}

	mc, err = MentionComparatorByName("none", nil)
	if err != nil || mc != nil {
		t.Errorf("expected nil comparator for none, got %v %v", mc, err)
	}

	if _, err := MentionComparatorByName("fuzzy", nil); err == nil {
		t.Error("expected error for unknown comparator")
	}
}
