package model

import (
	"fmt"
	"sort"
)

// NodeKind tags the variant held by a tree node
type NodeKind int

const (
	NodeClass NodeKind = iota
	NodeComplexSlot
	NodePrimitiveSlot
)

func (k NodeKind) String() string {
	switch k {
	case NodeClass:
		return "class"
	case NodeComplexSlot:
		return "complex-slot"
	case NodePrimitiveSlot:
		return "primitive-slot"
	default:
		return "unknown"
	}
}

// Node is one mention in a flattened tree. Links are indices into the
// owning MentionTree.
type Node struct {
	Kind      NodeKind
	Name      string
	Depth     int
	Parent    int // -1 for the root
	Children  []int
	Spans     []Span    // class nodes only, normalized
	ValueType ValueType // primitive slot nodes only
	Values    []string  // primitive slot nodes only, sorted
}

// MentionTree is an arena of nodes stored in depth-first pre-order: the
// root is node 0 and every node precedes its descendants.
type MentionTree struct {
	nodes []Node
}

// BuildMentionTree flattens a class mention. Class mentions without spans
// inherit the spans of their nearest class ancestor; the root falls back to
// rootSpans. Slots of a class mention are ordered by name, complex slots
// before primitive slots of the same name.
func BuildMentionTree(root *ClassMention, rootSpans []Span) (*MentionTree, error) {
	if root == nil {
		return nil, ErrMissingClassMention
	}
	b := &treeBuilder{onPath: make(map[*ClassMention]bool)}
	if _, err := b.addClass(root, -1, 0, NormalizeSpans(rootSpans)); err != nil {
		return nil, err
	}
	return &MentionTree{nodes: b.nodes}, nil
}

// Len returns the number of nodes
func (t *MentionTree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index i
func (t *MentionTree) Node(i int) *Node {
	return &t.nodes[i]
}

// Next returns the index of the first node at or after from whose depth is
// within maxDepth, or -1 when none remain. A maxDepth of -1 admits every node.
func (t *MentionTree) Next(from, maxDepth int) int {
	for i := from; i < len(t.nodes); i++ {
		if maxDepth == -1 || t.nodes[i].Depth <= maxDepth {
			return i
		}
	}
	return -1
}

type treeBuilder struct {
	nodes  []Node
	onPath map[*ClassMention]bool
}

type slotRef struct {
	name      string
	complex   *ComplexSlotMention
	primitive *PrimitiveSlotMention
}

func (b *treeBuilder) add(n Node) int {
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}

func (b *treeBuilder) addClass(cm *ClassMention, parent, depth int, inherited []Span) (int, error) {
	if cm.Name == "" {
		return 0, fmt.Errorf("class mention at depth %d: %w", depth, ErrEmptyMentionName)
	}
	if b.onPath[cm] {
		return 0, fmt.Errorf("class mention %q: %w", cm.Name, ErrMentionCycle)
	}
	b.onPath[cm] = true
	defer delete(b.onPath, cm)

	spans := inherited
	if len(cm.Spans) > 0 {
		for _, s := range cm.Spans {
			if err := s.Validate(); err != nil {
				return 0, fmt.Errorf("class mention %q: %w", cm.Name, err)
			}
		}
		spans = NormalizeSpans(cm.Spans)
	}

	idx := b.add(Node{Kind: NodeClass, Name: cm.Name, Depth: depth, Parent: parent, Spans: spans})

	slots := make([]slotRef, 0, len(cm.ComplexSlots)+len(cm.PrimitiveSlots))
	for _, cs := range cm.ComplexSlots {
		slots = append(slots, slotRef{name: cs.Name, complex: cs})
	}
	for _, ps := range cm.PrimitiveSlots {
		slots = append(slots, slotRef{name: ps.Name, primitive: ps})
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].name < slots[j].name })

	children := make([]int, 0, len(slots))
	for _, s := range slots {
		var child int
		var err error
		if s.complex != nil {
			child, err = b.addComplex(s.complex, idx, depth+1, spans)
		} else {
			child, err = b.addPrimitive(s.primitive, idx, depth+1)
		}
		if err != nil {
			return 0, err
		}
		children = append(children, child)
	}
	b.nodes[idx].Children = children
	return idx, nil
}

func (b *treeBuilder) addComplex(cs *ComplexSlotMention, parent, depth int, spans []Span) (int, error) {
	if cs == nil {
		return 0, fmt.Errorf("nil complex slot at depth %d", depth)
	}
	if cs.Name == "" {
		return 0, fmt.Errorf("complex slot at depth %d: %w", depth, ErrEmptyMentionName)
	}
	idx := b.add(Node{Kind: NodeComplexSlot, Name: cs.Name, Depth: depth, Parent: parent})

	children := make([]int, 0, len(cs.Fillers))
	for _, f := range cs.Fillers {
		if f == nil {
			return 0, fmt.Errorf("complex slot %q filler: %w", cs.Name, ErrMissingClassMention)
		}
		child, err := b.addClass(f, idx, depth+1, spans)
		if err != nil {
			return 0, err
		}
		children = append(children, child)
	}
	b.nodes[idx].Children = children
	return idx, nil
}

func (b *treeBuilder) addPrimitive(ps *PrimitiveSlotMention, parent, depth int) (int, error) {
	if ps == nil {
		return 0, fmt.Errorf("nil primitive slot at depth %d", depth)
	}
	if ps.Name == "" {
		return 0, fmt.Errorf("primitive slot at depth %d: %w", depth, ErrEmptyMentionName)
	}
	values := append([]string(nil), ps.Values...)
	sort.Strings(values)
	return b.add(Node{
		Kind:      NodePrimitiveSlot,
		Name:      ps.Name,
		Depth:     depth,
		Parent:    parent,
		ValueType: ps.Type,
		Values:    values,
	}), nil
}
