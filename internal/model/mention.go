package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/annoteval/internal/logger"
)

// ValueType is the declared type of a primitive slot's values
type ValueType string

const (
	ValueString  ValueType = "string"
	ValueInteger ValueType = "integer"
	ValueFloat   ValueType = "float"
	ValueBoolean ValueType = "boolean"
	ValueMention ValueType = "mention" // reference to another mention by ID
)

// ClassMention is a frame instance of a semantic type (e.g. "protein").
// Spans may be empty on nested mentions, in which case the spans of the
// nearest enclosing class mention apply.
type ClassMention struct {
	Name           string                  `json:"name"`
	Spans          []Span                  `json:"spans,omitempty"`
	ComplexSlots   []*ComplexSlotMention   `json:"complex_slots,omitempty"`
	PrimitiveSlots []*PrimitiveSlotMention `json:"primitive_slots,omitempty"`
}

// ComplexSlotMention is a named slot filled by other class mentions
type ComplexSlotMention struct {
	Name    string          `json:"name"`
	Fillers []*ClassMention `json:"fillers,omitempty"`
}

// PrimitiveSlotMention is a named slot holding a multiset of typed values.
// Values are stored in their canonical string form.
type PrimitiveSlotMention struct {
	Name   string    `json:"name"`
	Type   ValueType `json:"type"`
	Values []string  `json:"values,omitempty"`
}

// NewClassMention creates a class mention with optional linked spans
func NewClassMention(name string, spans ...Span) *ClassMention {
	return &ClassMention{Name: name, Spans: spans}
}

// AddComplexSlot attaches a complex slot filled by the given mentions
func (cm *ClassMention) AddComplexSlot(name string, fillers ...*ClassMention) *ComplexSlotMention {
	slot := &ComplexSlotMention{Name: name, Fillers: fillers}
	cm.ComplexSlots = append(cm.ComplexSlots, slot)
	return slot
}

// AddPrimitiveSlot attaches an empty primitive slot of the given type
func (cm *ClassMention) AddPrimitiveSlot(name string, typ ValueType) *PrimitiveSlotMention {
	slot := &PrimitiveSlotMention{Name: name, Type: typ}
	cm.PrimitiveSlots = append(cm.PrimitiveSlots, slot)
	return slot
}

// PrimitiveSlot returns the first primitive slot with the given name, or nil
func (cm *ClassMention) PrimitiveSlot(name string) *PrimitiveSlotMention {
	for _, s := range cm.PrimitiveSlots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of the mention and everything below it
func (cm *ClassMention) Clone() *ClassMention {
	if cm == nil {
		return nil
	}
	out := &ClassMention{Name: cm.Name}
	if len(cm.Spans) > 0 {
		out.Spans = append([]Span(nil), cm.Spans...)
	}
	for _, cs := range cm.ComplexSlots {
		fillers := make([]*ClassMention, len(cs.Fillers))
		for i, f := range cs.Fillers {
			fillers[i] = f.Clone()
		}
		out.ComplexSlots = append(out.ComplexSlots, &ComplexSlotMention{Name: cs.Name, Fillers: fillers})
	}
	for _, ps := range cm.PrimitiveSlots {
		out.PrimitiveSlots = append(out.PrimitiveSlots, &PrimitiveSlotMention{
			Name:   ps.Name,
			Type:   ps.Type,
			Values: append([]string(nil), ps.Values...),
		})
	}
	return out
}

// AddValueString parses raw according to the slot type and appends it.
// A value that does not parse is logged and dropped; the return value
// reports whether it was kept.
func (ps *PrimitiveSlotMention) AddValueString(raw string) bool {
	canonical, err := canonicalValue(ps.Type, raw)
	if err != nil {
		logger.Warn("dropping primitive slot value",
			"slot", ps.Name, "type", string(ps.Type), "value", raw, "err", err)
		return false
	}
	ps.Values = append(ps.Values, canonical)
	return true
}

// AddInt appends an integer value
func (ps *PrimitiveSlotMention) AddInt(v int) {
	ps.Values = append(ps.Values, strconv.Itoa(v))
}

// AddFloat appends a floating point value
func (ps *PrimitiveSlotMention) AddFloat(v float64) {
	ps.Values = append(ps.Values, strconv.FormatFloat(v, 'g', -1, 64))
}

// AddBool appends a boolean value
func (ps *PrimitiveSlotMention) AddBool(v bool) {
	ps.Values = append(ps.Values, strconv.FormatBool(v))
}

// AddString appends a string value verbatim
func (ps *PrimitiveSlotMention) AddString(v string) {
	ps.Values = append(ps.Values, v)
}

func canonicalValue(typ ValueType, raw string) (string, error) {
	switch typ {
	case ValueInteger:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("not an integer: %w", err)
		}
		return strconv.Itoa(n), nil
	case ValueFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return "", fmt.Errorf("not a float: %w", err)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case ValueBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("not a boolean: %w", err)
		}
		return strconv.FormatBool(b), nil
	case ValueMention:
		ref := strings.TrimSpace(raw)
		if ref == "" {
			return "", fmt.Errorf("empty mention reference")
		}
		return ref, nil
	case ValueString, "":
		return raw, nil
	default:
		return "", fmt.Errorf("%q: %w", typ, ErrUnknownValueType)
	}
}

// Valid reports whether t is a known value type. The empty type reads as
// a string.
func (t ValueType) Valid() bool {
	switch t {
	case "", ValueString, ValueInteger, ValueFloat, ValueBoolean, ValueMention:
		return true
	}
	return false
}

// Canonicalize re-parses every primitive value below cm according to its
// slot type, for mentions decoded from JSON rather than built through
// AddValueString. Values that do not parse are logged and dropped. An unknown
// slot type is an error.
func (cm *ClassMention) Canonicalize() error {
	return canonicalize(cm, make(map[*ClassMention]bool))
}

func canonicalize(cm *ClassMention, onPath map[*ClassMention]bool) error {
	if cm == nil {
		return nil
	}
	if onPath[cm] {
		return fmt.Errorf("class mention %q: %w", cm.Name, ErrMentionCycle)
	}
	onPath[cm] = true
	defer delete(onPath, cm)

	for _, ps := range cm.PrimitiveSlots {
		if ps == nil {
			continue
		}
		if !ps.Type.Valid() {
			return fmt.Errorf("primitive slot %q type %q: %w", ps.Name, ps.Type, ErrUnknownValueType)
		}
		raw := ps.Values
		ps.Values = nil
		for _, v := range raw {
			ps.AddValueString(v)
		}
	}
	for _, cs := range cm.ComplexSlots {
		if cs == nil {
			continue
		}
		for _, f := range cs.Fillers {
			if err := canonicalize(f, onPath); err != nil {
				return err
			}
		}
	}
	return nil
}
