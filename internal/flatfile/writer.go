// Package flatfile reads and writes annotations as pipe-delimited lines:
//
//	documentID|annotatorID|start end[,start end]|type|coveredText[|slot|v1,v2]*
//
// Only primitive slots of the root class mention are written.
package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/model"
)

const (
	separator = "|"
	// PipePlaceholder replaces literal pipes inside fields
	PipePlaceholder = "[PIPE]"
	// CommaPlaceholder replaces literal commas inside slot values
	CommaPlaceholder = "[COMMA]"
)

// Writer writes annotations one per line
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a buffered writer; call Flush when done
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single annotation line
func (w *Writer) Write(a model.Annotation) error {
	if _, err := w.w.WriteString(Format(a) + "\n"); err != nil {
		return fmt.Errorf("failed to write annotation %q: %w", a.ID, err)
	}
	return nil
}

// WriteAll writes every annotation and flushes
func (w *Writer) WriteAll(anns []model.Annotation) error {
	for _, a := range anns {
		if err := w.Write(a); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Format renders an annotation as a single line. Primitive slots are ordered
// by name and their values keep insertion order.
func Format(a model.Annotation) string {
	fields := []string{
		escape(a.DocumentID, "document id"),
		escape(a.AnnotatorID, "annotator id"),
		formatSpans(a.Spans),
		escape(a.Type(), "mention type"),
		escape(a.CoveredText, "covered text"),
	}

	if a.Mention != nil {
		slots := append([]*model.PrimitiveSlotMention(nil), a.Mention.PrimitiveSlots...)
		sort.SliceStable(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
		for _, s := range slots {
			values := make([]string, len(s.Values))
			for i, v := range s.Values {
				values[i] = escapeValue(v)
			}
			fields = append(fields, escape(s.Name, "slot name"), strings.Join(values, ","))
		}
	}

	return strings.Join(fields, separator)
}

func formatSpans(spans []model.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = strconv.Itoa(s.Start) + " " + strconv.Itoa(s.End)
	}
	return strings.Join(parts, ",")
}

// escape replaces literal pipes, which would otherwise shift the columns
func escape(field, what string) string {
	if !strings.Contains(field, separator) {
		return field
	}
	logger.Warn("replacing pipe character in flat file field", "field", what, "value", field)
	return strings.ReplaceAll(field, separator, PipePlaceholder)
}

// escapeValue also replaces commas, which separate the values of a slot
func escapeValue(v string) string {
	v = escape(v, "slot value")
	if !strings.Contains(v, ",") {
		return v
	}
	logger.Warn("replacing comma in flat file slot value", "value", v)
	return strings.ReplaceAll(v, ",", CommaPlaceholder)
}
