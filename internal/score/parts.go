package score

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/annoteval/internal/model"
)

// EntityParts splits each annotation into one annotation per
// whitespace-delimited token of its covered text. A part keeps the
// document, annotator and a copy of the mention tree of its source, with the
// root mention linked to the token's span.
func EntityParts(anns []model.Annotation) ([]model.Annotation, error) {
	var parts []model.Annotation
	for _, a := range anns {
		p, err := entityParts(a)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p...)
	}
	return parts, nil
}

func entityParts(a model.Annotation) ([]model.Annotation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.CoveredText == "" {
		return nil, fmt.Errorf("annotation %q: %w", a.ID, model.ErrNoCoveredText)
	}

	pieces := []string{a.CoveredText}
	if len(a.Spans) > 1 {
		pieces = strings.Split(a.CoveredText, model.CoveredTextSeparator)
	}
	if len(pieces) != len(a.Spans) {
		return nil, fmt.Errorf("annotation %q: %d text pieces for %d spans: %w",
			a.ID, len(pieces), len(a.Spans), model.ErrCoveredTextMismatch)
	}

	var parts []model.Annotation
	for i, span := range a.Spans {
		if n := utf8.RuneCountInString(pieces[i]); n != span.Len() {
			return nil, fmt.Errorf("annotation %q: span %s covers %d characters, text has %d: %w",
				a.ID, span, span.Len(), n, model.ErrCoveredTextMismatch)
		}
		for _, tok := range tokens(pieces[i]) {
			ps := model.Span{Start: span.Start + tok.Start, End: span.Start + tok.End}
			mention := a.Mention.Clone()
			mention.Spans = []model.Span{ps}
			parts = append(parts, model.Annotation{
				ID:          fmt.Sprintf("%s#%d", a.ID, len(parts)),
				DocumentID:  a.DocumentID,
				AnnotatorID: a.AnnotatorID,
				Spans:       []model.Span{ps},
				CoveredText: tok.text,
				Mention:     mention,
			})
		}
	}
	return parts, nil
}

type token struct {
	Start, End int // rune offsets within the piece
	text       string
}

// tokens returns the maximal runs of non-space characters in s
func tokens(s string) []token {
	var out []token
	start, startByte := -1, 0
	pos := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, token{Start: start, End: pos, text: s[startByte:i]})
				start = -1
			}
		} else if start < 0 {
			start, startByte = pos, i
		}
		pos++
	}
	if start >= 0 {
		out = append(out, token{Start: start, End: pos, text: s[startByte:]})
	}
	return out
}
