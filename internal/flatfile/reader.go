package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/model"
)

// ParseError reports a malformed line
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errTooFewFields = errors.New("expected at least 5 pipe-separated fields")
	errOddSlots     = errors.New("slot name without values")
	errSpanFormat   = errors.New("span must be \"start end\"")
)

// Reader parses annotations line by line. Blank lines and lines starting
// with '#' are skipped. The format carries no annotation IDs, so each
// annotation is given a random UUID.
type Reader struct {
	// Lenient logs and skips malformed lines instead of failing
	Lenient bool

	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader over r
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{scanner: s}
}

// Read returns the next annotation, or io.EOF when the input is exhausted
func (r *Reader) Read() (model.Annotation, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		a, err := Parse(text)
		if err != nil {
			perr := &ParseError{Line: r.line, Err: err}
			if r.Lenient {
				logger.Warn("skipping malformed flat file line", "line", r.line, "err", err)
				continue
			}
			return model.Annotation{}, perr
		}
		return a, nil
	}
	if err := r.scanner.Err(); err != nil {
		return model.Annotation{}, fmt.Errorf("failed to read line %d: %w", r.line+1, err)
	}
	return model.Annotation{}, io.EOF
}

// ReadAll reads every remaining annotation
func (r *Reader) ReadAll() ([]model.Annotation, error) {
	var out []model.Annotation
	for {
		a, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

// ReadFile reads all annotations from a file
func ReadFile(path string, lenient bool) ([]model.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := NewReader(f)
	r.Lenient = lenient
	anns, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return anns, nil
}

// WriteFile writes annotations to a file, replacing it
func WriteFile(path string, anns []model.Annotation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := NewWriter(f).WriteAll(anns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Parse decodes a single line. Slot values are read back as strings.
func Parse(line string) (model.Annotation, error) {
	fields := strings.Split(line, separator)
	if len(fields) < 5 {
		return model.Annotation{}, errTooFewFields
	}
	if (len(fields)-5)%2 != 0 {
		return model.Annotation{}, errOddSlots
	}
	for i := range fields {
		fields[i] = strings.ReplaceAll(fields[i], PipePlaceholder, separator)
	}

	spans, err := parseSpans(fields[2])
	if err != nil {
		return model.Annotation{}, err
	}
	if fields[3] == "" {
		return model.Annotation{}, model.ErrEmptyMentionName
	}

	mention := model.NewClassMention(fields[3])
	for i := 5; i < len(fields); i += 2 {
		if fields[i] == "" {
			return model.Annotation{}, fmt.Errorf("slot %d: %w", (i-5)/2+1, model.ErrEmptyMentionName)
		}
		slot := mention.AddPrimitiveSlot(fields[i], model.ValueString)
		if fields[i+1] == "" {
			continue
		}
		for _, v := range strings.Split(fields[i+1], ",") {
			slot.AddValueString(strings.ReplaceAll(v, CommaPlaceholder, ","))
		}
	}

	return model.Annotation{
		ID:          uuid.NewString(),
		DocumentID:  fields[0],
		AnnotatorID: fields[1],
		Spans:       spans,
		CoveredText: fields[4],
		Mention:     mention,
	}, nil
}

func parseSpans(field string) ([]model.Span, error) {
	var spans []model.Span
	for _, part := range strings.Split(field, ",") {
		bounds := strings.Fields(part)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("%q: %w", part, errSpanFormat)
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, errSpanFormat)
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, errSpanFormat)
		}
		s, err := model.NewSpan(start, end)
		if err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, nil
}
