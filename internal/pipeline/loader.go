package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/annoteval/internal/cache"
	"github.com/ppiankov/annoteval/internal/flatfile"
	"github.com/ppiankov/annoteval/internal/model"
)

// Loader reads annotation files. Files ending in .json hold a JSON array of
// annotations; anything else is read as a pipe-delimited flat file.
type Loader struct {
	store   *cache.AnnotationStore // nil disables caching
	lenient bool
}

// NewLoader creates a loader
func NewLoader(store *cache.AnnotationStore, lenient bool) *Loader {
	return &Loader{store: store, lenient: lenient}
}

// Load reads and validates the annotations in path
func (l *Loader) Load(ctx context.Context, path string) ([]model.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	format, parse := "flat", l.parseFlat
	if l.lenient {
		format = "flat-lenient"
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format, parse = "json", parseJSON
	}

	anns, err := l.store.Load(format, content, parse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, a := range anns {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return anns, nil
}

func (l *Loader) parseFlat(content []byte) ([]model.Annotation, error) {
	r := flatfile.NewReader(bytes.NewReader(content))
	r.Lenient = l.lenient
	return r.ReadAll()
}

func parseJSON(content []byte) ([]model.Annotation, error) {
	var anns []model.Annotation
	if err := json.Unmarshal(content, &anns); err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}
	for i := range anns {
		if err := anns[i].Mention.Canonicalize(); err != nil {
			return nil, fmt.Errorf("annotation %s: %w", anns[i].ID, err)
		}
	}
	return anns, nil
}
