package cache

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/model"
)

// AnnotationStore caches parsed annotation sets by source content
type AnnotationStore struct {
	cache Cache
}

// NewAnnotationStore wraps a cache. A nil cache disables caching.
func NewAnnotationStore(c Cache) *AnnotationStore {
	return &AnnotationStore{cache: c}
}

// Load returns the annotations parsed from content, calling parse on a miss
// and caching its result. format names the parser so that the same bytes
// read two ways are cached apart. Entries that fail to decode are misses.
func (s *AnnotationStore) Load(format string, content []byte, parse func([]byte) ([]model.Annotation, error)) ([]model.Annotation, error) {
	if s == nil || s.cache == nil {
		return parse(content)
	}

	key := ContentKey(format, content)
	if data, ok := s.cache.Get(key); ok {
		var anns []model.Annotation
		if err := json.Unmarshal(data, &anns); err == nil {
			logger.Debug("annotation cache hit", "key", key, "annotations", len(anns))
			return anns, nil
		}
		logger.Warn("discarding unreadable cache entry", "key", key)
		_ = s.cache.Delete(key)
	}

	anns, err := parse(content)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(anns)
	if err != nil {
		return nil, fmt.Errorf("encode annotations for cache: %w", err)
	}
	if err := s.cache.Set(key, data, 0); err != nil {
		logger.Warn("failed to cache annotations", "key", key, "err", err)
	}
	return anns, nil
}
