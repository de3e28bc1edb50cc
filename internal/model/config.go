package model

import "time"

// Config is the complete annoteval configuration
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ScoringConfig selects the comparison strategy
type ScoringConfig struct {
	SpanComparator    string     `yaml:"span_comparator" mapstructure:"span_comparator"`       // strict, sloppy, shared-start, shared-end, shared-start-or-end
	MentionComparator string     `yaml:"mention_comparator" mapstructure:"mention_comparator"` // identical, synonym, none
	MaxDepth          int        `yaml:"max_depth" mapstructure:"max_depth"`                   // -1 compares the whole mention tree
	Unit              Unit       `yaml:"unit" mapstructure:"unit"`                             // annotation or entity-parts
	Synonyms          [][]string `yaml:"synonyms" mapstructure:"synonyms"`                     // Groups of interchangeable mention names
}

// InputConfig controls how annotation files are read
type InputConfig struct {
	Lenient bool `yaml:"lenient" mapstructure:"lenient"` // Skip malformed flat file lines with a warning
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // Eval files scored in parallel (batch)
	// Documents scored in parallel within one evaluation
	DocumentWorkers int `yaml:"document_workers" mapstructure:"document_workers"`
}

// CacheConfig controls caching of parsed annotation files
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls report contents
type OutputConfig struct {
	Verbose          bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeDocuments bool `yaml:"include_documents" mapstructure:"include_documents"`
	IncludeFindings  bool `yaml:"include_findings" mapstructure:"include_findings"` // List FP/FN annotations
}

// LogConfig controls the console logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// DefaultConfig returns the defaults: strict spans, identical mentions,
// unlimited depth, whole-annotation counting
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			SpanComparator:    "strict",
			MentionComparator: "identical",
			MaxDepth:          -1,
			Unit:              UnitAnnotation,
		},
		Concurrency: ConcurrencyConfig{
			Workers:         4,
			DocumentWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".annoteval-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeDocuments: true,
			IncludeFindings:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Settings returns the scoring settings recorded in reports
func (c *Config) Settings() Settings {
	return Settings{
		SpanComparator:    c.Scoring.SpanComparator,
		MentionComparator: c.Scoring.MentionComparator,
		MaxDepth:          c.Scoring.MaxDepth,
		Unit:              c.Scoring.Unit,
	}
}
