package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/annoteval/internal/model"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"run1", "run1"},
		{"system a:b", "system-a_b"},
		{"a/b\\c", "a_b_c"},
		{"", "report"},
		{"..", "report"},
		{strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	used := make(map[string]bool)
	got := []string{
		uniqueSlug(used, "eval"), uniqueSlug(used, "eval"), uniqueSlug(used, "other"), uniqueSlug(used, "eval"),
		// a file literally named like a generated suffix
		uniqueSlug(used, "a"), uniqueSlug(used, "a"), uniqueSlug(used, "a-2"),
	}
	want := []string{"eval", "eval-2", "other", "eval-3", "a", "a-2", "a-2-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if cfg.Scoring.SpanComparator != "strict" || cfg.Scoring.MaxDepth != -1 {
		t.Errorf("unexpected scoring defaults %+v", cfg.Scoring)
	}
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "scoring:\n  span_comparator: sloppy\n  synonyms:\n    - [protein, gene]\ncache:\n  memory_ttl: 5m\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANNOTEVAL_SCORING_MAX_DEPTH", "1")

	viper.Reset()
	cfgFile = path
	defer func() { cfgFile = "" }()
	initConfig()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Scoring.SpanComparator != "sloppy" {
		t.Errorf("expected sloppy from file, got %q", cfg.Scoring.SpanComparator)
	}
	if cfg.Scoring.MaxDepth != 1 {
		t.Errorf("expected depth 1 from environment, got %d", cfg.Scoring.MaxDepth)
	}
	if cfg.Scoring.MentionComparator != "identical" {
		t.Errorf("expected default mention comparator, got %q", cfg.Scoring.MentionComparator)
	}
	if len(cfg.Scoring.Synonyms) != 1 || len(cfg.Scoring.Synonyms[0]) != 2 {
		t.Errorf("unexpected synonyms %v", cfg.Scoring.Synonyms)
	}
	if cfg.Cache.MemoryTTL.Minutes() != 5 {
		t.Errorf("expected 5m memory ttl, got %v", cfg.Cache.MemoryTTL)
	}
}
