package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/annoteval/internal/compare"
	"github.com/ppiankov/annoteval/internal/model"
)

// scoringFlags maps flag names to config keys. Defaults live in the config,
// so an unset flag never overrides a config file or environment value.
var scoringFlags = map[string]string{
	"span":             "scoring.span_comparator",
	"mention":          "scoring.mention_comparator",
	"depth":            "scoring.max_depth",
	"unit":             "scoring.unit",
	"lenient":          "input.lenient",
	"document-workers": "concurrency.document_workers",
}

func addScoringFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()
	cmd.Flags().String("span", defaults.Scoring.SpanComparator,
		"span comparator ("+strings.Join(compare.SpanComparatorNames(), ", ")+")")
	cmd.Flags().String("mention", defaults.Scoring.MentionComparator, "mention comparator (identical, synonym, none)")
	cmd.Flags().Int("depth", defaults.Scoring.MaxDepth, "max mention tree depth to compare (-1 for unlimited)")
	cmd.Flags().String("unit", string(defaults.Scoring.Unit), "counting unit (annotation, entity-parts)")
	cmd.Flags().Bool("lenient", defaults.Input.Lenient, "skip malformed flat file lines instead of failing")
	cmd.Flags().Int("document-workers", defaults.Concurrency.DocumentWorkers, "documents scored in parallel")
	cmd.Flags().Bool("no-cache", false, "disable the parsed annotation cache")
}

// bindScoringFlags binds the command's flags to config keys. Binding happens
// at run time because several commands share the same keys.
func bindScoringFlags(cmd *cobra.Command) error {
	for flag, key := range scoringFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// commandConfig loads the config and applies flags that have no config key
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}
