package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/annoteval/internal/logger"
	"github.com/ppiankov/annoteval/internal/logger/console"
	"github.com/ppiankov/annoteval/internal/model"
)

const version = "annoteval v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "annoteval",
	Short: "Annoteval - precision/recall scoring for text annotations",
	Long: `Annoteval compares system annotations against a gold standard and
reports precision, recall and F-measure.

Annotations match when their spans agree under the chosen span comparator
and, unless disabled, their mention trees (class, slots and slot values)
agree under the chosen mention comparator.

Undefined ratios (nothing predicted, nothing expected) are reported as NaN.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("log.level")
		if verbose {
			level = "debug"
		}
		logger.Init(console.New(console.Params{Level: level}))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of annoteval.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.annoteval/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".annoteval"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// ANNOTEVAL_SCORING_SPAN_COMPARATOR and friends
	viper.SetEnvPrefix("ANNOTEVAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment overrides apply
// even when no config file sets them
func setDefaults(cfg *model.Config) {
	viper.SetDefault("scoring.span_comparator", cfg.Scoring.SpanComparator)
	viper.SetDefault("scoring.mention_comparator", cfg.Scoring.MentionComparator)
	viper.SetDefault("scoring.max_depth", cfg.Scoring.MaxDepth)
	viper.SetDefault("scoring.unit", string(cfg.Scoring.Unit))
	viper.SetDefault("scoring.synonyms", cfg.Scoring.Synonyms)
	viper.SetDefault("input.lenient", cfg.Input.Lenient)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("concurrency.document_workers", cfg.Concurrency.DocumentWorkers)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("output.include_documents", cfg.Output.IncludeDocuments)
	viper.SetDefault("output.include_findings", cfg.Output.IncludeFindings)
	viper.SetDefault("log.level", cfg.Log.Level)
}

// loadConfig merges defaults, config file, environment and bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
