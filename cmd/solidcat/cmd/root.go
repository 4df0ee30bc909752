package cmd

import (
	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/internal/config"
	"github.com/solidcat/solidcat/internal/logger"
)

var (
	cfgFile   string
	docsDir   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "solidcat",
	Short: "Catalog tool for SOLID principle write-ups",
	Long: `solidcat organizes, validates and renders a catalog of SOLID
principle articles.

Each article is a markdown file carrying a principle code (SRP, OCP,
LSP, ISP, DIP) and four required sections: Definition, Rationale,
ViolationExample and FixedExample.

Commands:
  check    load, validate and print the catalog index
  index    refresh the sqlite catalog cache
  watch    re-validate documents as they change
  serve    expose catalog tools over JSON-RPC on stdio`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./solidcat.yaml)")
	rootCmd.PersistentFlags().StringVarP(&docsDir, "dir", "d", "", "catalog directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// loadConfig merges config file values with CLI flag overrides and
// initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if docsDir != "" {
		cfg.DocsDir = docsDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
