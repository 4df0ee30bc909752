// Package config provides solidcat's configuration: struct defaults
// overlaid with an optional solidcat.yaml, then SOLIDCAT_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/index"
	"github.com/solidcat/solidcat/internal/watcher"
)

// ConfigFile is the name of the per-catalog config file looked up in
// the working directory.
const ConfigFile = "solidcat.yaml"

type Config struct {
	DocsDir   string `yaml:"docs_dir"`
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Loader  catalog.LoaderConfig `yaml:"loader"`
	Worker  index.WorkerConfig   `yaml:"worker"`
	Watcher watcher.Config       `yaml:"watcher"`
}

func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		DocsDir:   ".",
		DBPath:    filepath.Join(homeDir, ".solidcat", "catalog.db"),
		LogLevel:  "info",
		LogFormat: "text",
		Loader:    catalog.DefaultLoaderConfig(),
		Worker:    index.DefaultWorkerConfig(),
		Watcher:   watcher.DefaultConfig(),
	}
}

// Load builds the effective config. An explicit path must exist; the
// implicit solidcat.yaml is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays environment variables on top of file and default
// values. Env wins over the file.
func applyEnv(cfg *Config) {
	for env, target := range map[string]*string{
		"SOLIDCAT_DOCS_DIR":   &cfg.DocsDir,
		"SOLIDCAT_DB_PATH":    &cfg.DBPath,
		"SOLIDCAT_LOG_LEVEL":  &cfg.LogLevel,
		"SOLIDCAT_LOG_FORMAT": &cfg.LogFormat,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}
}
