package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.DocsDir)
	assert.Contains(t, cfg.DBPath, ".solidcat")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"**/*.md"}, cfg.Loader.Include)
	assert.Equal(t, 300*time.Millisecond, cfg.Watcher.DebounceWindow)
	assert.Equal(t, 2, cfg.Worker.WorkerCount)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().DocsDir, cfg.DocsDir)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solidcat.yaml")
	content := `docs_dir: ./articles
log_level: debug
loader:
  include:
    - "principles/*.md"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./articles", cfg.DocsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"principles/*.md"}, cfg.Loader.Include)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NotEmpty(t, cfg.Watcher.IgnorePatterns)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solidcat.yaml")
	content := `docs_dir: ./articles
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("SOLIDCAT_DOCS_DIR", "/srv/catalog")
	t.Setenv("SOLIDCAT_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog", cfg.DocsDir)
	assert.Equal(t, "json", cfg.LogFormat)
	// Keys without an env override keep the file value.
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvAppliesWithoutFile(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(cwd) })

	t.Setenv("SOLIDCAT_DB_PATH", "/tmp/solidcat-test.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/solidcat-test.db", cfg.DBPath)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solidcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("docs_dir: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
