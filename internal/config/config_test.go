package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "skills", cfg.SkillRoot)
	assert.Equal(t, 30*time.Second, cfg.ExecutionTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Analytics)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
skillRoot: /srv/skills
executionTimeout: 10s
logLevel: debug
analytics: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/skills", cfg.SkillRoot)
	assert.Equal(t, 10*time.Second, cfg.ExecutionTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Analytics)
	// Unset keys keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("skillRoot: /srv/skills\n"), 0644))

	t.Setenv("SKILLD_SKILL_ROOT", "/env/skills")
	t.Setenv("SKILLD_EXECUTION_TIMEOUT", "5s")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/env/skills", cfg.SkillRoot)
	assert.Equal(t, 5*time.Second, cfg.ExecutionTimeout)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("skillRoot: [unclosed\n"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
