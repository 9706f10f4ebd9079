package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvColor, "")
	t.Setenv(EnvFormat, "")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(file, []byte(`{"Color": "never", "format": "pretty"}`), 0o644))

	cfg, err := Load(sub)
	require.NoError(t, err)
	assert.Equal(t, Config{Color: "never", Format: "pretty", Source: file}, cfg)

	t.Setenv(EnvFormat, "summary")
	cfg, err = Load(sub)
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "summary", cfg.Format)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, YAMLFileName)
	require.NoError(t, os.WriteFile(file, []byte("color: always\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{Color: "always", Format: "debug", Source: file}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvColor, "sometimes")
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid color "sometimes"`)

	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"format": 3}`), 0o644))
	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "3"`)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
	assert.NoError(t, Config{Color: "always", Format: "delta"}.Validate())
	assert.Error(t, Config{Color: "auto", Format: "json"}.Validate())
	assert.Error(t, Config{}.Validate())
}
