package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirHonoursHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CUBA_HOME", dir)

	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), FilePath())
}

func TestSetThenLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("CUBA_HOME", dir)

	require.NoError(t, Set(KeyTemplatesDir, "/opt/templates"))
	_, err := os.Stat(FilePath())
	require.NoError(t, err)

	viper.Reset()
	require.NoError(t, Load())
	assert.Equal(t, "/opt/templates", TemplatesDir())
	assert.False(t, NonInteractive())
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CUBA_HOME", t.TempDir())
	t.Setenv("CUBA_NON_INTERACTIVE", "true")

	require.NoError(t, Load())
	assert.True(t, NonInteractive())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("CUBA_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("verbose: [unterminated\n"), 0644))

	err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
	assert.False(t, Verbose())
}

func TestMissingFileIsNotAnError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CUBA_HOME", t.TempDir())

	assert.NoError(t, Load())
	assert.Empty(t, GradleArgs())
}
