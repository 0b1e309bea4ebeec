package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyNonInteractive = "non_interactive"
	KeyVerbose        = "verbose"
	KeyTemplatesDir   = "templates_dir"
	KeyGradleArgs     = "gradle.args"
	KeyGradleEnv      = "gradle.env"
)

// Dir returns the path to the config directory (~/.cuba-cli/).
// The <PREFIX>_HOME environment variable overrides the location.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cuba-cli/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment. A
// missing config file is not an error; an unreadable one is returned so the
// caller can warn, and the defaults stay in effect.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyNonInteractive, false)
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyGradleArgs, []string{})
	viper.SetDefault(KeyGradleEnv, []string{})

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// NonInteractive reports whether prompting is disabled by default.
func NonInteractive() bool {
	return viper.GetBool(KeyNonInteractive)
}

// Verbose reports whether debug logging is enabled by default.
func Verbose() bool {
	return viper.GetBool(KeyVerbose)
}

// TemplatesDir returns the template root override, or "" for the embedded templates.
func TemplatesDir() string {
	return viper.GetString(KeyTemplatesDir)
}

// GradleArgs returns extra arguments passed to the gradle wrapper by `build`.
func GradleArgs() []string {
	return viper.GetStringSlice(KeyGradleArgs)
}

// GradleEnv returns KEY=VALUE pairs added to the gradle wrapper's environment.
func GradleEnv() []string {
	return viper.GetStringSlice(KeyGradleEnv)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
