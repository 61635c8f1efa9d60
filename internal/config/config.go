// Package config provides hierarchical configuration management for tgit using koanf.
// Configuration is loaded with priority: overrides (command-line flags) > environment
// variables > explicit config file > project config (.tgit/config.yml) > user config
// (~/.config/tgit/config.yml) > defaults. YAML and JSON files are both accepted.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/tgit/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
// A double underscore separates nesting levels: TGIT_CHANGELOG__HASH_LENGTH.
const EnvPrefix = "TGIT_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceFile     ConfigSource = "file"
	SourceEnv      ConfigSource = "env"
	SourceOverride ConfigSource = "override"
)

// Configuration represents the tgit CLI configuration
type Configuration struct {
	Changelog ChangelogConfig `koanf:"changelog" yaml:"changelog"`
	Commit    CommitConfig    `koanf:"commit" yaml:"commit"`
}

// ChangelogConfig controls range resolution and rendering.
type ChangelogConfig struct {
	// HashLength is the minimum abbreviated hash length. Abbreviations grow
	// past it when a shorter prefix is ambiguous.
	HashLength int `koanf:"hash_length" yaml:"hash_length" validate:"min=4,max=40"`
	// SectionEmoji prefixes markdown section titles with their emoji shortcode.
	SectionEmoji bool `koanf:"section_emoji" yaml:"section_emoji"`
	// Remote names the remote used for hyperlinks.
	Remote string `koanf:"remote" yaml:"remote" validate:"required"`
	// Format is the default output format.
	Format string `koanf:"format" yaml:"format" validate:"oneof=markdown yaml terminal"`
}

// CommitConfig holds commit type settings.
type CommitConfig struct {
	// Types are extra commit types, rendered after the built-in sections in
	// the order given.
	Types []CommitType `koanf:"types" yaml:"types" validate:"dive"`
}

// CommitType declares one extra commit type.
type CommitType struct {
	Type  string `koanf:"type" yaml:"type" validate:"required,lowercase,alpha"`
	Emoji string `koanf:"emoji" yaml:"emoji,omitempty"`
	Title string `koanf:"title" yaml:"title,omitempty"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the directory whose .tgit/config.yml is read (default: cwd).
	ProjectDir string
	// ConfigFile is an explicit config file (--config). It must exist.
	ConfigFile string
	// Overrides are dotted key/value pairs applied last, validated against Keys.
	Overrides map[string]string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, warningWriter); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectDir, warningWriter); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file %s: %w", opts.ConfigFile, os.ErrNotExist)
		}
		if err := loadConfigFile(k, opts.ConfigFile, SourceFile); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	if err := applyOverrides(k, opts.Overrides); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config. YAML wins over JSON when both exist.
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer) error {
	dir, err := UserConfigDir()
	if err != nil {
		return nil
	}
	return loadFirstExisting(k, dir, SourceUser, warningWriter)
}

// loadProjectConfig loads .tgit/config.yml (or .json) under projectDir.
func loadProjectConfig(k *koanf.Koanf, projectDir string, warningWriter io.Writer) error {
	return loadFirstExisting(k, ProjectConfigDir(projectDir), SourceProject, warningWriter)
}

// loadFirstExisting loads the first config file found in dir, warning when
// a lower-priority candidate is shadowed by it.
func loadFirstExisting(k *koanf.Koanf, dir string, source ConfigSource, warningWriter io.Writer) error {
	var found []string
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return nil
	}
	for _, ignored := range found[1:] {
		fmt.Fprintf(warningWriter, "Warning: %s config %s ignored, using %s\n", source, ignored, found[0])
	}
	return loadConfigFile(k, found[0], source)
}

// loadConfigFile validates and loads one config file, picking the parser by extension.
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
	default:
		if err := CheckYAMLSyntax(path); err != nil {
			return fmt.Errorf("%s config: %w", source, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// applyOverrides sets flag-provided values. Keys are applied in sorted order
// so a failing key is reported deterministically.
func applyOverrides(k *koanf.Koanf, overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, err := ParseValue(key, overrides[key])
		if err != nil {
			return fmt.Errorf("invalid override %s: %w", key, err)
		}
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("applying override %s: %w", key, err)
		}
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := CheckValues(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: TGIT_CHANGELOG__HASH_LENGTH -> changelog.hash_length
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// TypeTable returns the built-in section table extended with the configured types.
func (c *Configuration) TypeTable() changelog.TypeTable {
	extra := make([]changelog.SectionType, len(c.Commit.Types))
	for i, t := range c.Commit.Types {
		extra[i] = changelog.SectionType{Key: t.Type, Title: t.Title, Emoji: t.Emoji}
	}
	return changelog.DefaultTypes().With(extra...)
}
