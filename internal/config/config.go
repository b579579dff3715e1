// Package config holds the settings for a conversion run.
//
// Settings come from three layers: built-in defaults, an optional
// typeshift.yaml in the source directory, and command-line overrides
// applied by the cli package on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one conversion run.
type Config struct {
	// SourceDir is the directory scanned for input files.
	SourceDir string `yaml:"source_dir,omitempty"`

	// Recursive enables descending into subdirectories. The default scans
	// only the top level of SourceDir.
	Recursive bool `yaml:"recursive,omitempty"`

	// Overwrite is the policy for pre-existing target files: "replace"
	// (the default, silent overwrite) or "skip".
	Overwrite string `yaml:"overwrite,omitempty"`

	// SourceExt and TargetExt override the default ".js" / ".ts" pair.
	// Target names are derived by replacing the first occurrence of
	// SourceExt in the file name with TargetExt.
	SourceExt string `yaml:"source_ext,omitempty"`
	TargetExt string `yaml:"target_ext,omitempty"`

	// Manifest is the path of the sqlite conversion manifest, relative to
	// SourceDir unless absolute. Empty disables manifest tracking.
	Manifest string `yaml:"manifest,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SourceDir: ".",
		Overwrite: OverwriteReplace,
		SourceExt: SourceFileExt,
		TargetExt: TargetFileExt,
	}
}

// Parse parses yaml configuration data. path is used in error messages only.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads ProjectFileName from dir if present, falling back to defaults.
// The configured SourceDir defaults to dir itself.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.SourceDir = dir
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if cfg.SourceDir == "" || cfg.SourceDir == "." {
		cfg.SourceDir = dir
	} else if !filepath.IsAbs(cfg.SourceDir) {
		cfg.SourceDir = filepath.Join(dir, cfg.SourceDir)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Overwrite {
	case "", OverwriteReplace, OverwriteSkip:
	default:
		return fmt.Errorf("overwrite must be %q or %q, got %q",
			OverwriteReplace, OverwriteSkip, c.Overwrite)
	}
	if c.Overwrite == "" {
		c.Overwrite = OverwriteReplace
	}
	if !strings.HasPrefix(c.SourceExt, ".") {
		return fmt.Errorf("source_ext must start with a dot, got %q", c.SourceExt)
	}
	if !strings.HasPrefix(c.TargetExt, ".") {
		return fmt.Errorf("target_ext must start with a dot, got %q", c.TargetExt)
	}
	if c.SourceExt == c.TargetExt {
		return fmt.Errorf("source_ext and target_ext are both %q", c.SourceExt)
	}
	return nil
}

// ManifestPath resolves the manifest location against SourceDir. Empty when
// manifest tracking is disabled.
func (c *Config) ManifestPath() string {
	if c.Manifest == "" {
		return ""
	}
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.SourceDir, c.Manifest)
}
