// Package config handles repository configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents repository configuration stored in
// .bibgest/config.yml.
type Config struct {
	// Model is the chat model used for summaries.
	Model string `yaml:"model,omitempty"`
	// SummaryStyle is the default prompt style (layman, technical,
	// executive, educational).
	SummaryStyle string `yaml:"summary_style,omitempty"`
	// Temperature is the sampling temperature for summaries.
	Temperature float64 `yaml:"temperature,omitempty"`
	// PDFMaxPages caps how many pages are read when extracting text
	// from a PDF. Zero means all pages.
	PDFMaxPages int `yaml:"pdf_max_pages,omitempty"`
}

const (
	BibgestDir = ".bibgest"
	ConfigFile = "config.yml"
	DBFile     = "papers.db"

	DefaultModel        = "gpt-4.1-mini"
	DefaultSummaryStyle = "layman"
	DefaultTemperature  = 0.7
)

// ValidStyles lists the supported summary style values.
var ValidStyles = []string{"layman", "technical", "executive", "educational"}

// BibgestPath returns the path to the .bibgest directory from a root path.
func BibgestPath(root string) string {
	return filepath.Join(root, BibgestDir)
}

// ConfigPath returns the path to config.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, BibgestDir, ConfigFile)
}

// DBPath returns the path to papers.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, BibgestDir, DBFile)
}

// IsRepository checks if the given path contains a bibgest repository.
func IsRepository(root string) bool {
	info, err := os.Stat(BibgestPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a bibgest
// repository. Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a bibgest repository (no .bibgest directory found)")
		}
		abs = parent
	}
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		Model:        DefaultModel,
		SummaryStyle: DefaultSummaryStyle,
		Temperature:  DefaultTemperature,
	}
}

// Load reads configuration from the repository at the given root.
// Missing fields fall back to defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SummaryStyle == "" {
		cfg.SummaryStyle = DefaultSummaryStyle
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	return cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateSummaryStyle checks that the style value is supported.
func ValidateSummaryStyle(style string) error {
	if style == "" {
		return nil // Empty defaults to layman
	}

	for _, valid := range ValidStyles {
		if style == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid summary_style: %s (valid: %v)", style, ValidStyles)
}
