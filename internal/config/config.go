package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRepositoryURL is the Google Fonts repository mirrored by default.
const DefaultRepositoryURL = "https://github.com/google/fonts.git"

// License category directory names at the repository root.
const (
	CategoryApache = "apache"
	CategoryOFL    = "ofl"
	CategoryUFL    = "ufl"
)

// Licenses selects which license categories are scanned.
type Licenses struct {
	Apache bool `yaml:"apache"`
	OFL    bool `yaml:"ofl"`
	UFL    bool `yaml:"ufl"`
}

// Config is built once at startup and handed to the orchestrator and backends.
type Config struct {
	RepositoryURL string   `yaml:"repository_url"`
	RepositoryDir string   `yaml:"repository_dir"` // empty means "fonts" next to the executable
	InstallDir    string   `yaml:"install_dir"`    // empty means the backend's OS font directory
	Licenses      Licenses `yaml:"licenses"`
	CloneDepth    int      `yaml:"clone_depth"`

	SkipSync    bool `yaml:"skip_sync"`
	InstallDeps bool `yaml:"install_dependencies"`
	Unattended  bool `yaml:"unattended"`
	FailOnError bool `yaml:"fail_on_error"`
	Debug       bool `yaml:"debug"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		RepositoryURL: DefaultRepositoryURL,
		Licenses:      Licenses{Apache: true, OFL: true, UFL: true},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values that can never work.
func (c Config) Validate() error {
	if c.RepositoryURL == "" && !c.SkipSync {
		return errors.New("repository_url must be set unless sync is skipped")
	}
	if c.CloneDepth < 0 {
		return fmt.Errorf("clone_depth must not be negative, got %d", c.CloneDepth)
	}
	return nil
}

// Categories returns the selected category directory names in scan order.
func (c Config) Categories() []string {
	var categories []string
	if c.Licenses.Apache {
		categories = append(categories, CategoryApache)
	}
	if c.Licenses.OFL {
		categories = append(categories, CategoryOFL)
	}
	if c.Licenses.UFL {
		categories = append(categories, CategoryUFL)
	}
	return categories
}

// ResolveRepositoryDir returns the repository directory and whether it was
// given explicitly.
func (c Config) ResolveRepositoryDir() (string, bool, error) {
	if c.RepositoryDir != "" {
		return c.RepositoryDir, true, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", false, fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "fonts"), false, nil
}
