// Package project handles the project side of skill management: the
// declared desired state in quill.yaml, the quill.lock.json lockfile that
// records what was actually materialized, and the per-skill installed
// metadata written next to each materialized SKILL.md.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the desired-state document at the project root.
const ConfigFileName = "quill.yaml"

// DefaultInstallDir is where skills are materialized unless overridden.
const DefaultInstallDir = ".quill/skills"

// SkillEntry declares one desired skill. Version is an optional semver
// constraint; Source optionally names a remote registry to fall back to.
type SkillEntry struct {
	Slug    string `yaml:"slug"`
	Version string `yaml:"version,omitempty"`
	Source  string `yaml:"source,omitempty"`
}

// Config is the in-memory representation of quill.yaml.
type Config struct {
	InstallDir string       `yaml:"install_dir,omitempty"`
	Registry   string       `yaml:"registry,omitempty"`
	Skills     []SkillEntry `yaml:"skills"`
}

// DefaultConfig returns the config written by quill init.
func DefaultConfig() *Config {
	return &Config{InstallDir: DefaultInstallDir}
}

// LoadConfig reads and parses quill.yaml under projectRoot. A project .env
// file, if present, is loaded first; QUILL_REGISTRY overrides the registry
// path from the document.
func LoadConfig(projectRoot string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	path := filepath.Join(projectRoot, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if cfg.InstallDir == "" {
		cfg.InstallDir = DefaultInstallDir
	}
	if env := os.Getenv("QUILL_REGISTRY"); env != "" {
		cfg.Registry = env
	}
	cfg.Registry = ExpandPath(cfg.Registry)
	return &cfg, nil
}

// ExpandPath expands a leading "~" to the user's home directory so registry
// paths in quill.yaml and .env can be written portably.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}

// SaveConfig marshals cfg and writes it to quill.yaml under projectRoot.
func SaveConfig(projectRoot string, cfg *Config) error {
	path := filepath.Join(projectRoot, ConfigFileName)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// InstallPath returns the absolute install directory for projectRoot.
func (c *Config) InstallPath(projectRoot string) string {
	if filepath.IsAbs(c.InstallDir) {
		return c.InstallDir
	}
	return filepath.Join(projectRoot, c.InstallDir)
}

// FindSkill returns the declared entry for slug, or nil.
func (c *Config) FindSkill(slug string) *SkillEntry {
	for i := range c.Skills {
		if c.Skills[i].Slug == slug {
			return &c.Skills[i]
		}
	}
	return nil
}

// AddSkill appends a declared skill. Declaring the same slug twice is an
// error.
func (c *Config) AddSkill(entry SkillEntry) error {
	if c.FindSkill(entry.Slug) != nil {
		return fmt.Errorf("skill %q is already declared in %s", entry.Slug, ConfigFileName)
	}
	c.Skills = append(c.Skills, entry)
	return nil
}

// RemoveSkill drops the declared entry for slug, reporting whether it was
// present.
func (c *Config) RemoveSkill(slug string) bool {
	for i := range c.Skills {
		if c.Skills[i].Slug == slug {
			c.Skills = append(c.Skills[:i], c.Skills[i+1:]...)
			return true
		}
	}
	return false
}
