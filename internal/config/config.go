// Package config loads and validates the YAML configuration that drives the
// synchronizer, organizer, and dashboard. The loaded value is threaded
// explicitly through every component; nothing reads configuration from
// package state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nucleoia/ccv/internal/constants"
)

// FileName is the configuration file searched for when no explicit path is
// given.
const FileName = "config.yaml"

// Source locates the conversation logs to convert.
type Source struct {
	// ProjectsPath is the directory holding one subdirectory per project,
	// each containing *.jsonl session logs.
	ProjectsPath string `yaml:"projects_path"`
}

// Output controls where generated documents land.
type Output struct {
	Folder        string `yaml:"folder"`
	IndexFileName string `yaml:"index_filename"`
}

// Agents controls handling of agent-*.jsonl sub-task logs.
type Agents struct {
	Include   bool `yaml:"include"`
	MinSizeKB int  `yaml:"min_size_kb"`
}

// Shorts configures the small-inactive-chat subfolder.
type Shorts struct {
	Enabled   bool   `yaml:"enabled"`
	Folder    string `yaml:"folder"`
	MaxSizeKB int    `yaml:"max_size_kb"`
}

// Archive configures the old-inactive-chat subfolder.
type Archive struct {
	Enabled bool   `yaml:"enabled"`
	Folder  string `yaml:"folder"`
}

// Config is the full configuration surface.
type Config struct {
	Source       Source  `yaml:"source"`
	Output       Output  `yaml:"output"`
	Agents       Agents  `yaml:"agents"`
	InactiveDays int     `yaml:"inactive_days"`
	Shorts       Shorts  `yaml:"shorts"`
	Archive      Archive `yaml:"archive"`

	// resolved absolute paths, populated by Resolve
	sourcePath string
	outputPath string
}

// Default returns a Config with every optional field at its default. Only
// Source.ProjectsPath has no default; a config without it fails validation.
func Default() *Config {
	return &Config{
		Output: Output{
			Folder:        "CCV",
			IndexFileName: "CCV-Dashboard.html",
		},
		Agents: Agents{
			Include:   true,
			MinSizeKB: 3,
		},
		InactiveDays: 5,
		Shorts: Shorts{
			Enabled:   true,
			Folder:    "Shorts",
			MaxSizeKB: 40,
		},
		Archive: Archive{
			Enabled: true,
			Folder:  "Archived",
		},
	}
}

// Find returns the first existing configuration file among the explicit path
// (when non-empty), ~/.ccv/config.yaml, and ./config.yaml. An empty return
// value means no file was found.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".ccv", FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	return ""
}

// Load reads, decodes, and resolves the configuration at path. Absent fields
// keep their defaults; unknown fields are ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Resolve(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve expands and absolutizes the configured paths. A relative output
// folder is anchored at baseDir (the config file's directory). The source
// path must exist; a missing source is the one fatal configuration error.
func (c *Config) Resolve(baseDir string) error {
	src, err := expandHome(c.Source.ProjectsPath)
	if err != nil {
		return err
	}
	if src == "" {
		return fmt.Errorf("source.projects_path is not set\nAdd it to %s, e.g.:\n  source:\n    projects_path: ~/.claude/projects", FileName)
	}
	if abs, err := filepath.Abs(src); err == nil {
		src = abs
	}
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("source path does not exist: %s\nUpdate source.projects_path in %s", src, FileName)
	}
	c.sourcePath = src

	out, err := expandHome(c.Output.Folder)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(baseDir, out)
	}
	if abs, err := filepath.Abs(out); err == nil {
		out = abs
	}
	c.outputPath = out
	return nil
}

// ProjectsPath returns the resolved absolute source directory.
func (c *Config) ProjectsPath() string { return c.sourcePath }

// OutputPath returns the resolved absolute output root.
func (c *Config) OutputPath() string { return c.outputPath }

// ChatsPath returns the directory that holds generated chat documents.
func (c *Config) ChatsPath() string {
	return filepath.Join(c.outputPath, constants.ChatsDirName)
}

// DashboardPath returns the full path of the dashboard index file.
func (c *Config) DashboardPath() string {
	return filepath.Join(c.outputPath, c.Output.IndexFileName)
}

// ShortsPath returns the Shorts subdirectory under the chats directory.
func (c *Config) ShortsPath() string {
	return filepath.Join(c.ChatsPath(), c.Shorts.Folder)
}

// ArchivePath returns the Archived subdirectory under the chats directory.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.ChatsPath(), c.Archive.Folder)
}

func expandHome(p string) (string, error) {
	if p == "~" || len(p) >= 2 && p[0] == '~' && (p[1] == '/' || p[1] == filepath.Separator) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", p, err)
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
