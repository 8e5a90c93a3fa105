package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	srcDir := t.TempDir()
	path := writeConfig(t, "source:\n  projects_path: "+srcDir+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, srcDir, cfg.ProjectsPath())
	assert.Equal(t, "CCV-Dashboard.html", cfg.Output.IndexFileName)
	assert.True(t, cfg.Agents.Include)
	assert.Equal(t, 3, cfg.Agents.MinSizeKB)
	assert.Equal(t, 5, cfg.InactiveDays)
	assert.True(t, cfg.Shorts.Enabled)
	assert.Equal(t, "Shorts", cfg.Shorts.Folder)
	assert.Equal(t, 40, cfg.Shorts.MaxSizeKB)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "Archived", cfg.Archive.Folder)
}

func TestLoad_ExplicitValuesOverrideDefaults(t *testing.T) {
	srcDir := t.TempDir()
	path := writeConfig(t, `source:
  projects_path: `+srcDir+`
output:
  folder: /tmp/my-chats
  index_filename: Index.html
agents:
  include: false
inactive_days: 14
shorts:
  enabled: false
archive:
  folder: Old
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Index.html", cfg.Output.IndexFileName)
	assert.False(t, cfg.Agents.Include)
	assert.Equal(t, 14, cfg.InactiveDays)
	assert.False(t, cfg.Shorts.Enabled)
	assert.Equal(t, "Old", cfg.Archive.Folder)
	assert.Equal(t, filepath.Join("/tmp/my-chats", "Chats"), cfg.ChatsPath())
	assert.Equal(t, filepath.Join("/tmp/my-chats", "Index.html"), cfg.DashboardPath())
}

func TestLoad_MissingSourceIsFatal(t *testing.T) {
	path := writeConfig(t, "output:\n  folder: out\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects_path")
}

func TestLoad_NonexistentSourceIsFatal(t *testing.T) {
	path := writeConfig(t, "source:\n  projects_path: /definitely/not/here\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoad_RelativeOutputAnchoredAtConfigDir(t *testing.T) {
	srcDir := t.TempDir()
	path := writeConfig(t, "source:\n  projects_path: "+srcDir+"\noutput:\n  folder: chats-out\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "chats-out"), cfg.OutputPath())
}

func TestFind_ExplicitPathWins(t *testing.T) {
	assert.Equal(t, "/some/where/conf.yaml", Find("/some/where/conf.yaml"))
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "source: [not a mapping\n")

	_, err := Load(path)
	assert.Error(t, err)
}
