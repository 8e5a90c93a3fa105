package organizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucleoia/ccv/internal/config"
)

// fixedClock pins "now" so inactivity cutoffs are deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func setupConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Source.ProjectsPath = t.TempDir()
	cfg.Output.Folder = t.TempDir()
	require.NoError(t, cfg.Resolve(cfg.Output.Folder))
	require.NoError(t, os.MkdirAll(cfg.ChatsPath(), 0755))
	return cfg
}

// writeDoc places a generated-looking document in the chats root with the
// given age relative to now.
func writeDoc(t *testing.T, cfg *config.Config, name string, size int, age time.Duration, now time.Time) string {
	t.Helper()
	content := `<html><a href="../` + cfg.Output.IndexFileName + `">back</a>` + strings.Repeat("x", size) + `</html>`
	path := filepath.Join(cfg.ChatsPath(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	mtime := now.Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestManageShorts_MovesSmallInactiveChat(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 100, 10*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Equal(t, 1, stats.Moved)

	moved := filepath.Join(cfg.ShortsPath(), "Chat 2024-01-01 10-00 deadbeef.html")
	require.FileExists(t, moved)

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `href="../../`+cfg.Output.IndexFileName+`"`)
	assert.NotContains(t, string(data), `href="../`+cfg.Output.IndexFileName+`"`)
}

func TestManageShorts_RecentChatStays(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	path := writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 100, 24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, path)
}

func TestManageShorts_LargeChatStays(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	path := writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 50*1024, 10*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, path)
}

func TestManageShorts_DisabledIsNoOp(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	cfg.Shorts.Enabled = false
	path := writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 100, 10*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, path)
	assert.NoDirExists(t, cfg.ShortsPath())
}

func TestManageShorts_DuplicateKeepsNewest(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	name := "Chat 2024-01-01 10-00 deadbeef.html"

	// An older copy from a previous pass already sits in Shorts.
	require.NoError(t, os.MkdirAll(cfg.ShortsPath(), 0755))
	oldCopy := filepath.Join(cfg.ShortsPath(), name)
	require.NoError(t, os.WriteFile(oldCopy, []byte("old copy"), 0644))
	oldTime := now.Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldCopy, oldTime, oldTime))

	writeDoc(t, cfg, name, 100, 10*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, 1, stats.DuplicatesRemoved)

	// Exactly one file remains and it is the newer copy.
	entries, err := os.ReadDir(cfg.ShortsPath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(cfg.ShortsPath(), name))
	require.NoError(t, err)
	assert.NotEqual(t, "old copy", string(data))
}

func TestManageShorts_NewerDuplicateInShortsWins(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	name := "Chat 2024-01-01 10-00 deadbeef.html"

	require.NoError(t, os.MkdirAll(cfg.ShortsPath(), 0755))
	newCopy := filepath.Join(cfg.ShortsPath(), name)
	require.NoError(t, os.WriteFile(newCopy, []byte("newer copy"), 0644))
	newTime := now.Add(-6 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(newCopy, newTime, newTime))

	writeDoc(t, cfg, name, 100, 20*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Zero(t, stats.Moved)
	assert.Equal(t, 1, stats.DuplicatesRemoved)

	data, err := os.ReadFile(newCopy)
	require.NoError(t, err)
	assert.Equal(t, "newer copy", string(data))
	assert.NoFileExists(t, filepath.Join(cfg.ChatsPath(), name))
}

func TestManageArchived_MovesInactiveChatOfAnySize(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 50*1024, 10*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageArchived()
	assert.Equal(t, 1, stats.Archived)

	moved := filepath.Join(cfg.ArchivePath(), "Chat 2024-01-01 10-00 deadbeef.html")
	require.FileExists(t, moved)

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `href="../../`+cfg.Output.IndexFileName+`"`)
}

func TestManageArchived_ExistingNewerDestinationWins(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	name := "Chat 2024-01-01 10-00 deadbeef.html"

	require.NoError(t, os.MkdirAll(cfg.ArchivePath(), 0755))
	dest := filepath.Join(cfg.ArchivePath(), name)
	require.NoError(t, os.WriteFile(dest, []byte("archived newer"), 0644))
	destTime := now.Add(-6 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(dest, destTime, destTime))

	writeDoc(t, cfg, name, 100, 20*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageArchived()
	assert.Equal(t, 1, stats.Archived)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "archived newer", string(data))
	assert.NoFileExists(t, filepath.Join(cfg.ChatsPath(), name))
}

func TestManageArchived_DisabledIsNoOp(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)
	cfg.Archive.Enabled = false
	path := writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 100, 20*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageArchived()
	assert.Zero(t, stats.Archived)
	assert.FileExists(t, path)
}

func TestLastUsed_SourceMtimeOverridesDocumentMtime(t *testing.T) {
	now := time.Now()
	cfg := setupConfig(t)

	// The document looks old but its source was touched yesterday.
	projectDir := filepath.Join(cfg.ProjectsPath(), "-home-dev-app")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	src := filepath.Join(projectDir, "deadbeef-abcd-ef00-1111-222233334444.jsonl")
	require.NoError(t, os.WriteFile(src, []byte("{}\n"), 0644))
	recent := now.Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(src, recent, recent))

	path := writeDoc(t, cfg, "Chat 2024-01-01 10-00 deadbeef.html", 100, 30*24*time.Hour, now)

	stats := New(cfg, fixedClock{now}).ManageShorts()
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, path)
}
