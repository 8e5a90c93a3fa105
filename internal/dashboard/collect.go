// Package dashboard builds the aggregate index over all generated chat
// documents: metadata collection from output filenames, per-project session
// indexes, and the source logs themselves, plus the HTML rendering of the
// sortable dashboard table.
package dashboard

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nucleoia/ccv/internal/config"
	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
	"github.com/nucleoia/ccv/internal/parser"
	"github.com/nucleoia/ccv/internal/processor"
	"github.com/nucleoia/ccv/internal/syncer"
)

const firstPromptMaxLen = 100

var chatFileRe = regexp.MustCompile(`^Chat (\d{4}-\d{2}-\d{2}) (\d{2}-\d{2})\s+(\S+)`)

// ParseHTMLFileName extracts the creation time and hash prefix from a
// generated document name ("Chat YYYY-MM-DD HH-MM <hash>.html"). The zero
// time with ok=false means the name does not follow the scheme; the hash is
// derived by the generic prefix rules instead.
func ParseHTMLFileName(name string) (time.Time, string, bool) {
	if m := chatFileRe.FindStringSubmatch(name); m != nil {
		clock := strings.ReplaceAll(m[2], "-", ":")
		t, err := time.ParseInLocation("2006-01-02 15:04", m[1]+" "+clock, time.Local)
		if err == nil {
			hash, _, _ := strings.Cut(m[3], ".")
			if len(hash) > constants.HashPrefixLen {
				hash = hash[:constants.HashPrefixLen]
			}
			return t, hash, true
		}
	}
	return time.Time{}, syncer.HashFromFileName(name), false
}

// CategoryFor derives the lifecycle category from a document's location
// under the output root: chats root is Active, the configured subfolders are
// Short and Archived.
func CategoryFor(htmlPath string, cfg *config.Config) string {
	rel, err := filepath.Rel(cfg.OutputPath(), htmlPath)
	if err != nil {
		return models.CategoryActive
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 2 {
		switch parts[1] {
		case cfg.Archive.Folder:
			return models.CategoryArchived
		case cfg.Shorts.Folder:
			return models.CategoryShort
		}
	}
	return models.CategoryActive
}

// FormatProjectName turns an encoded project directory name like
// "C--Users-john-projects-myapp" or "-home-john-projects-myapp" into the
// display path "projects/myapp".
func FormatProjectName(raw string) string {
	if raw == "" {
		return "Unknown"
	}
	name := filepath.Base(raw)
	parts := strings.Split(name, "-")
	for i, part := range parts {
		low := strings.ToLower(part)
		if (low == "users" || low == "home") && i+1 < len(parts) {
			var meaningful []string
			for _, p := range parts[i+2:] {
				if p != "" {
					meaningful = append(meaningful, p)
				}
			}
			if len(meaningful) > 0 {
				return strings.Join(meaningful, "/")
			}
			break
		}
	}
	return name
}

// BuildSessionsIndex aggregates every per-project sessions-index.json into
// one map keyed by the first 8 characters of the session identifier.
// Unreadable index files are skipped, as are entries whose session
// identifier is not a valid UUID; keying a corrupt identifier by prefix
// would attach its metadata to an unrelated chat.
func BuildSessionsIndex(projectsPath string) map[string]models.SessionIndexEntry {
	index := make(map[string]models.SessionIndexEntry)
	projects, err := os.ReadDir(projectsPath)
	if err != nil {
		return index
	}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(projectsPath, project.Name(), constants.SessionsIndexFileName))
		if err != nil {
			continue
		}
		var file struct {
			Entries []models.SessionIndexEntry `json:"entries"`
		}
		if err := json.Unmarshal(data, &file); err != nil {
			continue
		}
		for _, entry := range file.Entries {
			if uuid.Validate(entry.SessionID) != nil {
				continue
			}
			index[entry.SessionID[:constants.HashPrefixLen]] = entry
		}
	}
	return index
}

// ExtractJSONLMetadata reads enrichment data straight from a source log:
// the real user message count (tool results and compaction summaries do not
// count), the first prompt, working directory, git branch, and any custom
// title set by renaming the session.
func ExtractJSONLMetadata(path string) models.SourceMetadata {
	var meta models.SourceMetadata
	records, err := parser.ParseFile(path)
	if err != nil {
		return meta
	}
	for _, rec := range records {
		if rec.Type == constants.TypeCustomTitle {
			meta.CustomTitle = rec.CustomTitle
			continue
		}
		if rec.Type != constants.TypeUser || rec.IsCompactSummary {
			continue
		}
		if rec.Message == nil || processor.HasToolResult(rec.Message.Content) {
			continue
		}
		meta.Messages++
		if meta.Messages == 1 {
			meta.CWD = rec.CWD
			meta.GitBranch = rec.GitBranch
			meta.FirstPrompt = firstPrompt(rec.Message.Content)
		}
	}
	return meta
}

func firstPrompt(content models.MessageContent) string {
	if !content.IsList {
		return truncateRunes(content.Text, firstPromptMaxLen)
	}
	for _, b := range content.Blocks {
		if b.Type == constants.BlockText {
			return truncateRunes(b.Text, firstPromptMaxLen)
		}
	}
	return ""
}

// findProjectForHash returns the display name of the project directory
// whose logs include the given hash prefix.
func findProjectForHash(projectsPath, hashPrefix string) string {
	projects, err := os.ReadDir(projectsPath)
	if err != nil {
		return ""
	}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(projectsPath, project.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if strings.HasPrefix(f.Name(), hashPrefix) && strings.HasSuffix(f.Name(), ".jsonl") {
				return FormatProjectName(project.Name())
			}
		}
	}
	return ""
}

// CollectEntries walks the output tree and assembles one dashboard entry
// per generated document, deduplicated by hash prefix and agent status,
// newest activity first.
func CollectEntries(cfg *config.Config) []models.DashboardEntry {
	sessionsMeta := BuildSessionsIndex(cfg.ProjectsPath())

	var entries []models.DashboardEntry
	seen := make(map[string]bool)

	filepath.WalkDir(cfg.OutputPath(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		if d.Name() == cfg.Output.IndexFileName {
			return nil
		}

		created, hashPrefix, hasDate := ParseHTMLFileName(d.Name())
		isAgent := strings.Contains(d.Name(), constants.AgentHTMLMarker)

		key := hashPrefix + "_main"
		if isAgent {
			key = hashPrefix + "_Agent"
		}
		if seen[key] {
			return nil
		}
		seen[key] = true

		info, err := d.Info()
		if err != nil {
			return nil
		}

		entry := models.DashboardEntry{
			SessionID: hashPrefix,
			Category:  CategoryFor(path, cfg),
			HTMLSize:  info.Size(),
		}
		if rel, err := filepath.Rel(cfg.OutputPath(), path); err == nil {
			entry.HTMLLink = filepath.ToSlash(rel)
		} else {
			entry.HTMLLink = d.Name()
		}

		sourcePath, hasSource := syncer.FindSourceForOutput(cfg.ProjectsPath(), d.Name())

		if meta, ok := sessionsMeta[hashPrefix]; ok {
			enrichFromIndex(&entry, meta, sourcePath, hasSource, created, hasDate)
		} else {
			enrichFromSource(&entry, cfg, d.Name(), isAgent, sourcePath, hasSource, created, hasDate)
		}

		entries = append(entries, entry)
		return nil
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModifiedSort > entries[j].ModifiedSort
	})
	return entries
}

// enrichFromIndex fills an entry from its sessions-index record, with the
// source log overriding stale message counts, titles, and activity stamps.
func enrichFromIndex(entry *models.DashboardEntry, meta models.SessionIndexEntry, sourcePath string, hasSource bool, created time.Time, hasDate bool) {
	entry.Name = meta.CustomTitle
	if entry.Name == "" {
		entry.Name = meta.Summary
	}
	if entry.Name == "" {
		entry.Name = "Untitled"
	}
	entry.Project = FormatProjectName(meta.ProjectPath)
	entry.ProjectFull = meta.ProjectPath
	entry.Branch = meta.GitBranch
	entry.FirstPrompt = truncateRunes(meta.FirstPrompt, firstPromptMaxLen)
	entry.Summary = meta.Summary
	entry.Messages = meta.MessageCount

	if hasSource {
		srcMeta := ExtractJSONLMetadata(sourcePath)
		if srcMeta.Messages > 0 {
			entry.Messages = srcMeta.Messages
		}
		if meta.CustomTitle == "" && srcMeta.CustomTitle != "" {
			entry.Name = srcMeta.CustomTitle
		}
	}

	if t, err := time.Parse(time.RFC3339, meta.Created); err == nil {
		entry.Created = t.Local().Format(constants.DisplayTimeFormat)
		entry.CreatedSort = float64(t.Unix())
	} else if hasDate {
		entry.Created = created.Format(constants.DisplayTimeFormat)
		entry.CreatedSort = float64(created.Unix())
	} else {
		entry.Created = "N/A"
	}

	if t, err := time.Parse(time.RFC3339, meta.Modified); err == nil {
		entry.Modified = t.Local().Format(constants.DisplayTimeFormat)
		entry.ModifiedSort = float64(t.Unix())
	}

	// The sessions index lags behind live sessions; the source mtime is
	// authoritative.
	if hasSource {
		if info, err := os.Stat(sourcePath); err == nil {
			mtime := info.ModTime()
			if float64(mtime.Unix()) > entry.ModifiedSort {
				entry.Modified = mtime.Format(constants.DisplayTimeFormat)
				entry.ModifiedSort = float64(mtime.Unix())
			}
		}
	} else if entry.ModifiedSort == 0 {
		entry.Modified = "N/A"
	}
}

// enrichFromSource fills an entry for a document with no sessions-index
// record, using only the filename and the source log.
func enrichFromSource(entry *models.DashboardEntry, cfg *config.Config, htmlName string, isAgent bool, sourcePath string, hasSource bool, created time.Time, hasDate bool) {
	entry.Name = strings.TrimSuffix(htmlName, ".html")
	if isAgent {
		entry.Name = "[Agent] " + entry.Name
	}

	if hasSource {
		srcMeta := ExtractJSONLMetadata(sourcePath)
		entry.Messages = srcMeta.Messages
		entry.Branch = srcMeta.GitBranch
		entry.FirstPrompt = srcMeta.FirstPrompt
		if srcMeta.CustomTitle != "" {
			entry.Name = srcMeta.CustomTitle
		}
		if srcMeta.CWD != "" {
			entry.Project = FormatProjectName(srcMeta.CWD)
			entry.ProjectFull = srcMeta.CWD
		} else {
			entry.Project = findProjectForHash(cfg.ProjectsPath(), entry.SessionID)
			entry.ProjectFull = entry.Project
		}
	} else {
		entry.Project = findProjectForHash(cfg.ProjectsPath(), entry.SessionID)
		entry.ProjectFull = entry.Project
	}

	if hasDate {
		entry.Created = created.Format(constants.DisplayTimeFormat)
		entry.CreatedSort = float64(created.Unix())
	} else {
		entry.Created = "N/A"
	}

	if hasSource {
		if info, err := os.Stat(sourcePath); err == nil {
			entry.Modified = info.ModTime().Format(constants.DisplayTimeFormat)
			entry.ModifiedSort = float64(info.ModTime().Unix())
			return
		}
	}
	entry.Modified = entry.Created
	entry.ModifiedSort = entry.CreatedSort
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
