package syncer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nucleoia/ccv/internal/constants"
)

// IsAgentLog reports whether a source file is an agent sub-task log,
// distinguished by its agent- name prefix.
func IsAgentLog(fileName string) bool {
	return strings.HasPrefix(filepath.Base(fileName), constants.AgentFilePrefix)
}

// AgentID extracts the 2-character agent identifier from an agent log name:
// "agent-ab12cd.jsonl" -> "ab".
func AgentID(fileName string) string {
	name := filepath.Base(fileName)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimPrefix(name, constants.AgentFilePrefix)
	if len(name) > constants.AgentIDLen {
		name = name[:constants.AgentIDLen]
	}
	return name
}

// HashFromFileName extracts the identifying hash prefix from a source or
// output filename. Agent names yield the start of the agent identifier;
// everything else yields the trailing space-separated token truncated to 8
// characters, looking one token back past an Agent-XX suffix. UUID-named
// session logs are a single token, so their prefix is the first 8 characters.
func HashFromFileName(fileName string) string {
	name := filepath.Base(fileName)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if strings.HasPrefix(name, constants.AgentFilePrefix) {
		return prefixOf(strings.TrimPrefix(name, constants.AgentFilePrefix), constants.HashPrefixLen)
	}

	parts := strings.Fields(name)
	if len(parts) > 0 {
		last := parts[len(parts)-1]
		if strings.HasPrefix(last, constants.AgentHTMLMarker) && len(parts) > 1 {
			last = parts[len(parts)-2]
		}
		return prefixOf(last, constants.HashPrefixLen)
	}

	first, _, _ := strings.Cut(name, "-")
	return prefixOf(first, constants.HashPrefixLen)
}

// FindExistingHTML locates a previously generated document for the given
// hash prefix anywhere under root, including the lifecycle subfolders. The
// agent flag must match: an agent log only correlates with Agent- outputs
// and a session log never does.
func FindExistingHTML(root, hashPrefix string, isAgent bool) (string, bool) {
	var found string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		stem := strings.TrimSuffix(d.Name(), ".html")
		if !strings.Contains(stem, hashPrefix) {
			return nil
		}
		if isAgent != strings.Contains(stem, constants.AgentHTMLMarker) {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	return found, found != ""
}

// FindSourceForOutput locates the source JSONL behind a generated document
// by scanning every project directory. Agent outputs match when the 2-char
// agent identifier appears in the output name; session outputs require hash
// prefix equality.
func FindSourceForOutput(projectsPath, htmlName string) (string, bool) {
	hashPrefix := HashFromFileName(htmlName)
	isAgent := strings.Contains(htmlName, constants.AgentHTMLMarker)

	projects, err := os.ReadDir(projectsPath)
	if err != nil {
		return "", false
	}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		dir := filepath.Join(projectsPath, project.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || !strings.HasSuffix(name, ".jsonl") {
				continue
			}
			if isAgent {
				if IsAgentLog(name) && strings.Contains(htmlName, AgentID(name)) {
					return filepath.Join(dir, name), true
				}
			} else if !IsAgentLog(name) && HashFromFileName(name) == hashPrefix {
				return filepath.Join(dir, name), true
			}
		}
	}
	return "", false
}

func prefixOf(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
