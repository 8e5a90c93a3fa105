// Package syncer keeps the generated document tree in step with the source
// logs: new logs get documents, changed logs get regenerated ones, unchanged
// logs are left alone (mtime comparison), and outputs whose source turned
// out to be snapshot-only are deleted.
package syncer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nucleoia/ccv/internal/config"
	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/debug"
	"github.com/nucleoia/ccv/internal/models"
	"github.com/nucleoia/ccv/internal/parser"
	"github.com/nucleoia/ccv/internal/processor"
	"github.com/nucleoia/ccv/internal/renderer"
)

// Result aggregates one synchronization pass. Errors buckets per-file
// failures by message so a hundred identical failures report as one line.
type Result struct {
	New     []string
	Updated []string
	Skipped int
	Errors  map[string]int
}

// Scanned returns the number of source files that were considered.
func (r *Result) Scanned() int {
	return len(r.New) + len(r.Updated) + r.Skipped
}

// Syncer scans the configured projects directory and generates documents
// into the chats directory.
type Syncer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Syncer {
	return &Syncer{cfg: cfg}
}

// Run performs one full synchronization pass. Per-file failures never abort
// the scan; only an unreadable source directory is an error.
func (s *Syncer) Run() (*Result, error) {
	if err := os.MkdirAll(s.cfg.ChatsPath(), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{Errors: make(map[string]int)}

	projects, err := os.ReadDir(s.cfg.ProjectsPath())
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		dir := filepath.Join(s.cfg.ProjectsPath(), project.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("warning: skipping project %s: %v", project.Name(), err)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			s.syncFile(filepath.Join(dir, f.Name()), result)
		}
	}
	return result, nil
}

// syncFile brings one source log's output up to date.
func (s *Syncer) syncFile(sourcePath string, result *Result) {
	fileName := filepath.Base(sourcePath)
	isAgent := IsAgentLog(fileName)

	if isAgent {
		if !s.cfg.Agents.Include {
			return
		}
		info, err := os.Stat(sourcePath)
		if err != nil {
			result.Errors[err.Error()]++
			return
		}
		if info.Size() < int64(s.cfg.Agents.MinSizeKB)*1024 {
			if debug.Enabled {
				log.Printf("debug: %s below agent size threshold, skipped", fileName)
			}
			return
		}
	}

	records, err := parser.ParseFile(sourcePath)
	if err != nil {
		result.Errors[err.Error()]++
		return
	}

	var agentSuffix, hashPrefix string
	if isAgent {
		hashPrefix = AgentID(fileName)
		agentSuffix = constants.AgentHTMLMarker + hashPrefix
	} else {
		hashPrefix = HashFromFileName(fileName)
	}

	if processor.IsSnapshotOnly(records) {
		// Self-heal: drop any output generated before this filter existed.
		if orphan, ok := FindExistingHTML(s.cfg.OutputPath(), hashPrefix, isAgent); ok {
			if err := os.Remove(orphan); err != nil {
				log.Printf("warning: could not remove orphan %s: %v", orphan, err)
			} else if debug.Enabled {
				log.Printf("debug: removed orphan output %s", orphan)
			}
		}
		return
	}

	displayName := hashPrefix
	if isAgent {
		displayName = agentSuffix
	}

	existing, hasExisting := FindExistingHTML(s.cfg.OutputPath(), hashPrefix, isAgent)
	if hasExisting {
		stale, err := needsUpdate(sourcePath, existing)
		if err != nil {
			result.Errors[err.Error()]++
			return
		}
		if !stale {
			result.Skipped++
			return
		}
		if err := os.Remove(existing); err != nil {
			result.Errors[err.Error()]++
			return
		}
		if err := s.generate(sourcePath, records, agentSuffix); err != nil {
			result.Errors[err.Error()]++
			return
		}
		result.Updated = append(result.Updated, displayName)
		return
	}

	if err := s.generate(sourcePath, records, agentSuffix); err != nil {
		result.Errors[err.Error()]++
		return
	}
	result.New = append(result.New, displayName)
}

// generate writes the document for one parsed source log into the chats
// directory, with the back link pointing one level up at the dashboard.
func (s *Syncer) generate(sourcePath string, records []models.LogRecord, agentSuffix string) error {
	name := renderer.OutputFileName(sourcePath, records)
	if agentSuffix != "" {
		name = renderer.AgentFileName(name, agentSuffix)
	}
	outputPath := filepath.Join(s.cfg.ChatsPath(), name)
	opts := renderer.Options{DashboardHref: "../" + s.cfg.Output.IndexFileName}
	if err := renderer.GenerateHTML(records, outputPath, opts); err != nil {
		return fmt.Errorf("generating %s: %w", name, err)
	}
	return nil
}

// needsUpdate reports whether the source log is newer than its document.
func needsUpdate(sourcePath, htmlPath string) (bool, error) {
	src, err := os.Stat(sourcePath)
	if err != nil {
		return false, err
	}
	out, err := os.Stat(htmlPath)
	if err != nil {
		return false, err
	}
	return src.ModTime().After(out.ModTime()), nil
}
