// Package organizer relocates inactive generated documents into the Shorts
// and Archived subfolders. "Last used" is the source log's mtime when the
// source can still be correlated, otherwise the document's own mtime.
package organizer

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nucleoia/ccv/internal/config"
	"github.com/nucleoia/ccv/internal/syncer"
)

// Clock supplies the current time, so tests can pin the inactivity cutoff
// instead of racing the filesystem clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ShortsStats reports one Shorts pass.
type ShortsStats struct {
	Moved             int
	DuplicatesRemoved int
}

// ArchiveStats reports one Archive pass.
type ArchiveStats struct {
	Archived int
}

// Organizer runs the lifecycle passes over the chats directory.
type Organizer struct {
	cfg   *config.Config
	clock Clock
}

func New(cfg *config.Config, clock Clock) *Organizer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Organizer{cfg: cfg, clock: clock}
}

// ManageShorts moves small inactive documents from the chats root into the
// Shorts subfolder, then collapses duplicate names there keeping the newest
// copy. A disabled Shorts config is a no-op.
func (o *Organizer) ManageShorts() ShortsStats {
	var stats ShortsStats
	if !o.cfg.Shorts.Enabled {
		return stats
	}

	shortsPath := o.cfg.ShortsPath()
	if err := os.MkdirAll(shortsPath, 0755); err != nil {
		log.Printf("warning: could not create %s: %v", shortsPath, err)
		return stats
	}

	maxSize := int64(o.cfg.Shorts.MaxSizeKB) * 1024
	cutoff := o.clock.Now().AddDate(0, 0, -o.cfg.InactiveDays)

	for _, htmlPath := range rootDocuments(o.cfg.ChatsPath()) {
		info, err := os.Stat(htmlPath)
		if err != nil || info.Size() >= maxSize {
			continue
		}
		if !o.lastUsed(htmlPath, info.ModTime()).Before(cutoff) {
			continue
		}
		name := filepath.Base(htmlPath)
		dest := filepath.Join(shortsPath, name)

		// A same-named copy from an earlier pass is a duplicate; keep
		// whichever has the later mtime.
		if destInfo, err := os.Stat(dest); err == nil {
			if !destInfo.ModTime().Before(info.ModTime()) {
				if err := os.Remove(htmlPath); err != nil {
					log.Printf("warning: could not move %s: %v", name, err)
					continue
				}
				stats.DuplicatesRemoved++
				continue
			}
			if err := os.Remove(dest); err != nil {
				log.Printf("warning: could not move %s: %v", name, err)
				continue
			}
			stats.DuplicatesRemoved++
		}

		if err := os.Rename(htmlPath, dest); err != nil {
			log.Printf("warning: could not move %s: %v", name, err)
			continue
		}
		o.fixDashboardLink(dest)
		stats.Moved++
	}
	return stats
}

// ManageArchived moves inactive documents of any size from the chats root
// into the Archived subfolder. When the destination name already exists the
// newer copy wins. A disabled Archive config is a no-op.
func (o *Organizer) ManageArchived() ArchiveStats {
	var stats ArchiveStats
	if !o.cfg.Archive.Enabled {
		return stats
	}

	archivePath := o.cfg.ArchivePath()
	if err := os.MkdirAll(archivePath, 0755); err != nil {
		log.Printf("warning: could not create %s: %v", archivePath, err)
		return stats
	}

	cutoff := o.clock.Now().AddDate(0, 0, -o.cfg.InactiveDays)

	for _, htmlPath := range rootDocuments(o.cfg.ChatsPath()) {
		info, err := os.Stat(htmlPath)
		if err != nil {
			continue
		}
		if !o.lastUsed(htmlPath, info.ModTime()).Before(cutoff) {
			continue
		}
		name := filepath.Base(htmlPath)
		dest := filepath.Join(archivePath, name)
		if destInfo, err := os.Stat(dest); err == nil {
			if destInfo.ModTime().Before(info.ModTime()) {
				if err := os.Remove(dest); err != nil {
					log.Printf("warning: could not archive %s: %v", name, err)
					continue
				}
			} else {
				if err := os.Remove(htmlPath); err != nil {
					log.Printf("warning: could not archive %s: %v", name, err)
					continue
				}
				stats.Archived++
				continue
			}
		}
		if err := os.Rename(htmlPath, dest); err != nil {
			log.Printf("warning: could not archive %s: %v", name, err)
			continue
		}
		o.fixDashboardLink(dest)
		stats.Archived++
	}
	return stats
}

// lastUsed resolves a document's last activity: the correlated source log's
// mtime, or the given fallback when no source matches anymore.
func (o *Organizer) lastUsed(htmlPath string, fallback time.Time) time.Time {
	src, ok := syncer.FindSourceForOutput(o.cfg.ProjectsPath(), filepath.Base(htmlPath))
	if !ok {
		return fallback
	}
	info, err := os.Stat(src)
	if err != nil {
		return fallback
	}
	return info.ModTime()
}

// fixDashboardLink rewrites the dashboard back link after a document moved
// one level deeper: href="../<index>" becomes href="../../<index>". A
// document without the old link is left untouched.
func (o *Organizer) fixDashboardLink(htmlPath string) {
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		log.Printf("warning: could not fix dashboard link in %s: %v", filepath.Base(htmlPath), err)
		return
	}
	oldHref := []byte(`href="../` + o.cfg.Output.IndexFileName + `"`)
	newHref := []byte(`href="../../` + o.cfg.Output.IndexFileName + `"`)
	if !bytes.Contains(data, oldHref) {
		return
	}
	data = bytes.ReplaceAll(data, oldHref, newHref)
	if err := os.WriteFile(htmlPath, data, 0644); err != nil {
		log.Printf("warning: could not fix dashboard link in %s: %v", filepath.Base(htmlPath), err)
	}
}

// rootDocuments lists the *.html files directly in dir, excluding the
// lifecycle subfolders.
func rootDocuments(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths
}
