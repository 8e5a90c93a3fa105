package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	"github.com/nucleoia/ccv/internal/config"
	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

const (
	nameDisplayLen   = 60
	uuidDisplayLen   = 12
	promptDisplayLen = 40
)

// row is the display form of one dashboard entry.
type row struct {
	Name         string
	NameTitle    string
	HTMLLink     string
	Project      string
	ProjectFull  string
	Category     string
	CatClass     string
	Created      string
	Modified     string
	Messages     int
	UUID         string
	Branch       string
	SizeKB       int64
	FirstPrompt  string
	PromptShort  string
	ModifiedSort string
	CreatedSort  string
}

// pageData is the template context for the dashboard document.
type pageData struct {
	IconData      string
	FaviconData   string
	StatsLine     string
	Generated     string
	ShortsOn      bool
	ArchiveOn     bool
	InactiveDays  int
	ShortsFolder  string
	ShortsMaxKB   int
	ArchiveFolder string
	Rows          []row
}

// Generate writes the dashboard index over the given entries and returns
// the number of rows it contains.
func Generate(cfg *config.Config, entries []models.DashboardEntry, now time.Time) (int, error) {
	data := pageData{
		IconData:      iconBase64,
		FaviconData:   faviconBase64,
		Generated:     now.Format(constants.DisplayTimeFormat),
		ShortsOn:      cfg.Shorts.Enabled,
		ArchiveOn:     cfg.Archive.Enabled,
		InactiveDays:  cfg.InactiveDays,
		ShortsFolder:  cfg.Shorts.Folder,
		ShortsMaxKB:   cfg.Shorts.MaxSizeKB,
		ArchiveFolder: cfg.Archive.Folder,
	}

	var active, short, archived int
	for _, e := range entries {
		switch e.Category {
		case models.CategoryActive:
			active++
		case models.CategoryShort:
			short++
		case models.CategoryArchived:
			archived++
		}
		data.Rows = append(data.Rows, entryRow(e))
	}

	data.StatsLine = fmt.Sprintf("Total: %d chats | Active: %d", len(entries), active)
	if cfg.Shorts.Enabled {
		data.StatsLine += fmt.Sprintf(" | Shorts: %d", short)
	}
	if cfg.Archive.Enabled {
		data.StatsLine += fmt.Sprintf(" | Archived: %d", archived)
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("rendering dashboard: %w", err)
	}
	if err := os.WriteFile(cfg.DashboardPath(), buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("writing dashboard: %w", err)
	}
	return len(entries), nil
}

func entryRow(e models.DashboardEntry) row {
	r := row{
		Name:         truncateRunes(e.Name, nameDisplayLen),
		NameTitle:    e.Summary,
		HTMLLink:     e.HTMLLink,
		Project:      e.Project,
		ProjectFull:  e.ProjectFull,
		Category:     e.Category,
		CatClass:     catClass(e.Category),
		Created:      e.Created,
		Modified:     e.Modified,
		Messages:     e.Messages,
		UUID:         truncateRunes(e.SessionID, uuidDisplayLen) + "...",
		Branch:       e.Branch,
		SizeKB:       e.HTMLSize / 1024,
		FirstPrompt:  e.FirstPrompt,
		PromptShort:  truncateRunes(e.FirstPrompt, promptDisplayLen),
		ModifiedSort: strconv.FormatFloat(e.ModifiedSort, 'f', 0, 64),
		CreatedSort:  strconv.FormatFloat(e.CreatedSort, 'f', 0, 64),
	}
	if len([]rune(e.Name)) > nameDisplayLen {
		r.Name += "..."
	}
	if len([]rune(e.FirstPrompt)) > promptDisplayLen {
		r.PromptShort += "..."
	}
	return r
}

func catClass(category string) string {
	switch category {
	case models.CategoryActive:
		return "active"
	case models.CategoryShort:
		return "short"
	case models.CategoryArchived:
		return "archived"
	default:
		return "no-html"
	}
}
