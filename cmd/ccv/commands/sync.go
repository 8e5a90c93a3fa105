package commands

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/nucleoia/ccv/internal/browser"
	"github.com/nucleoia/ccv/internal/dashboard"
	"github.com/nucleoia/ccv/internal/organizer"
	"github.com/nucleoia/ccv/internal/syncer"
)

// SyncCmd runs the full pipeline: document generation, lifecycle passes,
// and dashboard regeneration.
type SyncCmd struct {
	open bool
}

func (c *SyncCmd) Name() string { return "sync" }

func (c *SyncCmd) Description() string {
	return "Convert new/changed logs, organize inactive chats, rebuild the dashboard"
}

func (c *SyncCmd) Setup(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "Open the dashboard in the browser when done")
}

// syncResult is the machine-readable summary of one sync run.
type syncResult struct {
	New               []string       `json:"new"`
	Updated           []string       `json:"updated"`
	Unchanged         int            `json:"unchanged"`
	Errors            map[string]int `json:"errors,omitempty"`
	MovedToShorts     int            `json:"moved_to_shorts"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	Archived          int            `json:"archived"`
	DashboardChats    int            `json:"dashboard_chats"`
	DashboardPath     string         `json:"dashboard_path"`
}

func (c *SyncCmd) Run(ctx *Context, args []string) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	out := NewOutputWriter(ctx.Output, ctx.Flags.JSONOutput)
	if !out.IsJSON() {
		out.PrintLine("%s", bannerStyle.Render("Code Chat Viewer - Sync"))
		out.PrintLine("%s", dimStyle.Render("  Source:  "+cfg.ProjectsPath()))
		out.PrintLine("%s", dimStyle.Render("  Output:  "+cfg.OutputPath()))
		out.PrintLine("")
		out.PrintLine("  Scanning chats...")
	}

	result, err := syncer.New(cfg).Run()
	if err != nil {
		return err
	}

	if !out.IsJSON() {
		for _, name := range result.New {
			out.PrintLine("  %s %s", newStyle.Render("NEW:    "), name)
		}
		for _, name := range result.Updated {
			out.PrintLine("  %s %s", updatedStyle.Render("UPDATED:"), name)
		}
		out.PrintLine("  Done: %d files scanned.", result.Scanned())
	}

	org := organizer.New(cfg, organizer.SystemClock{})
	shortsStats := org.ManageShorts()
	archiveStats := org.ManageArchived()

	if !out.IsJSON() {
		out.PrintLine("  Generating dashboard...")
	}
	entries := dashboard.CollectEntries(cfg)
	total, err := dashboard.Generate(cfg, entries, time.Now())
	if err != nil {
		return err
	}

	if out.IsJSON() {
		return out.WriteJSON(syncResult{
			New:               result.New,
			Updated:           result.Updated,
			Unchanged:         result.Skipped,
			Errors:            result.Errors,
			MovedToShorts:     shortsStats.Moved,
			DuplicatesRemoved: shortsStats.DuplicatesRemoved,
			Archived:          archiveStats.Archived,
			DashboardChats:    total,
			DashboardPath:     cfg.DashboardPath(),
		})
	}

	var lines []string
	if len(result.New) > 0 {
		lines = append(lines, fmt.Sprintf("%s %3d", newStyle.Render("New:      "), len(result.New)))
	}
	if len(result.Updated) > 0 {
		lines = append(lines, fmt.Sprintf("%s %3d", updatedStyle.Render("Updated:  "), len(result.Updated)))
	}
	if result.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("%s %3d", dimStyle.Render("Unchanged:"), result.Skipped))
	}
	for msg, count := range result.Errors {
		lines = append(lines, fmt.Sprintf("%s %d x %s", errorStyle.Render("Error:    "), count, msg))
	}
	if shortsStats.Moved > 0 {
		lines = append(lines, fmt.Sprintf("Moved to %s: %3d", cfg.Shorts.Folder, shortsStats.Moved))
	}
	if shortsStats.DuplicatesRemoved > 0 {
		lines = append(lines, fmt.Sprintf("Duplicates removed: %d", shortsStats.DuplicatesRemoved))
	}
	if archiveStats.Archived > 0 {
		lines = append(lines, fmt.Sprintf("Archived: %3d", archiveStats.Archived))
	}
	lines = append(lines, fmt.Sprintf("Dashboard: %d chats in %s", total, cfg.Output.IndexFileName))
	if len(result.New)+len(result.Updated)+shortsStats.Moved+archiveStats.Archived == 0 {
		lines = append(lines, dimStyle.Render("Everything is up to date."))
	}
	out.PrintLine("\n%s", summaryBoxStyle.Render(strings.Join(lines, "\n")))

	if c.open {
		if err := browser.OpenInBrowser(cfg.DashboardPath()); err != nil {
			PrintError(ctx.ErrOutput, "could not open browser: %v", err)
		}
	} else {
		out.PrintLine("%s", dimStyle.Render("  Dashboard: "+cfg.DashboardPath()))
	}
	return nil
}
