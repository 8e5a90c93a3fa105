package commands

import (
	"flag"
	"time"

	"github.com/nucleoia/ccv/internal/dashboard"
	"github.com/nucleoia/ccv/internal/organizer"
)

// OrganizeCmd runs only the lifecycle passes plus a dashboard refresh, for
// when the documents themselves are already current.
type OrganizeCmd struct{}

func (c *OrganizeCmd) Name() string { return "organize" }

func (c *OrganizeCmd) Description() string {
	return "Move inactive chats into Shorts/Archive and refresh the dashboard"
}

func (c *OrganizeCmd) Setup(fs *flag.FlagSet) {}

type organizeResult struct {
	MovedToShorts     int `json:"moved_to_shorts"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	Archived          int `json:"archived"`
	DashboardChats    int `json:"dashboard_chats"`
}

func (c *OrganizeCmd) Run(ctx *Context, args []string) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	org := organizer.New(cfg, organizer.SystemClock{})
	shortsStats := org.ManageShorts()
	archiveStats := org.ManageArchived()

	entries := dashboard.CollectEntries(cfg)
	total, err := dashboard.Generate(cfg, entries, time.Now())
	if err != nil {
		return err
	}

	out := NewOutputWriter(ctx.Output, ctx.Flags.JSONOutput)
	if out.IsJSON() {
		return out.WriteJSON(organizeResult{
			MovedToShorts:     shortsStats.Moved,
			DuplicatesRemoved: shortsStats.DuplicatesRemoved,
			Archived:          archiveStats.Archived,
			DashboardChats:    total,
		})
	}

	if shortsStats.Moved > 0 {
		out.PrintLine("Moved to %s: %d", cfg.Shorts.Folder, shortsStats.Moved)
	}
	if shortsStats.DuplicatesRemoved > 0 {
		out.PrintLine("Duplicates removed: %d", shortsStats.DuplicatesRemoved)
	}
	if archiveStats.Archived > 0 {
		out.PrintLine("Archived: %d", archiveStats.Archived)
	}
	if shortsStats.Moved+archiveStats.Archived == 0 {
		out.PrintLine("%s", dimStyle.Render("Nothing to organize."))
	}
	out.PrintLine("Dashboard: %d chats in %s", total, cfg.Output.IndexFileName)
	return nil
}
