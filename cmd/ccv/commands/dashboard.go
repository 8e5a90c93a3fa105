package commands

import (
	"flag"
	"time"

	"github.com/nucleoia/ccv/internal/browser"
	"github.com/nucleoia/ccv/internal/dashboard"
)

// DashboardCmd rebuilds only the dashboard index.
type DashboardCmd struct {
	open bool
}

func (c *DashboardCmd) Name() string { return "dashboard" }

func (c *DashboardCmd) Description() string {
	return "Rebuild the dashboard index over all generated chats"
}

func (c *DashboardCmd) Setup(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "Open the dashboard in the browser when done")
}

type dashboardResult struct {
	DashboardChats int    `json:"dashboard_chats"`
	DashboardPath  string `json:"dashboard_path"`
}

func (c *DashboardCmd) Run(ctx *Context, args []string) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	entries := dashboard.CollectEntries(cfg)
	total, err := dashboard.Generate(cfg, entries, time.Now())
	if err != nil {
		return err
	}

	out := NewOutputWriter(ctx.Output, ctx.Flags.JSONOutput)
	if out.IsJSON() {
		return out.WriteJSON(dashboardResult{DashboardChats: total, DashboardPath: cfg.DashboardPath()})
	}
	out.PrintLine("Dashboard: %d chats in %s", total, cfg.DashboardPath())

	if c.open {
		if err := browser.OpenInBrowser(cfg.DashboardPath()); err != nil {
			PrintError(ctx.ErrOutput, "could not open browser: %v", err)
		}
	}
	return nil
}
