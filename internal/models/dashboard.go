package models

// Chat lifecycle categories, derived purely from an output file's location
// under the output root.
const (
	CategoryActive   = "Active"
	CategoryShort    = "Short"
	CategoryArchived = "Archived"
	CategoryNoHTML   = "No HTML"
)

// DashboardEntry is one row of the dashboard table: a generated chat
// document enriched from the per-project sessions index and/or its source
// JSONL file.
type DashboardEntry struct {
	SessionID    string  `json:"session_id"`
	Name         string  `json:"name"`
	Project      string  `json:"project"`
	ProjectFull  string  `json:"project_full"`
	Category     string  `json:"category"`
	Created      string  `json:"created"`
	CreatedSort  float64 `json:"created_sort"`
	Modified     string  `json:"modified"`
	ModifiedSort float64 `json:"modified_sort"`
	Messages     int     `json:"messages"`
	Branch       string  `json:"branch"`
	FirstPrompt  string  `json:"first_prompt"`
	Summary      string  `json:"summary"`
	HTMLLink     string  `json:"html_link"`
	HTMLSize     int64   `json:"html_size"`
}

// SessionIndexEntry is one entry of a per-project sessions-index.json file,
// keyed by session identifier.
type SessionIndexEntry struct {
	SessionID    string `json:"sessionId"`
	CustomTitle  string `json:"customTitle"`
	Summary      string `json:"summary"`
	ProjectPath  string `json:"projectPath"`
	GitBranch    string `json:"gitBranch"`
	FirstPrompt  string `json:"firstPrompt"`
	MessageCount int    `json:"messageCount"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
}

// SourceMetadata is enrichment read directly from a source JSONL file, used
// when the sessions index is missing or stale.
type SourceMetadata struct {
	Messages    int
	FirstPrompt string
	CWD         string
	GitBranch   string
	CustomTitle string
}
