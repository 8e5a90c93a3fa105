package models

// ChatStats aggregates per-document message counts. Counts are derived from
// record classification, not from rendered fragments, so they stay stable
// even when rendering suppresses an empty message.
type ChatStats struct {
	TotalLines      int `json:"total_lines"`
	UserCount       int `json:"user_messages"`
	AssistantCount  int `json:"assistant_messages"`
	ToolResultCount int `json:"tool_results"`
	SummaryCount    int `json:"summaries"`
	SnapshotCount   int `json:"snapshots"`
}
