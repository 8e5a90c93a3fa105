package renderer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
)

// ShortID derives the short identifier for a source file: the part of its
// base name before the first hyphen, or the first 8 characters when there is
// no hyphen. For UUID-named session files both rules agree.
func ShortID(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.IndexByte(base, '-'); i >= 0 {
		return base[:i]
	}
	return firstN(base, constants.HashPrefixLen)
}

// ChatTimestamp returns the nominal timestamp of a conversation: the
// timestamp of the first record that carries one, preferring a nested
// snapshot timestamp over the record's own.
func ChatTimestamp(records []models.LogRecord) (time.Time, bool) {
	for _, rec := range records {
		if rec.Snapshot != nil && rec.Snapshot.Timestamp != "" {
			if t, err := time.Parse(time.RFC3339Nano, rec.Snapshot.Timestamp); err == nil {
				return t, true
			}
		}
		if rec.Timestamp != "" {
			if t, err := time.Parse(time.RFC3339Nano, rec.Timestamp); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// OutputFileName computes the deterministic output name for a conversation:
// "Chat <date> <time> <shortid>.html", falling back to "Chat <shortid>.html"
// when no record carries a timestamp. The time portion is local.
func OutputFileName(inputPath string, records []models.LogRecord) string {
	id := ShortID(inputPath)
	if ts, ok := ChatTimestamp(records); ok {
		return constants.ChatFilePrefix + ts.Local().Format(constants.ChatTimestampFormat) + " " + id + ".html"
	}
	return constants.ChatFilePrefix + id + ".html"
}

// AgentFileName replaces the generic short identifier of an agent log
// (always "agent", from the agent-<id>.jsonl naming) with the Agent-<id>
// suffix: "Chat 2024-01-01 10-00 agent.html" + "Agent-ab" ->
// "Chat 2024-01-01 10-00 Agent-ab.html".
func AgentFileName(baseName, agentSuffix string) string {
	name := strings.TrimSuffix(baseName, ".html")
	name = strings.TrimSuffix(name, " agent")
	return name + " " + agentSuffix + ".html"
}
