// Package processor classifies log records into render categories and
// derives per-document statistics.
package processor

import (
	"strings"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
)

// Kind is the render-relevant category of a log record. Rendering and
// statistics both go through Classify so they can never disagree.
type Kind int

const (
	// KindNone marks records that contribute nothing to the output.
	KindNone Kind = iota
	KindSummary
	KindSnapshot
	// KindToolResult marks user-role records whose content carries tool
	// results; these are never genuine user messages.
	KindToolResult
	KindUser
	KindAssistant
	// KindOther marks records with a non-empty message and an unrecognized
	// role, rendered with the uppercased role as label.
	KindOther
)

// Classify returns the category of a record.
func Classify(rec models.LogRecord) Kind {
	switch rec.Type {
	case constants.TypeSummary:
		return KindSummary
	case constants.TypeSnapshot:
		return KindSnapshot
	}

	if rec.Message == nil {
		return KindNone
	}

	switch rec.Message.Role {
	case constants.RoleUser:
		if HasToolResult(rec.Message.Content) {
			return KindToolResult
		}
		return KindUser
	case constants.RoleAssistant:
		return KindAssistant
	}

	if rec.Message.Role == "" && rec.Message.Content.IsEmpty() {
		return KindNone
	}
	return KindOther
}

// HasToolResult reports whether the content list contains at least one
// tool_result block. Plain-string content never does.
func HasToolResult(c models.MessageContent) bool {
	for _, b := range c.Blocks {
		if b.Type == constants.BlockToolResult {
			return true
		}
	}
	return false
}

// IsNavSkippable reports whether a message should be excluded from
// next/previous navigation: it has no bare non-empty string content and no
// text block with non-whitespace content, so only thinking or tool activity
// would be shown.
func IsNavSkippable(msg *models.Message) bool {
	if msg == nil {
		return true
	}
	if !msg.Content.IsList {
		return strings.TrimSpace(msg.Content.Text) == ""
	}
	for _, b := range msg.Content.Blocks {
		if b.Type == constants.BlockText && strings.TrimSpace(b.Text) != "" {
			return false
		}
	}
	return true
}

// CountStats derives aggregate statistics by classifying every record.
// A single tool-result record counts once regardless of how many rendered
// fragments it produces.
func CountStats(records []models.LogRecord) models.ChatStats {
	stats := models.ChatStats{TotalLines: len(records)}
	for _, rec := range records {
		switch Classify(rec) {
		case KindSummary:
			stats.SummaryCount++
		case KindSnapshot:
			stats.SnapshotCount++
		case KindToolResult:
			stats.ToolResultCount++
		case KindUser:
			stats.UserCount++
		case KindAssistant:
			stats.AssistantCount++
		}
	}
	return stats
}

// IsSnapshotOnly reports whether a record sequence contains no real user or
// assistant turns. Such logs produce no useful document and are skipped by
// the synchronizer.
func IsSnapshotOnly(records []models.LogRecord) bool {
	for _, rec := range records {
		if rec.Type == constants.TypeUser || rec.Type == constants.TypeAssistant {
			return false
		}
	}
	return true
}
