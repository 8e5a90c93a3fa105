// Package constants defines shared naming conventions and format strings.
package constants

// Record types carried in the top-level "type" field of a log line.
const (
	TypeSummary     = "summary"
	TypeSnapshot    = "file-history-snapshot"
	TypeCustomTitle = "custom-title"
	TypeUser        = "user"
	TypeAssistant   = "assistant"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content block types.
const (
	BlockText       = "text"
	BlockThinking   = "thinking"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// File naming conventions.
const (
	// AgentFilePrefix marks agent sub-logs in the source tree (agent-<id>.jsonl).
	AgentFilePrefix = "agent-"
	// AgentHTMLMarker appears in generated filenames for agent chats (Agent-<id>).
	AgentHTMLMarker = "Agent-"
	// ChatFilePrefix starts every generated chat filename.
	ChatFilePrefix = "Chat "
	// ChatsDirName is the subdirectory of the output folder holding chat HTML files.
	ChatsDirName = "Chats"
	// SessionsIndexFileName is the optional per-project enrichment index.
	SessionsIndexFileName = "sessions-index.json"
)

// Identifier lengths.
const (
	// HashPrefixLen is the length of the short identifier correlating
	// source logs with generated outputs.
	HashPrefixLen = 8
	// AgentIDLen is the length of the agent identifier used in filenames.
	AgentIDLen = 2
)

// Display formats.
const (
	// ChatTimestampFormat is the date-time portion of generated chat filenames.
	ChatTimestampFormat = "2006-01-02 15-04"
	// DisplayTimeFormat is used for dashboard created/modified columns.
	DisplayTimeFormat = "2006-01-02 15:04"
	// GeneratedStampFormat is the "Generated:" footer stamp in documents.
	GeneratedStampFormat = "2006-01-02 15:04:05"
)

// NoContentPlaceholder is the literal text Claude Code emits for empty
// messages; text blocks equal to it render as nothing.
const NoContentPlaceholder = "(no content)"

// DefaultScannerBufferSize is the initial buffer size for JSONL scanning.
// The buffer grows unbounded from here; tool results routinely exceed
// bufio's default line limit.
const DefaultScannerBufferSize = 1024 * 1024
