package models

import (
	"encoding/json"
)

// LogRecord represents a single decoded line of a JSONL conversation log.
// Every field is optional on the wire; absent fields keep their zero value.
type LogRecord struct {
	Type             string    `json:"type"`
	Summary          string    `json:"summary"`
	LeafUUID         string    `json:"leafUuid"`
	CustomTitle      string    `json:"customTitle"`
	MessageID        string    `json:"messageId"`
	Message          *Message  `json:"message"`
	Snapshot         *Snapshot `json:"snapshot"`
	Timestamp        string    `json:"timestamp"`
	UUID             string    `json:"uuid"`
	CWD              string    `json:"cwd"`
	GitBranch        string    `json:"gitBranch"`
	IsCompactSummary bool      `json:"isCompactSummary"`

	// LineNumber is the 1-based position of this record in its source file,
	// assigned by the parser.
	LineNumber int `json:"-"`
}

// Snapshot is the nested payload of a file-history-snapshot record.
type Snapshot struct {
	MessageID string `json:"messageId"`
	Timestamp string `json:"timestamp"`
}

// Message is the nested message object of an ordinary record.
type Message struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
	Model   string         `json:"model"`
}

// MessageContent holds message content, which on the wire is either a plain
// string or an ordered list of content blocks.
type MessageContent struct {
	// Text is set when content was a plain string.
	Text string
	// Blocks is set when content was a block list.
	Blocks []ContentBlock
	// IsList distinguishes an empty block list from plain-string content.
	IsList bool
}

// UnmarshalJSON accepts a string, a block list, or anything else (ignored).
// Unexpected shapes never fail the record; they decode to empty content.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err == nil {
		c.Blocks = blocks
		c.IsList = true
		return nil
	}
	return nil
}

// IsEmpty reports whether the content carries nothing at all.
func (c MessageContent) IsEmpty() bool {
	return !c.IsList && c.Text == ""
}

// ContentBlock is one typed unit of message content. The Type tag selects
// which of the remaining fields are meaningful; unknown tags are preserved
// so the renderer can emit a placeholder instead of failing.
type ContentBlock struct {
	Type     string                 `json:"type"`
	Text     string                 `json:"text"`
	Thinking string                 `json:"thinking"`
	Name     string                 `json:"name"`
	ID       string                 `json:"id"`
	Input    map[string]interface{} `json:"input"`

	// Tool result fields. Content is kept raw because it is itself either a
	// string or a nested block list.
	Content   json.RawMessage `json:"content"`
	ToolUseID string          `json:"tool_use_id"`
}

// ResultContent decodes a tool_result block's payload. It returns the plain
// string form, the block-list form, or ok=false when the payload is some
// other shape (callers stringify the raw bytes in that case).
func (b ContentBlock) ResultContent() (text string, blocks []ContentBlock, ok bool) {
	if len(b.Content) == 0 {
		return "", nil, true
	}
	if err := json.Unmarshal(b.Content, &text); err == nil {
		return text, nil, true
	}
	if err := json.Unmarshal(b.Content, &blocks); err == nil {
		return "", blocks, true
	}
	return "", nil, false
}
