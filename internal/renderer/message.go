package renderer

import (
	"html"
	"strings"
	"time"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
	"github.com/nucleoia/ccv/internal/processor"
)

const idSuffixLen = 12

var separatorLine = strings.Repeat("─", 80)

// RenderRecord converts one classified record into an HTML fragment. An
// empty return value means the record contributes nothing to the document.
// A tool-result record can yield several stacked fragments, one per
// tool_result block.
func RenderRecord(rec models.LogRecord) string {
	switch processor.Classify(rec) {
	case processor.KindSummary:
		return renderSummary(rec)
	case processor.KindSnapshot:
		return renderSnapshot(rec)
	case processor.KindToolResult:
		return renderToolResults(rec)
	case processor.KindUser:
		return renderMessage(rec, "&#128100;", "USER", "user-msg")
	case processor.KindAssistant:
		return renderMessage(rec, "&#129302;", "ASSISTANT", "assistant-msg")
	case processor.KindOther:
		return renderMessage(rec, "&#10067;", strings.ToUpper(rec.Message.Role), "other-msg")
	default:
		return ""
	}
}

func renderSummary(rec models.LogRecord) string {
	rule := strings.Repeat("━", 53)
	var sb strings.Builder
	sb.WriteString(`<div class="message summary-msg">` + "\n")
	sb.WriteString(`<div class="summary-header">` + "\n")
	sb.WriteString(rule + "\n&#128203; CONVERSATION SUMMARY\n" + rule + "\n")
	sb.WriteString("</div>\n")
	sb.WriteString(`<div class="summary-content">` + "\n")
	sb.WriteString(html.EscapeString(rec.Summary))
	sb.WriteString("\n<br><br>\n")
	sb.WriteString(`<span class="uuid-small">Leaf UUID: ` + html.EscapeString(lastN(rec.LeafUUID, idSuffixLen)) + "</span>\n")
	sb.WriteString("</div>\n</div>\n")
	return sb.String()
}

func renderSnapshot(rec models.LogRecord) string {
	id := rec.MessageID
	if id == "" && rec.Snapshot != nil {
		id = rec.Snapshot.MessageID
	}
	return `<div class="snapshot">&#128190; [Snapshot saved: ` + html.EscapeString(firstN(id, idSuffixLen)) + `...]</div>` + "\n"
}

// renderToolResults renders one collapsed disclosure per tool_result block
// in a user-role record.
func renderToolResults(rec models.LogRecord) string {
	var fragments []string
	for _, b := range rec.Message.Content.Blocks {
		if b.Type != constants.BlockToolResult {
			continue
		}
		toolID := b.ToolUseID
		if toolID == "" {
			toolID = "N/A"
		}
		var sb strings.Builder
		sb.WriteString(`<details class="tool-result-msg">` + "\n")
		sb.WriteString(`<summary class="msg-header">` + "\n")
		sb.WriteString(`<span class="bullet">&#128228;</span> <span class="label">[TOOL RESULT]</span> <span class="metadata">Tool ID: ` + html.EscapeString(lastN(toolID, idSuffixLen)) + "</span>\n")
		sb.WriteString("</summary>\n")
		sb.WriteString(`<div class="msg-content">` + "\n")
		sb.WriteString(renderToolResultContent(b))
		sb.WriteString("\n</div>\n")
		sb.WriteString(`<div class="msg-footer">` + "\n")
		sb.WriteString(`<span class="uuid-small">ID: ` + html.EscapeString(idOrNA(rec.UUID)) + "</span>\n")
		sb.WriteString("</div>\n")
		sb.WriteString(`<div class="separator">` + separatorLine + "</div>\n")
		sb.WriteString("</details>")
		fragments = append(fragments, sb.String())
	}
	return strings.Join(fragments, "\n")
}

// renderMessage renders a real user, assistant, or other-role message. A
// message whose content renders entirely empty is suppressed.
func renderMessage(rec models.LogRecord, icon, label, msgClass string) string {
	msg := rec.Message
	if msg.Content.IsEmpty() {
		return ""
	}

	body := renderMessageBody(msg.Content)
	if strings.TrimSpace(body) == "" {
		return ""
	}

	var meta []string
	if ts := formatClock(rec.Timestamp); ts != "" {
		meta = append(meta, ts)
	}
	if msg.Model != "" {
		meta = append(meta, html.EscapeString(msg.Model))
	}
	if rec.GitBranch != "" {
		meta = append(meta, "["+html.EscapeString(rec.GitBranch)+"]")
	}

	navAttr := ""
	if (msgClass == "user-msg" || msgClass == "assistant-msg") && !processor.IsNavSkippable(msg) {
		navAttr = ` data-nav="1"`
	}

	var sb strings.Builder
	sb.WriteString(`<div class="message ` + msgClass + `"` + navAttr + ">\n")
	sb.WriteString(`<div class="msg-header">` + "\n")
	sb.WriteString(`<span class="bullet">` + icon + `</span> <span class="label">[` + html.EscapeString(label) + `]:</span> <span class="metadata">` + strings.Join(meta, "&nbsp;&nbsp;") + "</span>\n")
	sb.WriteString("</div>\n")
	sb.WriteString(`<div class="msg-content">` + "\n")
	sb.WriteString(body)
	sb.WriteString("\n</div>\n")
	sb.WriteString(`<div class="msg-footer">` + "\n")
	sb.WriteString(`<span class="uuid-small">ID: ` + html.EscapeString(idOrNA(rec.UUID)) + "</span>\n")
	if rec.CWD != "" {
		sb.WriteString(`<span class="cwd-small">CWD: ` + html.EscapeString(rec.CWD) + "</span>\n")
	}
	sb.WriteString("</div>\n")
	sb.WriteString(`<div class="separator">` + separatorLine + "</div>\n")
	sb.WriteString("</div>\n")
	return sb.String()
}

// formatClock renders an ISO timestamp as a local-time clock reading, or ""
// when the timestamp is missing or malformed.
func formatClock(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ""
	}
	return t.Local().Format("3:04 PM")
}

func idOrNA(uuid string) string {
	if uuid == "" {
		return "N/A"
	}
	return lastN(uuid, idSuffixLen)
}
