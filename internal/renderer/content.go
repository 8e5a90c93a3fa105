// Package renderer converts classified log records into a self-contained
// HTML document. All escaping happens here, at the lowest level that sees
// raw text; everything above composes already-escaped fragments.
package renderer

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
)

var spaceRunRe = regexp.MustCompile(`  +`)

const (
	thinkingPreviewLen = 80
	toolIDDisplayLen   = 16
	toolValueMaxLen    = 100
)

// EscapeStructured escapes text for HTML while preserving its structure:
// newlines become line breaks and runs of two or more spaces become
// non-breaking spaces so indentation survives.
func EscapeStructured(text string) string {
	if text == "" {
		return ""
	}
	s := html.EscapeString(text)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = spaceRunRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Repeat("&nbsp;", len(m))
	})
	return s
}

// renderBlock converts one content block into an HTML fragment. An empty
// return value means the block contributes nothing. tool_result blocks are
// handled by the message renderer, never here.
func renderBlock(b models.ContentBlock) string {
	switch b.Type {
	case constants.BlockText:
		if strings.TrimSpace(b.Text) == constants.NoContentPlaceholder {
			return ""
		}
		return EscapeStructured(b.Text)

	case constants.BlockThinking:
		return renderThinking(b.Thinking)

	case constants.BlockToolUse:
		return renderToolUse(b)

	case constants.BlockToolResult:
		return ""

	default:
		return fmt.Sprintf(`<div class="unknown-type">[Type: %s]</div>`, html.EscapeString(b.Type))
	}
}

// renderThinking emits a collapsed disclosure whose summary is the first
// line of the thinking text.
func renderThinking(text string) string {
	preview := firstLine(text)
	if r := []rune(preview); len(r) > thinkingPreviewLen {
		preview = string(r[:thinkingPreviewLen]) + "..."
	}
	var sb strings.Builder
	sb.WriteString(`<details class="thinking"><summary>&#9673; Thinking&#8230; <span class="thinking-preview">`)
	sb.WriteString(html.EscapeString(preview))
	sb.WriteString(`</span></summary><div class="thinking-body">`)
	sb.WriteString(EscapeStructured(text))
	sb.WriteString(`</div></details>`)
	return sb.String()
}

// renderToolUse emits a collapsed disclosure summarizing the tool name with
// the truncated tool identifier and every input key/value pair in the body.
func renderToolUse(b models.ContentBlock) string {
	name := b.Name
	if name == "" {
		name = "unknown"
	}
	id := b.ID
	if len(id) > toolIDDisplayLen {
		id = id[:toolIDDisplayLen]
	}

	keys := make([]string, 0, len(b.Input))
	for k := range b.Input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := fmt.Sprintf("%v", b.Input[k])
		if r := []rune(v); len(r) > toolValueMaxLen {
			v = string(r[:toolValueMaxLen]) + "..."
		}
		lines = append(lines, "&nbsp;&nbsp;"+html.EscapeString(k)+": "+html.EscapeString(v))
	}
	params := "&nbsp;&nbsp;(no parameters)"
	if len(lines) > 0 {
		params = strings.Join(lines, "<br>")
	}

	var sb strings.Builder
	sb.WriteString(`<details class="tool-use"><summary>&#128295; Tool: `)
	sb.WriteString(html.EscapeString(name))
	sb.WriteString(`</summary><div class="tool-use-body">ID: `)
	sb.WriteString(html.EscapeString(id))
	sb.WriteString(`&#8230;<br>Parameters:<br>`)
	sb.WriteString(params)
	sb.WriteString(`</div></details>`)
	return sb.String()
}

// renderToolResultContent renders a tool_result payload, which is either a
// plain string, a nested block list (text sub-blocks rendered, others shown
// as a bracketed type tag), or some other shape (stringified and escaped).
func renderToolResultContent(b models.ContentBlock) string {
	text, blocks, ok := b.ResultContent()
	if !ok {
		return html.EscapeString(string(b.Content))
	}
	if blocks == nil {
		return EscapeStructured(text)
	}
	var parts []string
	for _, sub := range blocks {
		if sub.Type == constants.BlockText {
			parts = append(parts, EscapeStructured(sub.Text))
		} else {
			parts = append(parts, "["+html.EscapeString(sub.Type)+"]")
		}
	}
	return strings.Join(parts, "<br>")
}

// renderMessageBody joins the fragments of a message's content with a
// double line break. An empty result means every block rendered to nothing
// and the whole message is suppressed.
func renderMessageBody(content models.MessageContent) string {
	if !content.IsList {
		if strings.TrimSpace(content.Text) == "" {
			return ""
		}
		return EscapeStructured(content.Text)
	}
	var parts []string
	for _, b := range content.Blocks {
		if frag := renderBlock(b); frag != "" {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, "<br><br>")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

// lastN returns the trailing n bytes of s, used for compact identifier
// display in footers.
func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
