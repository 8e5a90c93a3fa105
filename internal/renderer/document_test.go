package renderer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucleoia/ccv/internal/models"
)

func helloHiRecords() []models.LogRecord {
	return []models.LogRecord{
		{
			Type:      "user",
			UUID:      "u-1",
			Timestamp: "2024-01-01T10:00:00Z",
			Message:   &models.Message{Role: "user", Content: models.MessageContent{Text: "Hello"}},
		},
		{
			Type:      "assistant",
			UUID:      "a-1",
			Timestamp: "2024-01-01T10:00:05Z",
			Message: &models.Message{
				Role: "assistant",
				Content: models.MessageContent{
					IsList: true,
					Blocks: []models.ContentBlock{{Type: "text", Text: "Hi"}},
				},
			},
		},
	}
}

func TestGenerateHTML_HelloHiStats(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.html")
	err := GenerateHTML(helloHiRecords(), outputPath, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "Total: 2 lines | User: 1 | Assistant: 1 | Tool Results: 0 | Summaries: 0 | Snapshots: 0")
	assert.Contains(t, doc, "Hello")
	assert.Contains(t, doc, "Hi")
	assert.Contains(t, doc, "<!DOCTYPE html>")
}

func TestGenerateHTML_DashboardBackLink(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.html")

	err := GenerateHTML(helloHiRecords(), outputPath, Options{DashboardHref: "../CCV-Dashboard.html"})
	require.NoError(t, err)
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `href="../CCV-Dashboard.html"`)

	// Without the option there is no back link at all.
	err = GenerateHTML(helloHiRecords(), outputPath, Options{})
	require.NoError(t, err)
	data, err = os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "back-link\" href")
}

func TestGenerateHTML_FullOverwrite(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, os.WriteFile(outputPath, []byte("stale much longer previous content that must disappear entirely from the file"), 0644))

	err := GenerateHTML(helloHiRecords(), outputPath, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale much longer previous")
}

func TestChatTimestamp_PrefersSnapshotTimestamp(t *testing.T) {
	records := []models.LogRecord{
		{
			Type:      "file-history-snapshot",
			Snapshot:  &models.Snapshot{MessageID: "m1", Timestamp: "2024-02-02T08:30:00Z"},
			Timestamp: "2024-03-03T09:00:00Z",
		},
	}

	ts, ok := ChatTimestamp(records)
	require.True(t, ok)
	want, _ := time.Parse(time.RFC3339, "2024-02-02T08:30:00Z")
	assert.True(t, ts.Equal(want))
}

func TestChatTimestamp_NoTimestamps(t *testing.T) {
	_, ok := ChatTimestamp([]models.LogRecord{{Type: "summary"}})
	assert.False(t, ok)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", ShortID("/tmp/12345678-abcd-ef00-1111-222233334444.jsonl"))
	assert.Equal(t, "agent", ShortID("agent-ab12cd.jsonl"))
	assert.Equal(t, "deadbeef", ShortID("deadbeefcafe.jsonl"))
	assert.Equal(t, "short", ShortID("short.jsonl"))
}

func TestOutputFileName(t *testing.T) {
	name := OutputFileName("/tmp/12345678-abcd-ef00-1111-222233334444.jsonl", helloHiRecords())

	ts, _ := time.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
	want := "Chat " + ts.Local().Format("2006-01-02 15-04") + " 12345678.html"
	assert.Equal(t, want, name)
}

func TestOutputFileName_NoTimestampFallback(t *testing.T) {
	records := []models.LogRecord{{Type: "summary", Summary: "s"}}
	name := OutputFileName("/tmp/12345678-abcd.jsonl", records)
	assert.Equal(t, "Chat 12345678.html", name)
}

func TestAgentFileName(t *testing.T) {
	assert.Equal(t, "Chat 2024-01-01 10-00 Agent-ab.html",
		AgentFileName("Chat 2024-01-01 10-00 agent.html", "Agent-ab"))
	assert.Equal(t, "Chat 12345678 Agent-cd.html",
		AgentFileName("Chat 12345678.html", "Agent-cd"))
}
