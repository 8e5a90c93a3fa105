package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile_ValidRecords(t *testing.T) {
	path := writeLog(t, `{"type":"user","uuid":"u-1","message":{"role":"user","content":"Hello"}}
{"type":"assistant","uuid":"a-1","message":{"role":"assistant","content":[{"type":"text","text":"Hi"}]}}
`)

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "user", records[0].Type)
	assert.Equal(t, "Hello", records[0].Message.Content.Text)
	assert.Equal(t, "assistant", records[1].Type)
	require.Len(t, records[1].Message.Content.Blocks, 1)
	assert.Equal(t, "Hi", records[1].Message.Content.Blocks[0].Text)
}

func TestParseFile_BadLinesSkippedWithoutReordering(t *testing.T) {
	path := writeLog(t, `{"type":"user","uuid":"u-1","message":{"role":"user","content":"first"}}
this is not json
{"type":"user","uuid":"u-2","message":{"role":"user","content":"second"}}
{broken
{"type":"user","uuid":"u-3","message":{"role":"user","content":"third"}}
`)

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "first", records[0].Message.Content.Text)
	assert.Equal(t, "second", records[1].Message.Content.Text)
	assert.Equal(t, "third", records[2].Message.Content.Text)

	// Line numbers reflect position in the file, not in the result.
	assert.Equal(t, 1, records[0].LineNumber)
	assert.Equal(t, 3, records[1].LineNumber)
	assert.Equal(t, 5, records[2].LineNumber)
}

func TestParseFile_BlankLinesIgnored(t *testing.T) {
	path := writeLog(t, `
{"type":"user","uuid":"u-1","message":{"role":"user","content":"only"}}

`)

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "only", records[0].Message.Content.Text)
}

func TestParseFile_EmptyFile(t *testing.T) {
	path := writeLog(t, "")

	records, err := ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestParseFile_NumericContentDoesNotFailRecord(t *testing.T) {
	// Content of an unexpected shape decodes to empty content, not an error.
	path := writeLog(t, `{"type":"user","uuid":"u-1","message":{"role":"user","content":42}}
`)

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Message.Content.IsEmpty())
}
