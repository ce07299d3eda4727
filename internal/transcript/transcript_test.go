package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbots/internal/history"
)

func TestExportRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	turns := []history.Turn{
		{Role: "user", Content: "What is Go?", Timestamp: ts},
		{Role: "assistant", Content: "## Overview\n\nGo is a language.\n\n---\n\n- fast\n- simple", Timestamp: ts.Add(time.Second)},
		{Role: "user", Content: "", Timestamp: ts.Add(2 * time.Second)},
		{Role: "user", Content: "\nleading blank\ntrailing newline\n"},
		{Role: "assistant", Content: "Intro\n\n---\n\n## Details (more)\n\ntext", Timestamp: ts.Add(3 * time.Second)},
		{Role: "user", Content: "line one\r\nline two\r", Timestamp: ts.Add(4 * time.Second)},
	}
	p := filepath.Join(t.TempDir(), "out", "conversation.md")
	require.NoError(t, Export(p, "llama3.2", turns, ts))

	got, err := ParseExportFile(p)
	require.NoError(t, err)
	require.Len(t, got, len(turns))
	for i := range turns {
		assert.Equal(t, turns[i].Role, got[i].Role, "turn %d role", i)
		assert.Equal(t, turns[i].Content, got[i].Content, "turn %d content", i)
	}
	assert.True(t, got[0].Timestamp.Equal(ts))
	assert.True(t, got[3].Timestamp.IsZero())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# Conversation History - 2024-01-15 10:30:00\n\nModel: llama3.2\n\n"))
	assert.Contains(t, out, "## User (2024-01-15 10:30:00)\n\nWhat is Go?\n\n---\n\n")
	assert.Contains(t, out, "## User (Unknown time)")
	assert.True(t, strings.HasSuffix(out, Footer+"\n"))
}

func TestExportEmptyHistory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, Export(p, "m", nil, time.Now()))
	got, err := ParseExportFile(p)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseExportRejectsTruncatedTurn(t *testing.T) {
	_, err := ParseExport(strings.NewReader("## User (2024-01-15 10:30:00)\n\nno separator\n"))
	assert.Error(t, err)
}

func TestWriteResponse(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)

	p, err := WriteResponse(dir, at, "hi", "hello", ResponseMeta{Model: "llama3.2", ResponseTime: 1500 * time.Millisecond, Tokens: 12})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "response_20240301_090507.md"), p)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "# LLM Response - 20240301_090507\n\n## Prompt\n\nhi\n\n## Response\n\nhello\n\n## Metadata\n\n- Model: llama3.2\n- Response time: 1.50 seconds\n- Tokens generated: 12\n", string(data))

	p, err = WriteResponse(dir, at, "hi", "streamed", ResponseMeta{ResponseTime: 250 * time.Millisecond, Streamed: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stream_response_20240301_090507.md"), p)
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# LLM Streamed Response - 20240301_090507")
	assert.Contains(t, string(data), "- Model: unknown\n- Response time: 250.00 ms\n")
	assert.NotContains(t, string(data), "Tokens generated")
}

func TestFirstCodeBlock(t *testing.T) {
	content := "Here you go:\n\n```python\ndef add(a, b):\n    return a + b\n```\n\nAnd a test:\n\n```python\nassert add(1, 2) == 3\n```\n"
	code, ok := FirstCodeBlock(content)
	require.True(t, ok)
	assert.Equal(t, "def add(a, b):\n    return a + b", code)

	_, ok = FirstCodeBlock("no code here")
	assert.False(t, ok)

	code, ok = FirstCodeBlock("~~~\nplain\n~~~")
	require.True(t, ok)
	assert.Equal(t, "plain", code)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "py", Extension("python"))
	assert.Equal(t, "py", Extension("Python"))
	assert.Equal(t, "ps1", Extension("powershell"))
	assert.Equal(t, "txt", Extension("brainfuck"))
	assert.Equal(t, "txt", Extension(""))
}
