package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/tokens"
)

func TestFilenameSlugifiesAgentName(t *testing.T) {
	at := time.Date(2026, 3, 4, 9, 5, 6, 0, time.UTC)
	got := Filename(at, "Product Pete!")
	want := "2026-03-04_09-05-06_product-pete.md"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilenameFallsBackWhenNameSlugifiesEmpty(t *testing.T) {
	got := Filename(time.Now(), "###")
	if !strings.HasSuffix(got, "_agent.md") {
		t.Errorf("expected fallback slug 'agent', got %q", got)
	}
}

func TestRenderIncludesMetadataAndTranscript(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	s := session.New(start, "Pete")
	s.RecordUser("hello", start)
	s.RecordAgentSuccess("hi there", tokens.Usage{Input: 10, Output: 5, Total: 15}, start)

	out := Render(s, "Pete", start, end)
	if !strings.Contains(out, "# Conversation with Pete") {
		t.Error("expected title header")
	}
	if !strings.Contains(out, "## User") || !strings.Contains(out, "## Agent") {
		t.Error("expected both role sections")
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "hi there") {
		t.Error("expected transcript bodies present")
	}
}

func TestWriteCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "convos")
	start := time.Now()
	end := start.Add(time.Minute)
	s := session.New(start, "Pete")

	path, err := Write(dir, s, "Pete", start, end)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist at %s: %v", path, err)
	}
}
