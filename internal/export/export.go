// Package export implements the Conversation Exporter described in
// SPEC_FULL.md §4.8: writing the session transcript to a markdown file
// on clean exit when enabled.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/tokens"
)

// Filename builds the `YYYY-MM-DD_HH-MM-SS_<agent-name-slug>.md` name
// §4.8 specifies, given the export instant and the agent's display name.
func Filename(at time.Time, agentName string) string {
	stamp := at.Format("2006-01-02_15-04-05")
	s := slug.Make(agentName)
	if s == "" {
		s = "agent"
	}
	return fmt.Sprintf("%s_%s.md", stamp, s)
}

// Render produces the full markdown document: a metadata header followed
// by the transcript in order, one `## User` / `## Agent` section per
// entry.
func Render(s *session.Session, agentName string, start, end time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conversation with %s\n\n", agentName)
	fmt.Fprintf(&b, "- Session: %s\n", valueOrUnknown(s.ID))
	fmt.Fprintf(&b, "- Model: %s\n", valueOrUnknown(s.Model))
	fmt.Fprintf(&b, "- Start: %s\n", start.Format(time.RFC3339))
	fmt.Fprintf(&b, "- End: %s\n", end.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Duration: %s\n", session.FormatDuration(end.Sub(start)))
	fmt.Fprintf(&b, "- Queries: %d\n", s.QueryCount)
	fmt.Fprintf(&b, "- Tokens: %s in / %s out (%s total)\n",
		tokens.FormatCount(s.Usage.Input), tokens.FormatCount(s.Usage.Output), tokens.FormatCount(s.Usage.Total))
	if cost := tokens.FormatCost(s.Usage); cost != "" {
		fmt.Fprintf(&b, "- Cost: %s\n", cost)
	}
	b.WriteString("\n")

	for _, entry := range s.Transcript {
		switch entry.Role {
		case session.RoleUser:
			b.WriteString("## User\n\n")
		case session.RoleAgent:
			b.WriteString("## Agent\n\n")
		}
		b.WriteString(entry.Text)
		b.WriteString("\n\n")
	}

	return b.String()
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Write renders s's transcript and writes it under dir (creating dir if
// absent), returning the full path written. A write failure is returned
// for the caller to report — per §4.8 it never alters exit status or
// suppresses the session summary.
func Write(dir string, s *session.Session, agentName string, start, end time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(end, agentName))
	content := Render(s, agentName, start, end)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write conversation export: %w", err)
	}
	return path, nil
}
