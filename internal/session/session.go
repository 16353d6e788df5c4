// Package session implements the Session State component of
// SPEC_FULL.md §4.7: per-session counters, transcript entries, and the
// unconditional exit summary. Structurally adapted from the teacher's
// JSON session persistence (metadata header plus ordered message list) but
// retargeted at the chat loop's in-memory counters rather than disk
// round-tripping.
package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/strandschat/chatloop/internal/tokens"
)

// Role distinguishes a transcript entry's speaker.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Entry is one recorded transcript line, timestamped at the moment it was
// recorded.
type Entry struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// Session tracks the counters §4.7 requires: start instant, successful
// query count, cumulative usage, and the ordered transcript.
type Session struct {
	// ID identifies this session instance, used only for diagnostics and
	// the export metadata header — never persisted or compared against.
	ID         string
	Start      time.Time
	AgentName  string
	Model      string
	QueryCount int
	Usage      tokens.Usage
	Transcript []Entry
}

// New starts a session clock at start (injected so callers, including
// tests, control time rather than this package calling time.Now itself).
func New(start time.Time, agentName string) *Session {
	return &Session{ID: uuid.New().String(), Start: start, AgentName: agentName}
}

// RecordUser appends a user transcript entry. Unlike RecordAgentSuccess,
// this never increments QueryCount — only a successful agent reply does
// (§4.7).
func (s *Session) RecordUser(text string, at time.Time) {
	s.Transcript = append(s.Transcript, Entry{Role: RoleUser, Text: text, Timestamp: at})
}

// RecordAgentSuccess appends the agent's reply, increments the successful
// query count, and folds u into the cumulative usage total.
func (s *Session) RecordAgentSuccess(text string, u tokens.Usage, at time.Time) {
	s.Transcript = append(s.Transcript, Entry{Role: RoleAgent, Text: text, Timestamp: at})
	s.QueryCount++
	s.Usage = s.Usage.Add(u)
	if u.Model != "" {
		s.Model = u.Model
	}
}

// Duration reports the elapsed time between Start and now.
func (s *Session) Duration(now time.Time) time.Duration {
	return now.Sub(s.Start)
}

// FormatDuration renders d as "Xm Ys", or "Xh Ym Ys" once it exceeds an
// hour, per §4.7.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	}
	return fmt.Sprintf("%dm %ds", m, sec)
}

// Summary renders the unconditional exit summary block: session duration,
// successful query count, cumulative in/out tokens, and cumulative cost,
// framed in the same lipgloss box style as the status bar (§4.2, §4.7). It
// is printed even when QueryCount is zero.
func (s *Session) Summary(now time.Time) string {
	var b strings.Builder
	b.WriteString("Session summary\n")
	fmt.Fprintf(&b, "Duration: %s\n", FormatDuration(s.Duration(now)))
	fmt.Fprintf(&b, "Queries:  %d\n", s.QueryCount)
	fmt.Fprintf(&b, "Tokens:   %s in / %s out (%s total)",
		tokens.FormatCount(s.Usage.Input), tokens.FormatCount(s.Usage.Output), tokens.FormatCount(s.Usage.Total))
	if cost := tokens.FormatCost(s.Usage); cost != "" {
		fmt.Fprintf(&b, "\nCost:     %s", cost)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Render(b.String())
}
