package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/tokens"
)

// StatusBar renders the single-line box described in §4.2: agent name,
// short model id, running query count, cumulative tokens (when enabled),
// and elapsed session time. It is drawn once per turn, never mid-query.
type StatusBar struct {
	ShowTokens bool
}

// Render builds the status bar line for the given agent/session state at
// instant now.
func (b StatusBar) Render(agentName, modelID string, s *session.Session, now time.Time) string {
	var parts []string
	parts = append(parts, agentName)
	if modelID != "" {
		parts = append(parts, shortModel(modelID))
	}
	parts = append(parts, fmt.Sprintf("queries: %d", s.QueryCount))
	if b.ShowTokens {
		parts = append(parts, fmt.Sprintf("tokens: %s", tokens.FormatCount(s.Usage.Total)))
	}
	parts = append(parts, session.FormatDuration(s.Duration(now)))

	content := strings.Join(parts, " │ ")
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Render(content)
}

// shortModel trims a provider-qualified model id ("anthropic/claude-...")
// down to its final path segment for compact display.
func shortModel(modelID string) string {
	if idx := strings.LastIndex(modelID, "/"); idx != -1 {
		return modelID[idx+1:]
	}
	return modelID
}
