package ui

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

// Banner renders the startup (and post-`clear`) banner identifying the
// active agent, shown when ui.show_banner is enabled.
func Banner(agentName, description string) string {
	title := lipgloss.NewStyle().Bold(true).Render(agentName)
	if description == "" {
		return title
	}
	sub := lipgloss.NewStyle().Faint(true).Render(description)
	return fmt.Sprintf("%s\n%s", title, sub)
}
