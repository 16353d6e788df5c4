// Package ui implements the Terminal I/O component of SPEC_FULL.md §4.2:
// color role rendering, the status bar, the thinking-indicator spinner,
// and the readline-backed line editor.
package ui

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

// Role is one of the six semantic color roles §4.2 and §6 define.
type Role string

const (
	RoleUser    Role = "user"
	RoleAgent   Role = "agent"
	RoleSystem  Role = "system"
	RoleError   Role = "error"
	RoleSuccess Role = "success"
	RoleDim     Role = "dim"
)

// Theme maps each semantic role to the lipgloss style built from the
// config-supplied color name (e.g. "bright blue", "dim"). Rendering a role
// through a Theme built with tty=false elides escape sequences entirely,
// per §4.2's "if output is not a TTY, escape sequences are elided".
type Theme struct {
	styles map[Role]lipgloss.Style
	tty    bool
}

// NewTheme builds a Theme from the six role -> color-name strings
// (ordinarily read from the effective config's colors.* section) and
// whether stdout is a TTY.
func NewTheme(colors map[Role]string, tty bool) Theme {
	styles := make(map[Role]lipgloss.Style, len(colors))
	for role, name := range colors {
		styles[role] = ansiStyle(name)
	}
	return Theme{styles: styles, tty: tty}
}

// IsOutputTTY reports whether fd (ordinarily os.Stdout) is attached to a
// terminal, using the same detection the readline terminal uses.
func IsOutputTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render wraps text in role's style, or returns text unchanged when the
// Theme was built for a non-TTY destination.
func (t Theme) Render(role Role, text string) string {
	if !t.tty {
		return text
	}
	style, ok := t.styles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}

// namedColors maps the lowercase ANSI color words the config format uses
// to their bright/regular hex approximations.
var namedColors = map[string]string{
	"black":   "#000000",
	"red":     "#cc0000",
	"green":   "#4e9a06",
	"yellow":  "#c4a000",
	"blue":    "#3465a4",
	"magenta": "#75507b",
	"cyan":    "#06989a",
	"white":   "#d3d7cf",
}

var brightColors = map[string]string{
	"black":   "#555753",
	"red":     "#ef2929",
	"green":   "#8ae234",
	"yellow":  "#fce94f",
	"blue":    "#729fcf",
	"magenta": "#ad7fa8",
	"cyan":    "#34e2e2",
	"white":   "#eeeeec",
}

// ansiStyle parses a config color name, e.g. "bright white", "yellow",
// "dim", or "reset", into the equivalent lipgloss style. Unrecognized
// names fall back to an unstyled (plain) style rather than an error —
// a bad theme value should degrade gracefully, not crash the loop.
func ansiStyle(name string) lipgloss.Style {
	name = strings.ToLower(strings.TrimSpace(name))
	style := lipgloss.NewStyle()

	switch name {
	case "", "reset":
		return style
	case "dim":
		return style.Faint(true)
	}

	bright := false
	word := name
	if strings.HasPrefix(name, "bright ") {
		bright = true
		word = strings.TrimPrefix(name, "bright ")
	}

	table := namedColors
	if bright {
		table = brightColors
	}
	if hex, ok := table[word]; ok {
		style = style.Foreground(lipgloss.Color(hex))
		if bright {
			style = style.Bold(true)
		}
	}
	return style
}
