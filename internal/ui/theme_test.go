package ui

import "testing"

func TestRenderElidesEscapesWhenNotTTY(t *testing.T) {
	theme := NewTheme(map[Role]string{RoleError: "bright red"}, false)
	got := theme.Render(RoleError, "boom")
	if got != "boom" {
		t.Errorf("expected plain text on non-TTY theme, got %q", got)
	}
}

func TestRenderAppliesStyleWhenTTY(t *testing.T) {
	theme := NewTheme(map[Role]string{RoleError: "bright red"}, true)
	got := theme.Render(RoleError, "boom")
	if got == "boom" {
		t.Error("expected styled output to differ from plain text on a TTY theme")
	}
}

func TestAnsiStyleUnknownNameDegradesGracefully(t *testing.T) {
	theme := NewTheme(map[Role]string{RoleDim: "not-a-real-color"}, true)
	got := theme.Render(RoleDim, "text")
	if got != "text" {
		t.Errorf("expected unrecognized color name to render unstyled, got %q", got)
	}
}

func TestAnsiStyleResetIsPlain(t *testing.T) {
	theme := NewTheme(map[Role]string{RoleSystem: "reset"}, true)
	if got := theme.Render(RoleSystem, "x"); got != "x" {
		t.Errorf("expected reset to be a no-op style, got %q", got)
	}
}
