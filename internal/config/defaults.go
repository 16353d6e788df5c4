package config

// builtinDefaults returns the fixed mapping of recognized configuration
// sections and keys, seeded with the defaults from §6. It is the lowest
// precedence layer and is always present, even when no config file exists
// anywhere on disk.
func builtinDefaults() map[string]any {
	return map[string]any{
		"colors": map[string]any{
			"user":    "bright white",
			"agent":   "bright blue",
			"system":  "yellow",
			"error":   "bright red",
			"success": "bright green",
			"dim":     "dim",
			"reset":   "reset",
		},
		"features": map[string]any{
			"auto_save":         false,
			"rich_enabled":      true,
			"show_tokens":       false,
			"show_metadata":     true,
			"readline_enabled":  true,
		},
		"paths": map[string]any{
			"save_location": "~/agent-conversations",
			"log_location":  ".logs",
		},
		"behavior": map[string]any{
			"max_retries":   3,
			"retry_delay":   2.0,
			"timeout":       120.0,
			"spinner_style": "dots",
		},
		"ui": map[string]any{
			"show_banner":             true,
			"show_thinking_indicator": true,
			"show_duration":           true,
			"show_status_bar":         false,
		},
	}
}
