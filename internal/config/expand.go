package config

import (
	"os"
	"regexp"
	"strings"
)

// varPattern matches both ${VAR} and bare $VAR references in path strings.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandPath expands a leading "~" to the user's home directory and replaces
// "$VAR"/"${VAR}" references with the corresponding environment variable.
// Unset variables expand to the empty string, mirroring shell behavior for
// unquoted parameter expansion. This is applied at read time to every string
// value under the config "paths" section.
func ExpandPath(value string) string {
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if value == "~" {
				value = home
			} else if strings.HasPrefix(value, "~/") {
				value = home + value[1:]
			}
		}
	}

	return varPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		name = strings.TrimPrefix(name, "$")
		return os.Getenv(name)
	})
}
