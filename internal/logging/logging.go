// Package logging wraps charmbracelet/log for the chat loop's internal
// debug output (SPEC_FULL.md §4.10), kept separate from the user-facing
// colored transcript rendered by the ui package.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a leveled logger writing to stderr: Debug level when debug
// is true or CHAT_DEBUG=1 is set in the environment, Warn level
// otherwise.
func New(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chatloop",
	})

	if debug || os.Getenv("CHAT_DEBUG") == "1" {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
