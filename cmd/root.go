// Package cmd wires the cobra CLI entrypoint described in SPEC_FULL.md
// §4.9/§6: --agent/--config/--debug flag parsing and process exit-code
// handling, matching the teacher's cmd/root.go pattern.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strandschat/chatloop/internal/agent"
	"github.com/strandschat/chatloop/internal/chatloop"
	"github.com/strandschat/chatloop/internal/logging"
)

var (
	agentPath  string
	configPath string
	debugMode  bool
)

// rootCmd is the chat loop's entrypoint. It has no subcommands: running
// the binary is the whole interface (§6), with --agent naming the
// external executable loaded via agent.NewExecFactory.
var rootCmd = &cobra.Command{
	Use:   "chatloop",
	Short: "Interactive terminal chat loop for a pluggable agent",
	Long: `chatloop drives an interactive REPL session against any external
agent executable: a layered configuration resolver, prompt templates,
retry/backoff agent invocation, token accounting, and a session summary
on every exit path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if agentPath == "" {
			return fmt.Errorf("--agent is required")
		}

		logger := logging.New(debugMode)

		orch, err := chatloop.New(cmd.Context(), chatloop.Options{
			ConfigPath: configPath,
			Factory:    agent.NewExecFactory(agentPath),
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		return orch.Run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&agentPath, "agent", "", "path to the external agent executable (required)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "explicit configuration file path, overriding discovery")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug-level logging (also via CHAT_DEBUG=1)")
}

// Execute runs the root command against context.Background(), returning
// the exit code described in SPEC_FULL.md §6: 0 on clean exit, non-zero
// once an unhandled error has propagated past the Orchestrator (which has
// already emitted the session summary by the time Run returns an error).
func Execute() int {
	rootCmd.SetContext(context.Background())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
