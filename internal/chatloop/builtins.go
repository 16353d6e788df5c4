package chatloop

import (
	"context"
	"fmt"
	"strings"

	"github.com/strandschat/chatloop/internal/agent"
	"github.com/strandschat/chatloop/internal/dispatch"
	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/template"
	"github.com/strandschat/chatloop/internal/ui"
)

// helpText is printed by the `help` builtin, listing the recognized
// commands from §4.3.
const helpText = `Commands:
  help        show this message
  info        show agent metadata and enabled features
  templates   list available prompt templates
  clear       reset the conversation with a fresh agent instance
  exit, quit  end the session`

// handleBuiltin dispatches one recognized builtin command (§4.3),
// returning true when the REPL should stop.
func (o *Orchestrator) handleBuiltin(ctx context.Context, b dispatch.Builtin) bool {
	switch b {
	case dispatch.BuiltinHelp:
		fmt.Println(helpText)
	case dispatch.BuiltinInfo:
		o.printInfo()
	case dispatch.BuiltinTemplates:
		o.printTemplates()
	case dispatch.BuiltinClear:
		o.handleClear(ctx)
	case dispatch.BuiltinExit:
		return true
	}
	return false
}

func (o *Orchestrator) printInfo() {
	var b strings.Builder
	fmt.Fprintf(&b, "Agent:       %s\n", o.displayName)
	if o.description != "" {
		fmt.Fprintf(&b, "Description: %s\n", o.description)
	}
	fmt.Fprintf(&b, "Model:       %s\n", valueOrUnknown(o.model))

	_, _, _, tools := agent.Info(o.current)
	if len(tools) > 0 {
		fmt.Fprintf(&b, "Tools:       %s\n", strings.Join(tools, ", "))
	}

	fmt.Fprintln(&b, "Features:")
	for _, key := range []string{"auto_save", "rich_enabled", "show_tokens", "show_metadata", "readline_enabled"} {
		enabled := o.cfg.Bool("features."+key, false, o.displayName)
		fmt.Fprintf(&b, "  %-16s %v\n", key, enabled)
	}

	fmt.Print(b.String())
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func (o *Orchestrator) printTemplates() {
	list := o.templates.List()
	if len(list) == 0 {
		fmt.Println("No templates found.")
		return
	}
	for _, t := range list {
		desc := template.Description(t)
		if desc == "" {
			fmt.Printf("/%s\n", t.Name)
		} else {
			fmt.Printf("/%-20s %s\n", t.Name, desc)
		}
	}
}

// handleClear implements §4.3's `clear` contract: clear the terminal,
// reset the line editor's screen state, acquire a fresh agent via the
// factory (best-effort cleanup on the old one), re-emit the banner, and
// reset the session counters.
func (o *Orchestrator) handleClear(ctx context.Context) {
	old := o.current

	if err := o.acquireAgent(ctx, " for clear"); err != nil {
		o.printError(err.Error())
		o.current = old
		return
	}
	if err := agent.Cleanup(old); err != nil && o.logger != nil {
		o.logger.Warn("cleanup of previous agent failed", "err", err)
	}

	o.terminal.ClearScreen()
	o.sess = session.New(now(), o.displayName)

	if o.cfg.Bool("ui.show_banner", true, o.displayName) {
		fmt.Println(ui.Banner(o.displayName, o.description))
	}
}
