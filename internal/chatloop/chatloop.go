// Package chatloop implements the Orchestrator described in
// SPEC_FULL.md §4.9: composing configuration, the agent factory, terminal
// I/O, and the supporting leaf components into the interactive REPL.
package chatloop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandschat/chatloop/internal/agent"
	"github.com/strandschat/chatloop/internal/config"
	"github.com/strandschat/chatloop/internal/dispatch"
	"github.com/strandschat/chatloop/internal/export"
	"github.com/strandschat/chatloop/internal/invoker"
	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/template"
	"github.com/strandschat/chatloop/internal/tokens"
	"github.com/strandschat/chatloop/internal/ui"
)

// Options configures an Orchestrator at construction time, gathering the
// command-line inputs listed in §6.
type Options struct {
	// ConfigPath overrides config discovery (the `--config` flag).
	ConfigPath string
	// Factory constructs the external agent; the loop never introspects
	// its internals beyond the agent.Describable/Cleanable probes.
	Factory agent.Factory
	// Logger receives debug/warn output (§4.10). It may be nil, in which
	// case that output is discarded.
	Logger *log.Logger
}

// Orchestrator owns the full turn loop: one Orchestrator instance is one
// Session (per the glossary).
type Orchestrator struct {
	cfg      *config.EffectiveConfig
	factory  agent.Factory
	logger   *log.Logger
	terminal *ui.Terminal
	theme    ui.Theme

	current     agent.Invocable
	displayName string
	description string
	model       string

	sess *session.Session

	templates *template.Store
}

// New loads configuration, acquires the first agent instance, and
// initializes terminal I/O, implementing steps 2-5 of §4.9's startup
// sequence (argument parsing is the caller's responsibility — see
// cmd/root.go).
func New(ctx context.Context, opts Options) (*Orchestrator, error) {
	cfg, err := config.Load(opts.ConfigPath, func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger.Warnf(format, args...)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	o := &Orchestrator{
		cfg:     cfg,
		factory: opts.Factory,
		logger:  opts.Logger,
	}

	if err := o.acquireAgent(ctx, ""); err != nil {
		return nil, err
	}

	tty := ui.IsOutputTTY(os.Stdout)
	colors := map[ui.Role]string{
		ui.RoleUser:    cfg.String("colors.user", "bright white", o.displayName),
		ui.RoleAgent:   cfg.String("colors.agent", "bright blue", o.displayName),
		ui.RoleSystem:  cfg.String("colors.system", "yellow", o.displayName),
		ui.RoleError:   cfg.String("colors.error", "bright red", o.displayName),
		ui.RoleSuccess: cfg.String("colors.success", "bright green", o.displayName),
		ui.RoleDim:     cfg.String("colors.dim", "dim", o.displayName),
	}
	o.theme = ui.NewTheme(colors, tty)

	historyPath := config.ExpandPath("~/.chat_history")
	term, err := ui.NewTerminal("> ", historyPath)
	if err != nil {
		agent.Cleanup(o.current)
		return nil, fmt.Errorf("initialize terminal: %w", err)
	}
	o.terminal = term

	templatesDir := config.ExpandPath("~/.prompts")
	o.templates = template.New(templatesDir)

	o.sess = session.New(now(), o.displayName)

	if cfg.Bool("ui.show_banner", true, o.displayName) {
		fmt.Println(ui.Banner(o.displayName, o.description))
	}

	return o, nil
}

// acquireAgent runs the external factory and refreshes the best-effort
// display metadata, per step 3 of §4.9 and the `clear` builtin's
// replacement contract (§4.3).
func (o *Orchestrator) acquireAgent(ctx context.Context, reason string) error {
	a, err := o.factory(ctx)
	if err != nil {
		return fmt.Errorf("acquire agent%s: %w", reason, err)
	}
	o.current = a
	o.displayName, o.description, o.model, _ = agent.Info(a)
	if o.displayName == "" {
		o.displayName = "agent"
	}
	return nil
}

// now is a seam so tests can control session timing without relying on
// wall-clock time.
var now = time.Now

// interruptWindow bounds how soon a second top-level keyboard interrupt
// must follow the first to count as "immediate succession" (§5): a lone
// interrupt just clears the line and re-displays the prompt, while two in
// a row trigger shutdown.
const interruptWindow = 2 * time.Second

// Run drives the turn loop until the user exits, input is exhausted, or
// an unhandled error propagates, implementing §4.9's turn and shutdown
// sequences. It always returns after emitting the session summary exactly
// once (§8 invariant 6), matching §5's "fatal error: summary first, then
// rethrow/exit non-zero" rule via its returned error.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.terminal.Close()

	var runErr error
	var lastInterrupt time.Time
	for {
		if o.cfg.Bool("ui.show_status_bar", false, o.displayName) {
			bar := ui.StatusBar{ShowTokens: o.cfg.Bool("features.show_tokens", false, o.displayName)}
			fmt.Println(bar.Render(o.displayName, o.model, o.sess, now()))
		}

		line, err := o.terminal.ReadLine()
		if err != nil {
			if errors.Is(err, ui.ErrEOF) {
				break
			}
			if errors.Is(err, ui.ErrInterrupted) {
				at := now()
				if !lastInterrupt.IsZero() && at.Sub(lastInterrupt) < interruptWindow {
					break
				}
				lastInterrupt = at
				continue
			}
			runErr = err
			break
		}
		lastInterrupt = time.Time{}

		if stop := o.handleLine(ctx, line); stop {
			break
		}
	}

	o.shutdown()
	return runErr
}

// handleLine classifies and dispatches one logical input, returning true
// when the REPL should stop (an exit/quit builtin).
func (o *Orchestrator) handleLine(ctx context.Context, line string) (stop bool) {
	class := dispatch.Classify(line)

	switch class.Kind {
	case dispatch.KindEmpty, dispatch.KindMultiLineInitiator:
		return false
	case dispatch.KindBuiltin:
		return o.handleBuiltin(ctx, class.Builtin)
	case dispatch.KindTemplate:
		prompt, err := o.materializeTemplate(class.TemplateName, class.TemplateContext)
		if err != nil {
			o.printError(err.Error())
			return false
		}
		o.handlePrompt(ctx, prompt)
		return false
	case dispatch.KindPrompt:
		o.handlePrompt(ctx, class.Prompt)
		return false
	}
	return false
}

func (o *Orchestrator) materializeTemplate(name, context string) (string, error) {
	t, ok := o.templates.Load(name)
	if !ok {
		return "", template.ErrNotFound(name)
	}
	return template.Materialize(t.Body, context), nil
}

// handlePrompt implements the ordinary-prompt branch of §4.9's turn
// sequence: invoke the agent, update Session State on success, render
// output or the appropriate error line otherwise.
func (o *Orchestrator) handlePrompt(ctx context.Context, prompt string) {
	at := now()
	o.sess.RecordUser(prompt, at)

	opts := invoker.Options{
		MaxRetries: o.cfg.Int("behavior.max_retries", 3, o.displayName),
		RetryDelay: durationFromSeconds(o.cfg.Float("behavior.retry_delay", 2.0, o.displayName)),
		Timeout:    durationFromSeconds(o.cfg.Float("behavior.timeout", 120.0, o.displayName)),
	}

	var spinner invoker.SpinnerController
	if o.cfg.Bool("ui.show_thinking_indicator", true, o.displayName) {
		style := o.cfg.String("behavior.spinner_style", "dots", o.displayName)
		spinner = ui.NewSpinner("thinking", style, ui.IsOutputTTY(os.Stdout))
	}

	result := invoker.Invoke(ctx, o.current, prompt, opts, spinner)
	if result.Err != nil {
		if result.Category == invoker.CategoryCancelled {
			return
		}
		o.printError(invoker.DescribeFailure(result))
		return
	}

	text := agent.Text(result.Response)
	u := tokens.FromResponse(result.Response)
	o.sess.RecordAgentSuccess(text, u, now())

	fmt.Println(o.theme.Render(ui.RoleAgent, text))
	if o.cfg.Bool("features.show_tokens", false, o.displayName) {
		fmt.Println(o.theme.Render(ui.RoleDim, tokens.FormatLine(u)))
	}
}

func (o *Orchestrator) printError(msg string) {
	fmt.Println(o.theme.Render(ui.RoleError, msg))
}

func durationFromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// shutdown implements §4.9's shutdown sequence: unconditional summary,
// optional export, best-effort agent cleanup.
func (o *Orchestrator) shutdown() {
	fmt.Println(o.sess.Summary(now()))

	if o.cfg.Bool("features.auto_save", false, o.displayName) && len(o.sess.Transcript) > 0 {
		dir := o.cfg.String("paths.save_location", "~/agent-conversations", o.displayName)
		if path, err := export.Write(dir, o.sess, o.displayName, o.sess.Start, now()); err != nil {
			o.printError(fmt.Sprintf("export failed: %v", err))
		} else if o.logger != nil {
			o.logger.Debug("exported conversation", "path", path)
		}
	}

	if err := agent.Cleanup(o.current); err != nil && o.logger != nil {
		o.logger.Warn("agent cleanup failed", "err", err)
	}
}

