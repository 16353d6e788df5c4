// Package agent defines the boundary contract between the chat loop and the
// external collaborator it drives. Per SPEC_FULL.md §6, the agent is any
// callable that accepts a prompt string and returns a Response; its
// internals (LLM provider, MCP servers, tools, prompts) are out of scope and
// never introspected beyond the shapes described here.
package agent

import "context"

// Invocable is the minimal contract the chat loop requires of an agent: a
// single blocking call from prompt text to a Response or error. The loop
// never assumes a concrete Response type (§3) — all extraction happens
// through the probes in the tokens and agent packages.
type Invocable interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
}

// Future is an optional capability an Invocable's Response may satisfy when
// the underlying call is asynchronous (future- or coroutine-like). The
// invoker always waits for completion on the main control flow (§4.5,
// §9) — Future exists so a factory can hand back a pending result without
// the invoker needing to know how the agent implements concurrency
// internally.
type Future interface {
	// Await blocks until the underlying operation completes or ctx is
	// cancelled, returning the final Response.
	Await(ctx context.Context) (Response, error)
}

// Describable is an optional capability an agent may implement to provide
// the display metadata probed by the "info" builtin and the status bar
// (§4.3, §4.2). Every method is best-effort; a missing Describable is not
// an error.
type Describable interface {
	DisplayName() string
	Description() string
	Model() string
	Tools() []string
}

// Cleanable is an optional capability invoked on the `clear` builtin and at
// shutdown (§3, §4.9). Absence is not an error — the loop treats a missing
// Cleanable exactly like a no-op cleanup.
type Cleanable interface {
	Cleanup() error
}

// Factory constructs a fresh agent instance, used both at Orchestrator
// startup and by the `clear` builtin to replace the active agent (§4.3).
type Factory func(ctx context.Context) (Invocable, error)

// Info extracts the best-effort display metadata for a, falling back to
// empty/zero values for any capability it does not implement.
func Info(a Invocable) (displayName, description, model string, tools []string) {
	d, ok := a.(Describable)
	if !ok {
		return "", "", "", nil
	}
	return d.DisplayName(), d.Description(), d.Model(), d.Tools()
}

// Cleanup invokes a's Cleanup method if it implements Cleanable, otherwise
// it is a no-op. Errors are returned for the caller to log — cleanup
// failures never block shutdown or the `clear` builtin.
func Cleanup(a Invocable) error {
	c, ok := a.(Cleanable)
	if !ok {
		return nil
	}
	return c.Cleanup()
}
