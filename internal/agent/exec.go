package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// execResponse is the JSON shape an external agent process writes to
// stdout after a single invocation. Every field is optional, matching the
// Response probes in response.go — an agent that only prints plain text
// still works via the raw-text fallback in execAgent.Invoke.
type execResponse struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	Cycles       int    `json:"cycles"`
}

// execResponseView adapts the plain execResponse data struct to the
// WithText/WithModel/WithUsage/WithMetrics shapes response.go's extractors
// probe for, via thin wrapper methods (the JSON field names and the
// extractor method names collide, e.g. Text the field vs Text() the
// method).
type execResponseView struct{ execResponse }

func (v execResponseView) Text() string { return v.execResponse.Text }
func (v execResponseView) Model() string { return v.execResponse.Model }
func (v execResponseView) Usage() TokenCounters {
	return TokenCounters{
		InputTokens:  v.InputTokens,
		OutputTokens: v.OutputTokens,
		TotalTokens:  v.TotalTokens,
	}
}
func (v execResponseView) GetMetrics() Metrics {
	return Metrics{Cycles: v.Cycles}
}

// execAgent is the Invocable built around an external executable. Each
// turn spawns a fresh process, per the out-of-scope boundary in
// SPEC_FULL.md §6: the loop treats the executable as an opaque
// prompt-in/Response-out collaborator and never manages its internal
// state, mirroring the teacher's external-process tool pattern (see
// DESIGN.md's grounding for internal/core/bash.go).
type execAgent struct {
	path string
	name string
}

// NewExecFactory returns a Factory that invokes path as a subprocess once
// per turn: the prompt is written to the process's stdin, and its stdout
// is parsed either as the JSON execResponse shape above or, failing that,
// treated as the response's raw text. This is the minimal "external agent
// loaded by convention" the --agent flag describes in SPEC_FULL.md §6 —
// any richer agent (an LLM-backed one with tools, MCP servers, and so on)
// is explicitly out of scope and lives entirely behind this same
// Invocable/Factory boundary.
func NewExecFactory(path string) Factory {
	return func(ctx context.Context) (Invocable, error) {
		if _, err := exec.LookPath(path); err != nil {
			return nil, fmt.Errorf("agent executable %q not found: %w", path, err)
		}
		name := path
		if idx := strings.LastIndexByte(path, '/'); idx != -1 {
			name = path[idx+1:]
		}
		return &execAgent{path: path, name: name}, nil
	}
}

// Invoke satisfies Invocable by running the configured executable with the
// prompt on stdin, waiting for it to exit, and decoding its response.
func (a *execAgent) Invoke(ctx context.Context, prompt string) (Response, error) {
	cmd := exec.CommandContext(ctx, a.path)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("agent process failed: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("agent process failed: %w", err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	var parsed execResponse
	if err := json.Unmarshal(out, &parsed); err != nil {
		parsed = execResponse{Text: string(out)}
	}
	return execResponseView{parsed}, nil
}

// DisplayName, Description, Model, and Tools implement Describable so the
// `info` builtin and status bar have something to show even for the
// minimal executable-based agent. Model always returns ""; a model the
// process reports in its JSON payload is read per response through
// agent.ModelID instead.
func (a *execAgent) DisplayName() string { return a.name }
func (a *execAgent) Description() string { return "external agent process: " + a.path }
func (a *execAgent) Model() string       { return "" }
func (a *execAgent) Tools() []string     { return nil }
