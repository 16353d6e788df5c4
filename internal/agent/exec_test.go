package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeExecutableScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExecFactoryInvokeParsesJSONResponse(t *testing.T) {
	dir := t.TempDir()
	script := writeExecutableScript(t, dir, "agent.sh", `#!/bin/sh
cat >/dev/null
echo '{"text":"hello there","model":"claude-sonnet-4-20250514","input_tokens":10,"output_tokens":5,"total_tokens":15}'
`)

	factory := NewExecFactory(script)
	a, err := factory(context.Background())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	resp, err := a.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := Text(resp); got != "hello there" {
		t.Errorf("Text() = %q, want %q", got, "hello there")
	}
	if got := ModelID(resp); got != "claude-sonnet-4-20250514" {
		t.Errorf("ModelID() = %q, want model string", got)
	}
	if got := ExtractUsage(resp); got.TotalTokens != 15 {
		t.Errorf("ExtractUsage().TotalTokens = %d, want 15", got.TotalTokens)
	}
}

func TestExecFactoryInvokeFallsBackToRawText(t *testing.T) {
	dir := t.TempDir()
	script := writeExecutableScript(t, dir, "agent.sh", `#!/bin/sh
cat >/dev/null
echo 'plain text reply'
`)

	factory := NewExecFactory(script)
	a, err := factory(context.Background())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	resp, err := a.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := Text(resp); got != "plain text reply" {
		t.Errorf("Text() = %q, want raw stdout", got)
	}
}

func TestExecFactoryReturnsErrorForMissingExecutable(t *testing.T) {
	factory := NewExecFactory(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := factory(context.Background()); err == nil {
		t.Fatal("expected error for missing agent executable")
	}
}

func TestExecAgentInvokePropagatesProcessFailure(t *testing.T) {
	dir := t.TempDir()
	script := writeExecutableScript(t, dir, "agent.sh", `#!/bin/sh
cat >/dev/null
echo "boom" >&2
exit 1
`)

	factory := NewExecFactory(script)
	a, err := factory(context.Background())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	if _, err := a.Invoke(context.Background(), "hi"); err == nil {
		t.Fatal("expected error from failing agent process")
	}
}
