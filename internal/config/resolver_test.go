package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestGetReturnsBuiltinDefaultWhenNoLayerDefinesKey(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := cfg.Get("behavior.max_retries", 0, "")
	if got != 3 {
		t.Errorf("expected builtin default 3, got %v", got)
	}
}

func TestExplicitLayerOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "behavior:\n  max_retries: 9\n")

	cfg, err := Load(explicit, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Int("behavior.max_retries", 0, ""); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
	// Unrelated keys still fall back to builtin defaults.
	if got := cfg.Float("behavior.timeout", 0, ""); got != 120.0 {
		t.Errorf("expected untouched default 120.0, got %v", got)
	}
}

func TestMissingExplicitPathIsFatal(t *testing.T) {
	if _, err := Load("/nonexistent/path/does-not-exist.yaml", nil); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestPerAgentOverrideOutranksBaseForThatAgentOnly(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, `
behavior:
  timeout: 120
agents:
  Product Pete:
    behavior:
      timeout: 5
`)

	cfg, err := Load(explicit, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Float("behavior.timeout", 0, "Product Pete"); got != 5 {
		t.Errorf("expected agent override 5, got %v", got)
	}
	if got := cfg.Float("behavior.timeout", 0, "Someone Else"); got != 120 {
		t.Errorf("expected base 120 for other agent, got %v", got)
	}
	if got := cfg.Float("behavior.timeout", 0, ""); got != 120 {
		t.Errorf("expected base 120 with no agent, got %v", got)
	}
}

func TestHigherLayerBaseOutranksLowerLayerAgentOverride(t *testing.T) {
	// Per §4.1's canonical precedence: explicit-base beats project-agent.
	dir := t.TempDir()

	project := filepath.Join(dir, "project.yaml")
	writeFile(t, project, `
agents:
  Pete:
    behavior:
      timeout: 5
`)
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, `
behavior:
  timeout: 42
`)

	cfg := &EffectiveConfig{
		warnf:      func(string, ...any) {},
		agentCache: map[string]map[string]any{},
	}
	projLayer, ok := tryLoadLayer(OriginProject, project, cfg.warnf)
	if !ok {
		t.Fatal("failed to load project layer")
	}
	explicitLayer, ok := tryLoadLayer(OriginExplicit, explicit, cfg.warnf)
	if !ok {
		t.Fatal("failed to load explicit layer")
	}
	cfg.layers = []Layer{{Origin: OriginBuiltin, Content: builtinDefaults()}, projLayer, explicitLayer}

	if got := cfg.Float("behavior.timeout", 0, "Pete"); got != 42 {
		t.Errorf("expected explicit base 42 to win over project agent override, got %v", got)
	}
}

func TestDeepMergeReplacesListsWholesale(t *testing.T) {
	dst := map[string]any{"stop": []any{"a", "b"}}
	src := map[string]any{"stop": []any{"c"}}
	merged := deepMerge(dst, src)

	list, ok := merged["stop"].([]any)
	if !ok || len(list) != 1 || list[0] != "c" {
		t.Errorf("expected list replaced wholesale with [c], got %#v", merged["stop"])
	}
}

func TestGetFallsBackToDefaultOnTypeConflict(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "behavior:\n  max_retries: \"not-a-number\"\n")

	var warned bool
	cfg, err := Load(explicit, func(string, ...any) { warned = true })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Int("behavior.max_retries", 3, ""); got != 3 {
		t.Errorf("expected fallback default 3, got %v", got)
	}
	if !warned {
		t.Error("expected a warning to be logged on type conflict")
	}
}

func TestPathExpansion(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "paths:\n  save_location: \"$HOME/convos\"\n")
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(explicit, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.String("paths.save_location", "", ""); got != "/home/tester/convos" {
		t.Errorf("expected expanded path, got %q", got)
	}
}
