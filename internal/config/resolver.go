// Package config implements the layered configuration resolver described in
// SPEC_FULL.md §4.1: discovery of built-in, global, project, and explicit
// configuration sources, deep-merging them in precedence order, and
// resolving per-agent overrides on top of the merged base.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Warnf is called by the resolver for every non-fatal problem encountered
// while loading layers (missing YAML support is not one of these in Go,
// since the YAML parser is compiled in — but invalid files, type
// conflicts, and skipped layers are).
type Warnf func(format string, args ...any)

// EffectiveConfig is the deep-merged view of every discovered ConfigLayer,
// consumed at runtime via Get/Set. It is built once at startup and never
// hot-reloaded (§3).
type EffectiveConfig struct {
	layers []Layer
	warnf  Warnf

	// baseCache and agentCache memoize the per-agent merged views; building
	// them requires walking every layer, and Get is called on every turn.
	baseCache  map[string]any
	agentCache map[string]map[string]any
}

// Load discovers every configuration layer (built-in, global, project, and
// the optional explicit path) and returns the merged EffectiveConfig. A
// missing explicit path is a fatal error; every other layer is optional.
func Load(explicitPath string, warnf Warnf) (*EffectiveConfig, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	layers, err := discoverLayers(explicitPath, warnf)
	if err != nil {
		return nil, err
	}

	return &EffectiveConfig{
		layers:     layers,
		warnf:      warnf,
		agentCache: make(map[string]map[string]any),
	}, nil
}

// resolvedFor returns the fully deep-merged map for the given agent name
// ("" for the agent-less base resolution), building and caching it on
// first use. Layers are folded lowest-precedence first so later layers
// override earlier ones, per §4.1.
func (c *EffectiveConfig) resolvedFor(agentName string) map[string]any {
	if agentName == "" {
		if c.baseCache != nil {
			return c.baseCache
		}
	} else if cached, ok := c.agentCache[agentName]; ok {
		return cached
	}

	merged := map[string]any{}
	for _, layer := range c.layers {
		merged = deepMerge(merged, layerEffective(layer, agentName))
	}

	if agentName == "" {
		c.baseCache = merged
	} else {
		c.agentCache[agentName] = merged
	}
	return merged
}

// lookupRaw navigates a dotted path through the merged map for agentName,
// returning the raw value and whether it was found.
func (c *EffectiveConfig) lookupRaw(dottedKey, agentName string) (any, bool) {
	parts := strings.Split(dottedKey, ".")
	var cur any = c.resolvedFor(agentName)

	for _, part := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Get returns the merged value for dottedKey, or def if no layer defines
// it. When agentName is non-empty, per-agent overrides are consulted with
// the precedence described in §4.1. If a value is found but its type is
// incompatible with def's type, the default is returned and a warning is
// logged — §4.1's "type conflict falls back to default" rule — rather
// than failing the lookup.
func (c *EffectiveConfig) Get(dottedKey string, def any, agentName string) any {
	raw, ok := c.lookupRaw(dottedKey, agentName)
	if !ok {
		return def
	}

	coerced, ok := coerce(raw, def)
	if !ok {
		c.warnf("config key %q: type mismatch (expected %T, got %T), using default", dottedKey, def, raw)
		return def
	}

	if strings.HasPrefix(dottedKey, "paths.") {
		if s, ok := coerced.(string); ok {
			return ExpandPath(s)
		}
	}
	return coerced
}

// Set updates the in-memory merged view for dottedKey. It never persists to
// disk and does not affect which layer a subsequent Get would otherwise
// attribute the value to — it simply overwrites the cached resolution,
// matching §4.1's "updates the in-memory representation only".
func (c *EffectiveConfig) Set(dottedKey string, value any, agentName string) {
	target := c.resolvedFor(agentName)
	parts := strings.Split(dottedKey, ".")
	cur := target
	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = value
			return
		}
		next, ok := asMap(cur[part])
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
}

// coerce attempts to align raw's dynamic type with def's, allowing the
// numeric conversions YAML unmarshaling routinely produces (int vs float64,
// []any vs []string) without treating them as a recognized-key type
// conflict.
func coerce(raw, def any) (any, bool) {
	switch def.(type) {
	case bool:
		v, ok := raw.(bool)
		return v, ok
	case string:
		v, ok := raw.(string)
		return v, ok
	case int:
		switch n := raw.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return nil, false
	case float64:
		switch n := raw.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
		return nil, false
	case []string:
		switch s := raw.(type) {
		case []string:
			return s, true
		case []any:
			out := make([]string, 0, len(s))
			for _, item := range s {
				str, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, str)
			}
			return out, true
		}
		return nil, false
	default:
		return raw, true
	}
}

// String is a typed convenience wrapper around Get for string-valued keys.
func (c *EffectiveConfig) String(dottedKey, def, agentName string) string {
	return c.Get(dottedKey, def, agentName).(string)
}

// Bool is a typed convenience wrapper around Get for bool-valued keys.
func (c *EffectiveConfig) Bool(dottedKey string, def bool, agentName string) bool {
	return c.Get(dottedKey, def, agentName).(bool)
}

// Int is a typed convenience wrapper around Get for int-valued keys.
func (c *EffectiveConfig) Int(dottedKey string, def int, agentName string) int {
	return c.Get(dottedKey, def, agentName).(int)
}

// Float is a typed convenience wrapper around Get for float-valued keys.
func (c *EffectiveConfig) Float(dottedKey string, def float64, agentName string) float64 {
	return c.Get(dottedKey, def, agentName).(float64)
}

// Describe returns a short human-readable summary of the discovered layers,
// in precedence order (lowest first).
func (c *EffectiveConfig) Describe() string {
	var b strings.Builder
	for i, layer := range c.layers {
		if i > 0 {
			b.WriteString(", ")
		}
		if layer.Path != "" {
			fmt.Fprintf(&b, "%s(%s)", layer.Origin, layer.Path)
		} else {
			fmt.Fprintf(&b, "%s", layer.Origin)
		}
	}
	return b.String()
}
