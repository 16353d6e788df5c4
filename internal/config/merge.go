package config

import "dario.cat/mergo"

// deepMerge merges src into dst and returns the result. Maps are merged key
// by key (recursively, via mergo.WithOverride so later layers win); any
// other value, including a slice, replaces the destination wholesale —
// §4.1 requires lists to be replaced, not concatenated, which is mergo's
// default behavior absent WithAppendSlice. Both dst and src are deep-cloned
// first so mergo is always free to mutate/alias its working copies without
// corrupting a layer's original parsed content, which resolvedFor's cache
// and layerEffective's per-agent overlays both read repeatedly.
func deepMerge(dst map[string]any, src map[string]any) map[string]any {
	out := deepCloneMap(dst)
	if err := mergo.Merge(&out, deepCloneMap(src), mergo.WithOverride); err != nil {
		// A merge error here means mismatched types mergo refuses to
		// reconcile; §4.1 treats that as a per-key concern handled in
		// Get's coerce step, so the destination simply keeps its prior
		// value for the offending keys.
		return out
	}
	return out
}

// deepCloneMap recursively copies m so the returned map shares no nested
// map with m, regardless of whether m originated from our own code or
// straight out of a parsed YAML document.
func deepCloneMap(m map[string]any) map[string]any {
	clone := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := asMap(v); ok {
			clone[k] = deepCloneMap(sub)
		} else {
			clone[k] = v
		}
	}
	return clone
}

// asMap reports whether v is a nested mapping, accepting both the
// map[string]any shape produced by our own code and the map[string]interface{}
// shape yaml.v3 sometimes produces for already-typed documents.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		converted := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				converted[ks] = val
			}
		}
		return converted, true
	default:
		return nil, false
	}
}

// layerEffective returns the per-layer contribution for a given agent: the
// layer's base sections (everything outside "agents"), with that agent's
// overlay (if any) deep-merged on top. This is what makes a layer's own
// agent override outrank its own base and every lower-precedence layer,
// while still losing to a higher-precedence layer's base — see
// SPEC_FULL.md §4.1.
func layerEffective(layer Layer, agentName string) map[string]any {
	base := map[string]any{}
	for k, v := range layer.Content {
		if k == "agents" {
			continue
		}
		base[k] = v
	}

	if agentName == "" {
		return base
	}

	agentsNode, ok := asMap(layer.Content["agents"])
	if !ok {
		return base
	}
	overlay, ok := asMap(agentsNode[agentName])
	if !ok {
		return base
	}

	return deepMerge(base, overlay)
}
