package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Origin identifies where a ConfigLayer's content came from.
type Origin int

const (
	// OriginBuiltin is the fixed, hard-coded default mapping.
	OriginBuiltin Origin = iota
	// OriginGlobal is ~/.chatrc.
	OriginGlobal
	// OriginProject is the nearest .chatrc found walking up from the cwd.
	OriginProject
	// OriginExplicit is the --config path supplied on the command line.
	OriginExplicit
)

func (o Origin) String() string {
	switch o {
	case OriginBuiltin:
		return "builtin"
	case OriginGlobal:
		return "global"
	case OriginProject:
		return "project"
	case OriginExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Layer is one source of configuration values, as read from disk (or the
// built-in defaults). Content is the raw parsed YAML document, including
// its optional top-level "agents" overrides node.
type Layer struct {
	Origin  Origin
	Path    string
	Content map[string]any
}

// projectLayerNames in the order they are probed: current directory first,
// then up to three parents.
var projectLayerNames = []string{
	".chatrc",
	"../.chatrc",
	"../../.chatrc",
	"../../../.chatrc",
}

// discoverLayers locates and parses every configuration layer in
// precedence order (lowest first), per §4.1's discovery order. A missing
// global or project layer is skipped silently; warnf is called for every
// layer that is present but unreadable or invalid. A missing or unreadable
// explicit path is returned as a fatal error — every other layer is
// optional.
func discoverLayers(explicitPath string, warnf func(format string, args ...any)) ([]Layer, error) {
	layers := []Layer{{Origin: OriginBuiltin, Content: builtinDefaults()}}

	if home, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(home, ".chatrc")
		if layer, ok := tryLoadLayer(OriginGlobal, globalPath, warnf); ok {
			layers = append(layers, layer)
		}
	} else {
		warnf("could not determine home directory for global config: %v", err)
	}

	for _, candidate := range projectLayerNames {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if layer, ok := tryLoadLayer(OriginProject, candidate, warnf); ok {
			layers = append(layers, layer)
		}
		break
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("configuration: explicit config path %q: %w", explicitPath, err)
		}
		layer, ok := tryLoadLayer(OriginExplicit, explicitPath, warnf)
		if !ok {
			return nil, fmt.Errorf("configuration: explicit config path %q is unreadable", explicitPath)
		}
		layers = append(layers, layer)
	}

	return layers, nil
}

// tryLoadLayer reads and parses a single YAML layer file. A missing file is
// silently skipped (ok=false, no warning — absence is expected for the
// global/project layers). A present-but-invalid file is reported via warnf
// and skipped; this lets subsequent layers still apply per §4.1.
func tryLoadLayer(origin Origin, path string, warnf func(format string, args ...any)) (Layer, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			warnf("skipping %s config %s: %v", origin, path, err)
		}
		return Layer{}, false
	}

	var content map[string]any
	if err := yaml.Unmarshal(raw, &content); err != nil {
		warnf("skipping %s config %s: invalid YAML: %v", origin, path, err)
		return Layer{}, false
	}
	if content == nil {
		content = map[string]any{}
	}

	return Layer{Origin: origin, Path: path, Content: content}, true
}
