// Package template implements the Template Store described in
// SPEC_FULL.md §4.4: lazy discovery of `~/.prompts/*.md` files and
// materialization of a template body against a user's trailing context.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Template is one discovered `~/.prompts/<name>.md` file.
type Template struct {
	Name string
	Body string
}

// Store enumerates and loads templates from a directory, re-reading the
// directory on every call rather than caching — templates are expected to
// be hand-edited between turns (§4.4's "on demand" discovery).
type Store struct {
	Dir string
}

// New returns a Store rooted at dir (already expanded, e.g. via
// config.ExpandPath("~/.prompts")).
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// List returns every discovered template, sorted alphabetically by name. A
// missing or unreadable directory yields an empty list, not an error — an
// absent `~/.prompts/` is a normal starting state.
func (s *Store) List() []Template {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil
	}

	var templates []Template
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := templateName(e.Name())
		if !ok {
			continue
		}
		body, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			continue
		}
		templates = append(templates, Template{Name: name, Body: string(body)})
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates
}

// Load returns the named template, or ok=false if no matching file exists.
// name is matched case-sensitively against the lowercased filename stem,
// mirroring List's normalization.
func (s *Store) Load(name string) (Template, bool) {
	for _, t := range s.List() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// templateName reports the template name for a filename, and whether the
// filename matches the required `<name>.md` pattern.
func templateName(filename string) (string, bool) {
	if !strings.HasSuffix(filename, ".md") {
		return "", false
	}
	stem := strings.TrimSuffix(filename, ".md")
	if stem == "" {
		return "", false
	}
	return strings.ToLower(stem), true
}

// descriptionWidth bounds the short description shown by the `templates`
// builtin (§4.4).
const descriptionWidth = 60

// Description returns the first non-empty line of t's body, truncated to a
// reasonable display width.
func Description(t Template) string {
	for _, line := range strings.Split(t.Body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > descriptionWidth {
			line = line[:descriptionWidth-1] + "…"
		}
		return line
	}
	return ""
}

// Materialize implements §4.4's substitution law: every literal `{input}`
// placeholder in body is replaced by context; if body has none and context
// is non-empty, context is appended after a blank line; if context is
// empty, body is returned unchanged.
func Materialize(body, context string) string {
	if strings.Contains(body, "{input}") {
		return strings.ReplaceAll(body, "{input}", context)
	}
	if context != "" {
		return body + "\n\n" + context
	}
	return body
}

// ErrNotFound is returned by a consumer that looked up a template name
// Load could not find; kept here so callers format a consistent message.
func ErrNotFound(name string) error {
	return fmt.Errorf("no template named %q", name)
}
