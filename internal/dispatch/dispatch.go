// Package dispatch implements the Input Dispatcher described in
// SPEC_FULL.md §4.3: classifying one completed line of user input.
package dispatch

import (
	"strings"
)

// Kind is the category a line of input resolves to.
type Kind int

const (
	KindEmpty Kind = iota
	KindMultiLineInitiator
	KindBuiltin
	KindTemplate
	KindPrompt
)

// Builtin names the recognized builtin commands, post-normalization.
// `quit` is classified as BuiltinExit, its alias.
type Builtin string

const (
	BuiltinHelp      Builtin = "help"
	BuiltinInfo      Builtin = "info"
	BuiltinTemplates Builtin = "templates"
	BuiltinClear     Builtin = "clear"
	BuiltinExit      Builtin = "exit"
)

var builtinNames = map[string]Builtin{
	"help":      BuiltinHelp,
	"info":      BuiltinInfo,
	"templates": BuiltinTemplates,
	"clear":     BuiltinClear,
	"exit":      BuiltinExit,
	"quit":      BuiltinExit,
}

// Classification is the result of dispatching one line of input.
type Classification struct {
	Kind Kind

	// Builtin is set when Kind == KindBuiltin.
	Builtin Builtin

	// TemplateName and TemplateContext are set when Kind == KindTemplate.
	TemplateName    string
	TemplateContext string

	// Prompt is set when Kind == KindPrompt (the trimmed line verbatim).
	Prompt string
}

// Classify applies §4.3's ordered rules to one completed line of raw
// input (already assembled from any multi-line continuation).
func Classify(raw string) Classification {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return Classification{Kind: KindEmpty}
	}
	if trimmed == `\\` {
		return Classification{Kind: KindMultiLineInitiator}
	}
	if b, ok := builtinNames[strings.ToLower(trimmed)]; ok {
		return Classification{Kind: KindBuiltin, Builtin: b}
	}
	if strings.HasPrefix(trimmed, "/") {
		rest := trimmed[1:]
		nameEnd := strings.IndexFunc(rest, func(r rune) bool {
			return !isWordRune(r)
		})
		var name, context string
		if nameEnd == -1 {
			name, context = rest, ""
		} else {
			name, context = rest[:nameEnd], strings.TrimSpace(rest[nameEnd:])
		}
		if name != "" {
			return Classification{
				Kind:            KindTemplate,
				TemplateName:    strings.ToLower(name),
				TemplateContext: context,
			}
		}
	}

	return Classification{Kind: KindPrompt, Prompt: trimmed}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
