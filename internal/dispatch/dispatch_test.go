package dispatch

import "testing"

func TestClassifyEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if got := Classify(in); got.Kind != KindEmpty {
			t.Errorf("Classify(%q).Kind = %v, want KindEmpty", in, got.Kind)
		}
	}
}

func TestClassifyMultiLineInitiator(t *testing.T) {
	if got := Classify(`\\`); got.Kind != KindMultiLineInitiator {
		t.Errorf("Kind = %v, want KindMultiLineInitiator", got.Kind)
	}
}

func TestClassifyBuiltinsCaseInsensitive(t *testing.T) {
	cases := map[string]Builtin{
		"help":      BuiltinHelp,
		"  INFO  ":  BuiltinInfo,
		"Templates": BuiltinTemplates,
		"CLEAR":     BuiltinClear,
		"exit":      BuiltinExit,
		"QUIT":      BuiltinExit,
	}
	for in, want := range cases {
		got := Classify(in)
		if got.Kind != KindBuiltin || got.Builtin != want {
			t.Errorf("Classify(%q) = %+v, want builtin %v", in, got, want)
		}
	}
}

func TestClassifyTemplateInvocation(t *testing.T) {
	got := Classify("/review code X")
	if got.Kind != KindTemplate {
		t.Fatalf("expected KindTemplate, got %v", got.Kind)
	}
	if got.TemplateName != "review" || got.TemplateContext != "code X" {
		t.Errorf("got name=%q context=%q", got.TemplateName, got.TemplateContext)
	}
}

func TestClassifyTemplateInvocationNoContext(t *testing.T) {
	got := Classify("/review")
	if got.Kind != KindTemplate || got.TemplateName != "review" || got.TemplateContext != "" {
		t.Errorf("got %+v", got)
	}
}

func TestClassifyUnknownSlashStillTemplate(t *testing.T) {
	got := Classify("/unknown")
	if got.Kind != KindTemplate || got.TemplateName != "unknown" {
		t.Errorf("expected /unknown to classify as a template invocation, got %+v", got)
	}
}

func TestClassifyOrdinaryPrompt(t *testing.T) {
	got := Classify("  what is the weather  ")
	if got.Kind != KindPrompt || got.Prompt != "what is the weather" {
		t.Errorf("got %+v", got)
	}
}

func TestClassifySlashWithNoWordCharsIsPrompt(t *testing.T) {
	got := Classify("/ 123")
	if got.Kind != KindPrompt {
		t.Errorf("expected bare slash with no name to fall through to prompt, got %+v", got)
	}
}
