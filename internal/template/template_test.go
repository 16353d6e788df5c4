package template

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "review.md", "Review this:\n{input}")
	writeTemplate(t, dir, "notes.txt", "not a template")
	writeTemplate(t, dir, ".md", "empty stem")

	store := New(dir)
	list := store.List()
	if len(list) != 1 || list[0].Name != "review" {
		t.Fatalf("expected exactly one template named review, got %+v", list)
	}
}

func TestListIsAlphabetical(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "zeta.md", "z")
	writeTemplate(t, dir, "alpha.md", "a")
	writeTemplate(t, dir, "mid.md", "m")

	store := New(dir)
	list := store.List()
	if len(list) != 3 || list[0].Name != "alpha" || list[1].Name != "mid" || list[2].Name != "zeta" {
		t.Fatalf("expected alphabetical order, got %+v", list)
	}
}

func TestListOnMissingDirIsEmptyNotError(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if got := store.List(); got != nil {
		t.Errorf("expected nil list for missing dir, got %+v", got)
	}
}

func TestLoadFindsTemplateCaseNormalized(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "Review.md", "body")

	store := New(dir)
	tmpl, ok := store.Load("review")
	if !ok || tmpl.Body != "body" {
		t.Fatalf("expected lowercase lookup to find Review.md, got %+v ok=%v", tmpl, ok)
	}
	if _, ok := store.Load("missing"); ok {
		t.Error("expected missing template to report ok=false")
	}
}

func TestDescriptionSkipsBlankLines(t *testing.T) {
	got := Description(Template{Body: "\n\n  First real line\nSecond line"})
	if got != "First real line" {
		t.Errorf("got %q", got)
	}
}

func TestDescriptionTruncatesLongLines(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}
	got := Description(Template{Body: long})
	if n := utf8.RuneCountInString(got); n != descriptionWidth {
		t.Errorf("expected truncated description of %d characters, got %d (%q)", descriptionWidth, n, got)
	}
}

func TestMaterializeSubstitutesAllOccurrences(t *testing.T) {
	got := Materialize("{input} and {input} again", "X")
	want := "X and X again"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMaterializeAppendsContextWhenNoPlaceholder(t *testing.T) {
	got := Materialize("Review this:", "code X")
	want := "Review this:\n\ncode X"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMaterializeReturnsBodyUnchangedWhenNoContextAndNoPlaceholder(t *testing.T) {
	got := Materialize("Just the body", "")
	if got != "Just the body" {
		t.Errorf("got %q", got)
	}
}

func TestMaterializeIsIdempotentWhenContextEmptyAndPlaceholderPresent(t *testing.T) {
	got := Materialize("Echo: {input}", "")
	if got != "Echo: " {
		t.Errorf("got %q", got)
	}
	if again := Materialize(got, ""); again != got {
		t.Errorf("second application changed result: %q -> %q", got, again)
	}
}
