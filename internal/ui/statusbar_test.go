package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/strandschat/chatloop/internal/session"
	"github.com/strandschat/chatloop/internal/tokens"
)

func TestStatusBarOmitsTokensWhenDisabled(t *testing.T) {
	start := time.Now()
	s := session.New(start, "Pete")
	s.RecordAgentSuccess("hi", tokens.Usage{Total: 500}, start)

	bar := StatusBar{ShowTokens: false}
	line := bar.Render("Pete", "anthropic/claude-sonnet-4", s, start)
	if strings.Contains(line, "tokens:") {
		t.Errorf("expected tokens hidden, got %q", line)
	}
	if !strings.Contains(line, "claude-sonnet-4") {
		t.Errorf("expected short model id, got %q", line)
	}
}

func TestStatusBarIncludesTokensWhenEnabled(t *testing.T) {
	start := time.Now()
	s := session.New(start, "Pete")
	s.RecordAgentSuccess("hi", tokens.Usage{Total: 1500}, start)

	bar := StatusBar{ShowTokens: true}
	line := bar.Render("Pete", "claude-sonnet-4", s, start)
	if !strings.Contains(line, "1.5K") {
		t.Errorf("expected formatted token count, got %q", line)
	}
}

func TestShortModelTrimsProviderPrefix(t *testing.T) {
	if got := shortModel("anthropic/claude-sonnet-4-20250514"); got != "claude-sonnet-4-20250514" {
		t.Errorf("got %q", got)
	}
	if got := shortModel("gpt-4o"); got != "gpt-4o" {
		t.Errorf("got %q", got)
	}
}
