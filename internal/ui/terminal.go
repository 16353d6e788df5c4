package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// maxHistoryEntries is §4.2's history cap; the oldest entries are trimmed
// once exceeded.
const maxHistoryEntries = 1000

// Terminal owns the controlling terminal for the lifetime of the chat
// loop. ReadLine blocks the calling goroutine (the main one — never
// offloaded to a worker, per §4.2) until one logical line of input is
// available, including multi-line assembly.
type Terminal struct {
	rl         *readline.Instance
	scanner    *bufio.Scanner // non-TTY fallback
	tty        bool
	prompt     string
	contPrompt string
}

// NewTerminal opens the line editor against historyPath (already
// expanded). When stdin is not a controlling terminal, it degrades to a
// plain bufio.Scanner with history and completion disabled, per §4.2's
// non-TTY fallback.
func NewTerminal(prompt, historyPath string) (*Terminal, error) {
	tty := IsOutputTTY(os.Stdout) && isTerminalStdin()

	if !tty {
		return &Terminal{
			scanner:    bufio.NewScanner(os.Stdin),
			tty:        false,
			prompt:     prompt,
			contPrompt: "... ",
		}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyPath,
		HistoryLimit:    maxHistoryEntries,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("open line editor: %w", err)
	}

	return &Terminal{rl: rl, tty: true, prompt: prompt, contPrompt: "... "}, nil
}

// Close releases the underlying line editor resources.
func (t *Terminal) Close() error {
	if t.rl != nil {
		return t.rl.Close()
	}
	return nil
}

// ErrEOF is returned by ReadLine when the input stream has closed.
var ErrEOF = io.EOF

// ErrInterrupted is returned by ReadLine when the user sends a keyboard
// interrupt at the top-level prompt (not mid multi-line capture).
var ErrInterrupted = fmt.Errorf("interrupted")

// ReadLine reads one logical input per §4.2/§4.3's protocol: a single
// readline submission, or — when it equals the multi-line initiator —
// repeated submissions accumulated until an empty line, joined with
// newlines with the trailing empty line removed.
func (t *Terminal) ReadLine() (string, error) {
	first, err := t.readOneLine(t.prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(first) != `\\` {
		return first, nil
	}

	var lines []string
	for {
		line, err := t.readOneLine(t.contPrompt)
		if err != nil {
			if err == ErrInterrupted {
				// Keyboard interrupt abandons the multi-line buffer (§4.2).
				return "", nil
			}
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Terminal) readOneLine(prompt string) (string, error) {
	if !t.tty {
		fmt.Fprint(os.Stdout, prompt)
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrEOF
		}
		return t.scanner.Text(), nil
	}

	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	switch err {
	case readline.ErrInterrupt:
		return "", ErrInterrupted
	case io.EOF:
		return "", ErrEOF
	case nil:
		return line, nil
	default:
		return "", err
	}
}

// ClearScreen resets the terminal display, used by the `clear` builtin
// before the banner is re-emitted.
func (t *Terminal) ClearScreen() {
	if t.rl != nil {
		t.rl.Clean()
	}
	fmt.Fprint(os.Stdout, "\033[H\033[2J")
}

// isTerminalStdin is split out so it can be stubbed in non-TTY test
// environments without faking os.Stdin itself.
var isTerminalStdin = func() bool {
	return readline.IsTerminal(int(os.Stdin.Fd()))
}
