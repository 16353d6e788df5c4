package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
)

var (
	dotFrames = []string{"⣾ ", "⣽ ", "⣻ ", "⢿ ", "⡿ ", "⣟ ", "⣯ ", "⣷ "}
	spinnerFPS = time.Second / 10 // ~100ms cadence per the thinking-indicator requirement
)

// knightRiderFrames generates a KITT-style scanning animation where a bright
// red light bounces back and forth across a row of dots with a trailing glow.
func knightRiderFrames() []string {
	const numDots = 8
	const dot = "▪"

	bright := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	med := lipgloss.NewStyle().Foreground(lipgloss.Color("#990000"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#440000"))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("#222222"))

	positions := make([]int, 0, 2*numDots-2)
	for i := 0; i < numDots; i++ {
		positions = append(positions, i)
	}
	for i := numDots - 2; i > 0; i-- {
		positions = append(positions, i)
	}

	frames := make([]string, len(positions))
	for f, pos := range positions {
		var b strings.Builder
		for i := 0; i < numDots; i++ {
			d := pos - i
			if d < 0 {
				d = -d
			}
			switch {
			case d == 0:
				b.WriteString(bright.Render(dot))
			case d == 1:
				b.WriteString(med.Render(dot))
			case d == 2:
				b.WriteString(dim.Render(dot))
			default:
				b.WriteString(off.Render(dot))
			}
		}
		frames[f] = b.String()
	}
	return frames
}

func framesFor(style string) []string {
	switch style {
	case "knightrider":
		return knightRiderFrames()
	default:
		return dotFrames
	}
}

// Spinner is the thinking indicator of §4.2: a goroutine-driven animation
// writing directly to stderr, avoiding any TUI framework's terminal
// capability queries since the line editor owns the controlling terminal
// throughout the agent call.
type Spinner struct {
	message string
	frames  []string
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup

	// tty selects between animated frames and the non-TTY dot-progress
	// fallback (§4.2's "plain-dot progress output instead of a spinner").
	tty bool
}

// NewSpinner creates a spinner using the named style ("dots",
// "knightrider") from behavior.spinner_style. When tty is false the
// spinner degrades to periodic plain-dot output.
func NewSpinner(message, style string, tty bool) *Spinner {
	return &Spinner{
		message: message,
		frames:  framesFor(style),
		done:    make(chan struct{}),
		tty:     tty,
	}
}

// Start begins the spinner animation in a separate goroutine. The spinner
// continues until Stop is called.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

// Stop halts the animation and clears its row, returning only after the
// animation goroutine has exited. It is safe to call more than once; only
// the first call has an effect.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
}

func (s *Spinner) run() {
	if !s.tty {
		s.runPlain()
		return
	}

	messageStyle := lipgloss.NewStyle().Italic(true)
	ticker := time.NewTicker(spinnerFPS)
	defer ticker.Stop()

	var frame int
	for {
		select {
		case <-s.done:
			fmt.Fprint(os.Stderr, "\r\033[K")
			return
		case <-ticker.C:
			f := s.frames[frame%len(s.frames)]
			fmt.Fprintf(os.Stderr, "\r %s %s", f, messageStyle.Render(s.message))
			frame++
		}
	}
}

// runPlain is the non-TTY fallback: a dot appended every five spinner
// ticks (about every 500 ms), with no carriage-return redraw and no escape
// sequences.
func (s *Spinner) runPlain() {
	fmt.Fprintf(os.Stderr, "%s", s.message)
	ticker := time.NewTicker(spinnerFPS * 5)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			fmt.Fprintln(os.Stderr)
			return
		case <-ticker.C:
			fmt.Fprint(os.Stderr, ".")
		}
	}
}
