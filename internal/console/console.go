// Package console implements the line-oriented text mode: draw the map,
// read one command per line, repeat until the run ends.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/session"
)

const (
	clearSequence = "\033[H\033[2J"
	prompt        = "> "

	MsgEscaped  = "You escaped the dungeon - nice work!"
	MsgFarewell = "Thanks for playing!"
)

// Options tunes the console output.
type Options struct {
	Width, Height int  // Size of the drawing buffer; zero picks 72x40
	Clear         bool // Clear the terminal before every frame
}

// Runner drives a session from an io.Reader and writes frames to an io.Writer.
type Runner struct {
	sess   *session.Session
	in     *bufio.Scanner
	out    io.Writer
	screen *core.Screen
	clear  bool
}

// New creates a console runner. The session must already be started.
func New(sess *session.Session, in io.Reader, out io.Writer, opts Options) *Runner {
	if opts.Width <= 0 {
		opts.Width = 72
	}
	if opts.Height <= 0 {
		opts.Height = 40
	}
	return &Runner{
		sess:   sess,
		in:     bufio.NewScanner(in),
		out:    out,
		screen: core.NewScreen(opts.Width, opts.Height),
		clear:  opts.Clear,
	}
}

// Run loops until the game is over or ctx is cancelled. End of input counts
// as quitting.
func (r *Runner) Run(ctx context.Context) (core.GameState, error) {
	for {
		if err := r.draw(); err != nil {
			return r.sess.State(), err
		}
		if st := r.sess.State(); st.GameOver {
			return st, r.farewell(st)
		}
		if err := ctx.Err(); err != nil {
			return r.sess.State(), err
		}

		if _, err := io.WriteString(r.out, prompt); err != nil {
			return r.sess.State(), fmt.Errorf("console: cannot write prompt: %w", err)
		}

		line := "quit"
		if r.in.Scan() {
			line = r.in.Text()
		} else if err := r.in.Err(); err != nil {
			return r.sess.State(), fmt.Errorf("console: cannot read input: %w", err)
		} else {
			// Keep the transcript tidy when input ends without a newline
			fmt.Fprintln(r.out)
		}

		r.sess.Handle(ctx, line)
	}
}

func (r *Runner) draw() error {
	r.sess.Render(r.screen)

	var b strings.Builder
	if r.clear {
		b.WriteString(clearSequence)
	}
	b.WriteString(Frame(r.screen))
	b.WriteByte('\n')

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("console: cannot write frame: %w", err)
	}
	return nil
}

func (r *Runner) farewell(st core.GameState) error {
	var b strings.Builder
	if st.Won {
		b.WriteString(MsgEscaped + "\n")
	}
	b.WriteString(MsgFarewell + "\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}

// Frame returns the screen as plain text with trailing blanks removed.
func Frame(s *core.Screen) string {
	lines := strings.Split(s.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
