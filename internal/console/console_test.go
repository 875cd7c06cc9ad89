package console

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/dungeon"
	"github.com/vovakirdan/dungeon-crawl/internal/session"
	"github.com/vovakirdan/dungeon-crawl/internal/telemetry"
)

func startSession(t *testing.T, layout ...string) *session.Session {
	t.Helper()
	g := dungeon.New(dungeon.Level{ID: "test", Name: "Test Hall", Layout: layout})
	s := session.New(g, session.Options{Tracer: telemetry.NoopTracer()})
	if err := s.Start(context.Background(), core.RuntimeConfig{Seed: 1}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return s
}

func TestRunTranscript(t *testing.T) {
	s := startSession(t, "#######", "#@...E#", "#######")
	in := strings.NewReader("help\nDance\ninv\nquit\nn\n")
	var out strings.Builder

	st, err := New(s, in, &out, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !st.GameOver || st.Won || st.Outcome != "quit" {
		t.Errorf("final state = %+v, expected a quit", st)
	}

	transcript := out.String()
	for _, want := range []string{
		"#@...E#",
		"n,s,e,w  - move",
		"Unknown command: 'dance'. Type 'help' for options.",
		"Inventory: (empty)",
		"You gave up. Game over.",
		MsgFarewell,
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript is missing %q:\n%s", want, transcript)
		}
	}
	if strings.Contains(transcript, MsgEscaped) {
		t.Error("a quit must not print the escape line")
	}
	if strings.Contains(transcript, clearSequence) {
		t.Error("Clear is off, no escape codes expected")
	}
}

func TestRunWin(t *testing.T) {
	s := startSession(t, "@$E")
	var out strings.Builder

	st, err := New(s, strings.NewReader("e\nE\n"), &out, Options{Clear: true}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !st.Won {
		t.Fatalf("final state = %+v, expected a win", st)
	}

	transcript := out.String()
	if !strings.HasSuffix(transcript, MsgEscaped+"\n"+MsgFarewell+"\n") {
		t.Errorf("transcript should end with the farewell lines:\n%s", transcript)
	}
	if !strings.Contains(transcript, clearSequence) {
		t.Error("Clear is on, expected clear sequences")
	}
}

func TestRunEOFQuits(t *testing.T) {
	s := startSession(t, "@.E")
	var out strings.Builder

	st, err := New(s, strings.NewReader(""), &out, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if st.Outcome != "quit" {
		t.Errorf("Outcome = %q, expected quit on EOF", st.Outcome)
	}
}

func TestRunCancelled(t *testing.T) {
	s := startSession(t, "@.E")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(s, strings.NewReader("e\n"), &strings.Builder{}, Options{}).Run(ctx); err == nil {
		t.Error("Run() should return the context error")
	}
}

func TestFrameTrimsBlanks(t *testing.T) {
	scr := core.NewScreen(6, 4)
	scr.DrawText(0, 0, "ab")
	scr.DrawText(1, 1, "c")

	if got, want := Frame(scr), "ab\n c"; got != want {
		t.Errorf("Frame() = %q, expected %q", got, want)
	}
}
