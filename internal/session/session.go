// Package session runs one play-through of a registered level on behalf of a
// front end. It picks the seed, traces every turn, logs the outcome and
// records the finished run to the scoreboard exactly once.
package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/registry"
	"github.com/vovakirdan/dungeon-crawl/internal/storage"
	"github.com/vovakirdan/dungeon-crawl/internal/telemetry"
)

// Recorder persists finished runs. *storage.Store implements it.
type Recorder interface {
	SaveRun(r storage.Run) (string, error)
}

var _ Recorder = (*storage.Store)(nil)

// Options configures a Session. Zero values are fine: no recording, a
// discarding logger and the global tracer.
type Options struct {
	Player     string
	Difficulty string
	Store      Recorder
	Logger     *log.Logger
	Tracer     trace.Tracer
	Now        func() time.Time
}

// Session wraps a registry.Game for the duration of one or more runs.
type Session struct {
	game registry.Game
	opts Options

	runID    string
	seed     int64
	started  time.Time
	finished bool
	runSpan  trace.Span
}

// New creates a session for game. Call Start before the first command.
func New(game registry.Game, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer("session")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{game: game, opts: opts}
}

// Start begins a new run. A zero seed is replaced by one from the clock so
// that the recorded run can be replayed with --seed.
func (s *Session) Start(ctx context.Context, cfg core.RuntimeConfig) error {
	s.endRun()

	if cfg.Seed == 0 {
		cfg.Seed = s.opts.Now().UnixNano()
	}
	if err := s.game.Reset(cfg); err != nil {
		return err
	}

	s.runID = storage.NewRunID()
	s.seed = cfg.Seed
	s.started = s.opts.Now()
	s.finished = false
	_, s.runSpan = s.opts.Tracer.Start(ctx, "dungeon.run", trace.WithAttributes(
		attribute.String("run.id", s.runID),
		attribute.String("level.id", s.game.ID()),
		attribute.Int64("run.seed", s.seed),
	))

	s.opts.Logger.Debug("run started", "level", s.game.ID(), "run", s.runID, "seed", s.seed)
	return nil
}

// Handle applies a typed command line.
func (s *Session) Handle(ctx context.Context, input string) core.StepResult {
	span := s.startTurn(ctx, "line", input, s.opts.Now())
	res := s.game.Handle(input)
	s.afterTurn(span, input, res)
	return res
}

// HandleKey applies a key press. Unbound keys are not traced.
func (s *Session) HandleKey(ctx context.Context, key string) (core.StepResult, bool) {
	start := s.opts.Now()
	res, ok := s.game.HandleKey(key)
	if !ok {
		return res, false
	}
	s.afterTurn(s.startTurn(ctx, "key", key, start), key, res)
	return res, true
}

// startTurn opens a turn span, starting at start, as a child of the run span.
func (s *Session) startTurn(ctx context.Context, kind, input string, start time.Time) trace.Span {
	if s.runSpan != nil {
		ctx = trace.ContextWithSpan(ctx, s.runSpan)
	}
	_, span := s.opts.Tracer.Start(ctx, "dungeon.turn",
		trace.WithTimestamp(start),
		trace.WithAttributes(
			attribute.String("input.kind", kind),
			attribute.String("input.text", input),
		),
	)
	return span
}

func (s *Session) afterTurn(span trace.Span, input string, res core.StepResult) {
	span.SetAttributes(
		attribute.Int("player.hp", res.State.HP),
		attribute.Int("player.gold", res.State.Score),
		attribute.Int("run.turns", res.State.Turns),
		attribute.String("run.outcome", res.State.Outcome),
	)
	span.End()

	s.opts.Logger.Debug("turn", "input", input, "turns", res.State.Turns, "message", res.Message)

	if res.State.GameOver {
		s.finish(res.State)
	}
}

// finish logs and records the run. Later calls for the same run do nothing.
func (s *Session) finish(st core.GameState) {
	if s.finished {
		return
	}
	s.finished = true

	elapsed := s.opts.Now().Sub(s.started)
	s.opts.Logger.Info("run finished",
		"level", s.game.ID(),
		"run", s.runID,
		"outcome", st.Outcome,
		"gold", st.Score,
		"turns", st.Turns,
	)

	if s.opts.Store != nil {
		_, err := s.opts.Store.SaveRun(storage.Run{
			ID:         s.runID,
			LevelID:    s.game.ID(),
			Player:     s.opts.Player,
			Outcome:    st.Outcome,
			Gold:       st.Score,
			Turns:      st.Turns,
			HP:         st.HP,
			Seed:       s.seed,
			Difficulty: s.opts.Difficulty,
			Duration:   elapsed,
		})
		if err != nil {
			s.opts.Logger.Warn("cannot record run", "run", s.runID, "error", err)
			if s.runSpan != nil {
				s.runSpan.RecordError(err)
				s.runSpan.SetStatus(codes.Error, "record run")
			}
		}
	}

	if s.runSpan != nil {
		s.runSpan.SetAttributes(
			attribute.String("run.outcome", st.Outcome),
			attribute.Int("player.gold", st.Score),
			attribute.Int("run.turns", st.Turns),
		)
	}
	s.endRun()
}

// Close ends the current run span. Unfinished runs are not recorded.
func (s *Session) Close() {
	if s.runSpan != nil && !s.finished {
		s.opts.Logger.Debug("run abandoned", "level", s.game.ID(), "run", s.runID)
	}
	s.endRun()
}

func (s *Session) endRun() {
	if s.runSpan != nil {
		s.runSpan.End()
		s.runSpan = nil
	}
}

// Render draws the game into dst.
func (s *Session) Render(dst *core.Screen) {
	s.game.Render(dst)
}

// State returns the game summary.
func (s *Session) State() core.GameState {
	return s.game.State()
}

// Game returns the wrapped game.
func (s *Session) Game() registry.Game {
	return s.game
}

// RunID returns the identifier of the current run.
func (s *Session) RunID() string {
	return s.runID
}

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 {
	return s.seed
}

// Finished reports whether the current run has ended and been handed to the
// recorder.
func (s *Session) Finished() bool {
	return s.finished
}
