package core

// RuntimeConfig contains configuration passed to games at (re)start.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means "pick one from the clock"
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// Outcome values reported in GameState.Outcome.
const (
	OutcomePlaying = "playing"
	OutcomeWon     = "won"
	OutcomeLost    = "lost"
	OutcomeQuit    = "quit"
)

// GameState summarizes a game for the platform after every turn.
type GameState struct {
	Score    int    // Current score (coins collected)
	HP       int    // Health left
	Turns    int    // Moves committed so far
	GameOver bool   // Whether the game has ended
	Won      bool   // Whether the game ended in a win
	Outcome  string // One of the Outcome* constants
}

// Quit reports whether the player walked away from the run.
func (s GameState) Quit() bool {
	return s.Outcome == OutcomeQuit
}

// StepResult is returned by Game.Handle after each command.
type StepResult struct {
	State   GameState
	Message string // Narration produced by the command
}
