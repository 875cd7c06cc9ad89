package core

// Action represents a platform-level intent that is not part of a game's own
// command vocabulary (restarting, leaving a screen, closing the program).
// Game commands travel as text tokens; actions stay with the front end.
type Action int

const (
	ActionNone    Action = iota
	ActionRestart        // R key - start a new run after game over
	ActionBack           // B, Escape - leave the current screen
	ActionQuit           // Ctrl+C - close the program
	ActionToggleHelp
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionToggleHelp:
		return "ToggleHelp"
	default:
		return "Unknown"
	}
}
