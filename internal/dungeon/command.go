package dungeon

import "strings"

// Direction is one of the four cardinal moves.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Delta returns the grid offset of a one-cell move.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// CommandKind enumerates everything the engine understands.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdMoveNorth
	CmdMoveSouth
	CmdMoveEast
	CmdMoveWest
	CmdQuit
	CmdHelp
	CmdInventory
	CmdLook
)

func (k CommandKind) String() string {
	switch k {
	case CmdMoveNorth:
		return "move-north"
	case CmdMoveSouth:
		return "move-south"
	case CmdMoveEast:
		return "move-east"
	case CmdMoveWest:
		return "move-west"
	case CmdQuit:
		return "quit"
	case CmdHelp:
		return "help"
	case CmdInventory:
		return "inventory"
	case CmdLook:
		return "look"
	default:
		return "unknown"
	}
}

// Command is a parsed player input. Raw keeps the normalized text so that
// unknown input can be echoed back.
type Command struct {
	Kind CommandKind
	Raw  string
}

// Direction returns the move direction for movement commands.
func (c Command) Direction() (Direction, bool) {
	switch c.Kind {
	case CmdMoveNorth:
		return North, true
	case CmdMoveSouth:
		return South, true
	case CmdMoveEast:
		return East, true
	case CmdMoveWest:
		return West, true
	}
	return 0, false
}

// IsMove reports whether the command moves the player.
func (c Command) IsMove() bool {
	_, ok := c.Direction()
	return ok
}

var textCommands = map[string]CommandKind{
	"n":         CmdMoveNorth,
	"s":         CmdMoveSouth,
	"e":         CmdMoveEast,
	"w":         CmdMoveWest,
	"quit":      CmdQuit,
	"exit":      CmdQuit,
	"q":         CmdQuit,
	"help":      CmdHelp,
	"?":         CmdHelp,
	"inv":       CmdInventory,
	"inventory": CmdInventory,
	"look":      CmdLook,
	"map":       CmdLook,
}

// Key names from terminal front ends. In key context w/s follow WASD.
var keyCommands = map[string]CommandKind{
	"up":    CmdMoveNorth,
	"down":  CmdMoveSouth,
	"left":  CmdMoveWest,
	"right": CmdMoveEast,
	"w":     CmdMoveNorth,
	"a":     CmdMoveWest,
	"s":     CmdMoveSouth,
	"d":     CmdMoveEast,
	"k":     CmdMoveNorth,
	"h":     CmdMoveWest,
	"j":     CmdMoveSouth,
	"l":     CmdMoveEast,
	"n":     CmdMoveNorth,
	"e":     CmdMoveEast,
	"i":     CmdInventory,
	"?":     CmdHelp,
	"m":     CmdLook,
	"q":     CmdQuit,
}

// ParseCommand turns a typed line into a Command. Matching ignores case and
// surrounding whitespace.
func ParseCommand(raw string) Command {
	text := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := textCommands[text]; ok {
		return Command{Kind: kind, Raw: text}
	}
	return Command{Kind: CmdUnknown, Raw: text}
}

// ParseKey turns a key name such as "up", "<Left>" or "d" into a Command.
// Names outside the key vocabulary fall back to ParseCommand.
func ParseKey(name string) Command {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(strings.TrimPrefix(key, "<"), ">")
	if kind, ok := keyCommands[key]; ok {
		return Command{Kind: kind, Raw: key}
	}
	return ParseCommand(key)
}

// HelpText is shown for the help command.
const HelpText = "Commands:\n" +
	"  n,s,e,w  - move\n" +
	"  look     - reprint map\n" +
	"  inv      - inventory\n" +
	"  help     - help\n" +
	"  quit     - exit"
