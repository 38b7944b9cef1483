package playback

import "strings"

// Command is a single instruction for a Controller
type Command uint8

const (
	None Command = iota
	TogglePause
	StepForward
	StepBackward
	Reset
	Tick
	Quit
)

var commandNames = map[Command]string{
	None:         "none",
	TogglePause:  "pause",
	StepForward:  "forward",
	StepBackward: "backward",
	Reset:        "reset",
	Tick:         "tick",
	Quit:         "quit",
}

func (cmd Command) String() string {
	if name, ok := commandNames[cmd]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand returns the command with the given name, or None
func ParseCommand(name string) Command {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == name {
			return cmd
		}
	}
	return None
}

// Bindings maps host key names to commands
type Bindings map[string]Command

// DefaultBindings are the keys of the interactive viewer: space pauses
// and resumes, the arrow keys scrub one frame, r rewinds and q quits.
var DefaultBindings = Bindings{
	" ":     TogglePause,
	"space": TogglePause,
	"right": StepForward,
	"left":  StepBackward,
	"r":     Reset,
	"q":     Quit,
}

// Lookup returns the command bound to key, or None
func (b Bindings) Lookup(key string) Command {
	if cmd, ok := b[key]; ok {
		return cmd
	}
	if cmd, ok := b[strings.ToLower(key)]; ok {
		return cmd
	}
	return None
}
