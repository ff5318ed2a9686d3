package session

// Command is a user request decoded from a key press.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandSnapshot
	CommandCyclePalette
	CommandContrastUp
	CommandContrastDown
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandSnapshot:
		return "snapshot"
	case CommandCyclePalette:
		return "palette"
	case CommandContrastUp:
		return "contrast-up"
	case CommandContrastDown:
		return "contrast-down"
	default:
		return "none"
	}
}

// NoKey is what key sources report when nothing was pressed.
const NoKey = -1

// ParseKey decodes a key code as returned by HighGUI's WaitKey. Only the low
// byte is significant. Unknown keys, and NoKey, decode to CommandNone.
func ParseKey(key int) Command {
	if key < 0 {
		return CommandNone
	}
	switch key & 0xFF {
	case 'q':
		return CommandQuit
	case 's':
		return CommandSnapshot
	case 'c':
		return CommandCyclePalette
	case '+', '=':
		return CommandContrastUp
	case '-':
		return CommandContrastDown
	}
	return CommandNone
}
