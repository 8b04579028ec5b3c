package colors

// Color is an ANSI SGR code.
type Color int

// ANSI codes used for console output. Values match zerolog's console writer.
const (
	// RED is the ANSI code for red
	RED Color = iota + 31
	// GREEN is the ANSI code for green
	GREEN
	// YELLOW is the ANSI code for yellow
	YELLOW
	// BLUE is the ANSI code for blue
	BLUE
	// MAGENTA is the ANSI code for magenta
	MAGENTA
	// CYAN is the ANSI code for cyan
	CYAN
	// BOLD is the ANSI code for bold text
	BOLD Color = 1
)

// LEFT_ARROW is the glyph printed in front of info-level console logs.
const LEFT_ARROW = "⇾"
