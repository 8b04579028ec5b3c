package colors

import (
	"fmt"
	"sync/atomic"
)

// enabled tracks whether Colorize should emit ANSI escape codes.
var enabled atomic.Bool

// DisableColor turns off ANSI coloring for every ColorFunc until EnableColor is called again.
func DisableColor() {
	enabled.Store(false)
}

// Enabled reports whether ANSI coloring is currently on.
func Enabled() bool {
	return enabled.Load()
}

// Colorize returns the string s wrapped in ANSI code c, or s unchanged if coloring is disabled.
// Source: https://github.com/rs/zerolog/blob/4fff5db29c3403bc26dee9895e12a108aacc0203/console.go
func Colorize(s any, c Color) string {
	if !enabled.Load() {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
