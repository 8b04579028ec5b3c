//go:build windows

package colors

import (
	"os"

	"golang.org/x/sys/windows"
)

// EnableColor turns ANSI coloring on if the stdout console has virtual terminal processing enabled.
func EnableColor() {
	var mode uint32
	err := windows.GetConsoleMode(windows.Handle(os.Stdout.Fd()), &mode)
	enabled.Store(err == nil && mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0)
}
