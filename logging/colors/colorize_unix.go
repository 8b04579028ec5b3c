//go:build !windows

package colors

// EnableColor turns ANSI coloring on. Non-windows terminals are assumed to support escape codes.
func EnableColor() {
	enabled.Store(true)
}
