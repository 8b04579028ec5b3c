package colors

// init probes whether the current console supports ANSI escape codes. Unix terminals always do, Windows consoles need
// a kernel call to find out.
func init() {
	EnableColor()
}
