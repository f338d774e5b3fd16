package tuitest

import "fmt"

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyEsc exits transient overlays inside the TUI.
	KeyEsc = []byte{27}
	// KeyCtrlU clears a text input up to the cursor.
	KeyCtrlU = []byte{21}
	// KeyRight moves the focus to the next word in manual mode.
	KeyRight = []byte("\x1b[C")
)

// Keys returns s as typed input.
func Keys(s string) []byte {
	return []byte(s)
}

// MouseMotion encodes a pointer move to the zero-based cell (x, y) in SGR
// mouse mode, which bubbletea enables with WithMouseAllMotion.
func MouseMotion(x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[<35;%d;%dM", x+1, y+1))
}

// MouseClick encodes a left button press at the zero-based cell (x, y).
func MouseClick(x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
}
