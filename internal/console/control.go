package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Control is a terminal control sequence. It is recorded as a control
// segment: present in ExportANSI, absent from ExportText.
type Control struct {
	seq string
}

// Sequence returns the escape sequence.
func (c *Control) Sequence() string {
	return c.seq
}

// Clear erases the screen.
func Clear() *Control {
	return &Control{seq: ansi.EraseEntireScreen}
}

// Home moves the cursor to the top left.
func Home() *Control {
	return &Control{seq: "\x1b[H"}
}

// Bell rings the terminal bell.
func Bell() *Control {
	return &Control{seq: "\a"}
}

// Move moves the cursor relative to its position. Positive x is right,
// positive y is down.
func Move(x, y int) *Control {
	var b strings.Builder
	switch {
	case x > 0:
		fmt.Fprintf(&b, "\x1b[%dC", x)
	case x < 0:
		fmt.Fprintf(&b, "\x1b[%dD", -x)
	}
	b.WriteString(vertical(y))
	return &Control{seq: b.String()}
}

// MoveToColumn moves the cursor to column x (zero based), then y lines
// down or up.
func MoveToColumn(x, y int) *Control {
	return &Control{seq: fmt.Sprintf("\x1b[%dG", x+1) + vertical(y)}
}

// MoveTo moves the cursor to the zero-based cell (x, y).
func MoveTo(x, y int) *Control {
	return &Control{seq: fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)}
}

// ShowCursor shows or hides the cursor.
func ShowCursor(show bool) *Control {
	if show {
		return &Control{seq: "\x1b[?25h"}
	}
	return &Control{seq: "\x1b[?25l"}
}

// AltScreen enters (and homes) or leaves the alternate screen.
func AltScreen(enable bool) *Control {
	if enable {
		return &Control{seq: "\x1b[?1049h\x1b[H"}
	}
	return &Control{seq: "\x1b[?1049l"}
}

// Title sets the terminal window title.
func Title(title string) *Control {
	return &Control{seq: "\x1b]0;" + title + "\a"}
}

func vertical(y int) string {
	switch {
	case y > 0:
		return fmt.Sprintf("\x1b[%dB", y)
	case y < 0:
		return fmt.Sprintf("\x1b[%dA", -y)
	}
	return ""
}
