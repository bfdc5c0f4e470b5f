package console

import "github.com/charmbracelet/lipgloss"

// Box names accepted by Panel and Table.
const (
	BoxRounded = "ROUNDED"
	BoxSquare  = "SQUARE"
	BoxHeavy   = "HEAVY"
	BoxDouble  = "DOUBLE"
	BoxASCII   = "ASCII"
	BoxMinimal = "MINIMAL"
)

// minimalBorder has blank outer edges and light inner separators.
var minimalBorder = lipgloss.Border{
	Top:          " ",
	Bottom:       " ",
	Left:         " ",
	Right:        " ",
	TopLeft:      " ",
	TopRight:     " ",
	BottomLeft:   " ",
	BottomRight:  " ",
	MiddleLeft:   "\u2576",
	MiddleRight:  "\u2574",
	Middle:       "\u253c",
	MiddleTop:    "\u2577",
	MiddleBottom: "\u2575",
}

var boxes = map[string]lipgloss.Border{
	BoxRounded: lipgloss.RoundedBorder(),
	BoxSquare:  lipgloss.NormalBorder(),
	BoxHeavy:   lipgloss.ThickBorder(),
	BoxDouble:  lipgloss.DoubleBorder(),
	BoxASCII:   lipgloss.ASCIIBorder(),
	BoxMinimal: minimalBorder,
}

// safeBoxes swaps the box sets legacy consoles cannot draw (rounded
// corners, heavy lines) for square ones. Other sets pass through.
var safeBoxes = map[string]string{
	BoxRounded: BoxSquare,
	BoxHeavy:   BoxSquare,
}

// BoxNames returns the known box names.
func BoxNames() []string {
	return []string{BoxRounded, BoxSquare, BoxHeavy, BoxDouble, BoxASCII, BoxMinimal}
}
