package canvas

// ToolbarState picks what the bottom toolbar shows.
type ToolbarState int

const (
	StatePalette ToolbarState = iota
	StateCooldown
	StateNotConnected
)

func (s ToolbarState) String() string {
	switch s {
	case StatePalette:
		return "palette"
	case StateCooldown:
		return "cooldown"
	case StateNotConnected:
		return "notConnected"
	}
	return "unknown"
}

// Toolbar decides the toolbar state from login and cooldown.
func Toolbar(loggedIn bool, cd *Countdown) ToolbarState {
	switch {
	case !loggedIn:
		return StateNotConnected
	case cd.Active():
		return StateCooldown
	default:
		return StatePalette
	}
}

// Selection is the pixel picked for the next placement, (-1,-1) when none.
type Selection struct{ X, Y int }

var NoSelection = Selection{-1, -1}

func (s Selection) Valid() bool { return s.X >= 0 && s.Y >= 0 }

// CanDraw reports whether the draw button should be offered.
func CanDraw(state ToolbarState, sel Selection, p *Palette) bool {
	return state == StatePalette && sel.Valid() && p.Selected() != NoColor
}
