package strength

import "strconv"

const (
	BarClass    = "password-strength-bar"
	ClassWeak   = "password-weak"
	ClassMedium = "password-medium"
	ClassStrong = "password-strong"
)

// Display is what the strength bar renders for a score.
type Display struct {
	Width int    `json:"width"` // percent
	Class string `json:"class"` // empty for score 0
}

// Present maps a score to the bar width and style class. Anything outside
// 1..5 renders an empty bar.
func Present(score int) Display {
	switch score {
	case 1:
		return Display{Width: 20, Class: ClassWeak}
	case 2:
		return Display{Width: 40, Class: ClassWeak}
	case 3:
		return Display{Width: 60, Class: ClassMedium}
	case 4:
		return Display{Width: 80, Class: ClassStrong}
	case 5:
		return Display{Width: 100, Class: ClassStrong}
	default:
		return Display{}
	}
}

// ClassName is the bar's class attribute after the reset on each keystroke.
func (d Display) ClassName() string {
	if d.Class == "" {
		return BarClass
	}
	return BarClass + " " + d.Class
}

// Style is the inline style applied to the bar.
func (d Display) Style() string {
	return "width: " + strconv.Itoa(d.Width) + "%"
}
