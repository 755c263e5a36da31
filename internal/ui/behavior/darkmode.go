package behavior

import "strconv"

const (
	DarkModeKey   = "darkMode"
	DarkModeClass = "dark-mode"
)

// ResolveDarkMode decides the initial theme: a stored "true" wins, otherwise
// the system preference applies. A stored "false" does not override a dark
// system preference.
func ResolveDarkMode(stored string, prefersDark bool) bool {
	return stored == "true" || prefersDark
}

// ToggleDarkMode flips the theme and returns the value to store.
func ToggleDarkMode(current bool) (bool, string) {
	next := !current
	return next, strconv.FormatBool(next)
}
