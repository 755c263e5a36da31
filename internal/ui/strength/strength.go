// Package strength scores passwords for the strength meter shown under
// password inputs.
package strength

import "strings"

// MaxScore is the number of criteria a password can satisfy.
const MaxScore = 5

const symbols = `!@#$%^&*(),.?":{}|<>`

// Criterion is one of the independent checks contributing to a score.
type Criterion struct {
	Name string `json:"name"`
	Met  bool   `json:"met"`
}

// Criteria evaluates every rule; none short-circuits another.
func Criteria(pwd string) []Criterion {
	var n int
	var hasL, hasU, hasD, hasS bool
	for _, r := range pwd {
		n++
		switch {
		case r >= 'a' && r <= 'z':
			hasL = true
		case r >= 'A' && r <= 'Z':
			hasU = true
		case r >= '0' && r <= '9':
			hasD = true
		case strings.ContainsRune(symbols, r):
			hasS = true
		}
	}
	return []Criterion{
		{Name: "length", Met: n >= 8},
		{Name: "lowercase", Met: hasL},
		{Name: "uppercase", Met: hasU},
		{Name: "digit", Met: hasD},
		{Name: "symbol", Met: hasS},
	}
}

// Score returns how many criteria pwd satisfies, 0..MaxScore.
func Score(pwd string) int {
	score := 0
	for _, c := range Criteria(pwd) {
		if c.Met {
			score++
		}
	}
	return score
}
