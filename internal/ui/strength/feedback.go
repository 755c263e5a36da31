package strength

// Feedback gives a short warning and suggestions for a score (warn-only use).
func Feedback(score int) (string, []string) {
	switch {
	case score >= MaxScore:
		return "", nil
	case score == 4:
		return "", []string{"Consider using a 3–4 word passphrase for even stronger security."}
	case score == 3:
		return "Low variety.", []string{"Mix upper and lower case letters, numbers and symbols."}
	case score >= 1:
		return "Too short or predictable.", []string{"Use at least 8 chars with upper/lower, numbers, symbols."}
	default:
		return "Very weak password.", []string{"Use 12+ chars with upper/lower, numbers, symbols."}
	}
}

// Missing lists the names of the criteria pwd does not meet.
func Missing(pwd string) []string {
	var out []string
	for _, c := range Criteria(pwd) {
		if !c.Met {
			out = append(out, c.Name)
		}
	}
	return out
}
