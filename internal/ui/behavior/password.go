package behavior

const (
	IconEye      = "bi-eye"
	IconEyeSlash = "bi-eye-slash"
)

// TogglePassword flips the input type between password and text and swaps
// the eye icon classes.
func TogglePassword(inputType string, icon ClassList) (string, ClassList) {
	next := "password"
	if inputType == "password" {
		next = "text"
	}
	return next, icon.Toggle(IconEye).Toggle(IconEyeSlash)
}
