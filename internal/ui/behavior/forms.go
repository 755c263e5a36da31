package behavior

import "strings"

const (
	WasValidatedClass = "was-validated"

	DeleteAccountPrompt = "Are you sure you want to delete your account? This action cannot be undone."

	LoadingHTML = `<span class="spinner-border spinner-border-sm" role="status" aria-hidden="true"></span> Processing...`
)

// SubmitOutcome describes how a submit event is handled.
type SubmitOutcome struct {
	PreventDefault  bool
	StopPropagation bool
	AddClass        string
}

// ValidateSubmit blocks an invalid form and always marks it validated so the
// browser's own validation styling shows.
func ValidateSubmit(valid bool) SubmitOutcome {
	out := SubmitOutcome{AddClass: WasValidatedClass}
	if !valid {
		out.PreventDefault = true
		out.StopPropagation = true
	}
	return out
}

// IsDeleteAccountForm matches forms whose action contains "delete-account".
func IsDeleteAccountForm(action string) bool {
	return strings.Contains(action, "delete-account")
}

// ConfirmDelete reports whether submission must be blocked given the user's
// answer to DeleteAccountPrompt.
func ConfirmDelete(confirmed bool) (prevent bool) {
	return !confirmed
}

// SubmitButtonState is the submit button after a loading form is submitted.
type SubmitButtonState struct {
	Disabled  bool
	InnerHTML string
}

// Loading returns the busy state for a form's submit button. ok is false when
// the form has no submit button.
func Loading(hasSubmitButton bool) (SubmitButtonState, bool) {
	if !hasSubmitButton {
		return SubmitButtonState{}, false
	}
	return SubmitButtonState{Disabled: true, InnerHTML: LoadingHTML}, true
}
