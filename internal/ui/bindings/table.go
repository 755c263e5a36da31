package bindings

import (
	"github.com/5w1tchy/blog-ui/internal/ui/behavior"
	"github.com/5w1tchy/blog-ui/internal/ui/strength"
)

const (
	previewSelector   = ".profile-picture-preview"
	containerSelector = ".profile-picture-container"

	profileInputSelector = "#id_profile_picture"
)

var table = []Binding{
	{
		Name:     "tooltip",
		Selector: behavior.Tooltip.Selector(),
		Event:    EventLoad,
		Summary:  "activate Bootstrap tooltips",
		Handler:  activate(behavior.Tooltip),
	},
	{
		Name:     "popover",
		Selector: behavior.Popover.Selector(),
		Event:    EventLoad,
		Summary:  "activate Bootstrap popovers",
		Handler:  activate(behavior.Popover),
	},
	{
		Name:     "alert-dismiss",
		Selector: ".alert-dismissible",
		Event:    EventLoad,
		Summary:  "close dismissible alerts after 5 seconds",
		Handler:  alertDismiss,
	},
	{
		Name:     "password-strength",
		Selector: `input[type="password"]`,
		Event:    EventInput,
		Summary:  "update the sibling strength bar on every keystroke",
		Handler:  passwordStrength,
	},
	{
		Name:     "form-validation",
		Selector: ".needs-validation",
		Event:    EventSubmit,
		Summary:  "block invalid forms and show validation styling",
		Handler:  formValidation,
	},
	{
		Name:     "toggle-password",
		Selector: ".toggle-password",
		Event:    EventClick,
		Summary:  "show or hide the preceding password input",
		Handler:  togglePassword,
	},
	{
		Name:     "profile-picture-preview",
		Selector: profileInputSelector,
		Event:    EventChange,
		Summary:  "preview the picked profile picture",
		Handler:  profilePreview,
	},
	{
		Name:     "delete-account-confirm",
		Selector: `form[action*="delete-account"]`,
		Event:    EventSubmit,
		Summary:  "ask before deleting the account",
		Handler:  deleteAccount,
	},
	{
		Name:     "smooth-scroll",
		Selector: `a[href^="#"]`,
		Event:    EventClick,
		Summary:  "scroll smoothly to in-page anchors",
		Handler:  smoothScroll,
	},
	{
		Name:     "nav-active",
		Selector: "nav a",
		Event:    EventLoad,
		Summary:  "mark the nav link for the current page",
		Handler:  navActive,
	},
	{
		Name:     "dark-mode-init",
		Selector: "#darkModeToggle",
		Event:    EventLoad,
		Summary:  "apply the saved or system theme",
		Handler:  darkModeInit,
	},
	{
		Name:     "dark-mode-toggle",
		Selector: "#darkModeToggle",
		Event:    EventClick,
		Summary:  "toggle and persist dark mode",
		Handler:  darkModeToggle,
	},
	{
		Name:     "loading-state",
		Selector: "form[data-loading]",
		Event:    EventSubmit,
		Summary:  "disable the submit button while the form posts",
		Handler:  loadingState,
	},
}

func activate(w behavior.Widget) Handler {
	return func(Event) []Effect {
		return []Effect{{Op: OpActivate, Target: "self", Name: string(w)}}
	}
}

// alertDismiss schedules the close. A close against an alert already
// removed from the page is a no-op on the Dismisser's side.
func alertDismiss(ev Event) []Effect {
	behavior.ScheduleDismiss(ev.Alert)
	return []Effect{{Op: OpScheduleDismiss, Target: "self", Value: behavior.DismissDelay.String()}}
}

func passwordStrength(ev Event) []Effect {
	if !ev.HasStrengthBar {
		return nil
	}
	d := strength.Present(strength.Score(ev.Value))
	return []Effect{
		{Op: OpSetClass, Target: "bar", Value: d.ClassName()},
		{Op: OpSetStyle, Target: "bar", Value: d.Style()},
	}
}

func formValidation(ev Event) []Effect {
	out := behavior.ValidateSubmit(ev.Valid)
	var fx []Effect
	if out.PreventDefault {
		fx = append(fx, Effect{Op: OpPreventDefault, Target: "self"})
	}
	if out.StopPropagation {
		fx = append(fx, Effect{Op: OpStopPropagation, Target: "self"})
	}
	return append(fx, Effect{Op: OpAddClass, Target: "self", Name: out.AddClass})
}

func togglePassword(ev Event) []Effect {
	typ, icon := behavior.TogglePassword(ev.InputType, behavior.ParseClassList(ev.IconClass))
	return []Effect{
		{Op: OpSetAttr, Target: "input", Name: "type", Value: typ},
		{Op: OpSetClass, Target: "icon", Value: icon.String()},
	}
}

func profilePreview(ev Event) []Effect {
	if ev.File == nil {
		return nil
	}
	url, err := behavior.DataURL(ev.File)
	if err != nil {
		return nil
	}
	switch behavior.PlanPreview(ev.HasPreview, ev.PreviewTag, ev.HasContainer) {
	case behavior.PreviewSwapSrc:
		return []Effect{{Op: OpSetSrc, Target: previewSelector, Value: url}}
	case behavior.PreviewReplace:
		img := behavior.NewPreviewImage(url)
		return []Effect{
			{Op: OpReplaceChildren, Target: containerSelector, Name: "img", Value: url, Attrs: img.Attrs()},
			// the file input lives in the container and goes back after the image
			{Op: OpAppendChild, Target: containerSelector, Value: profileInputSelector},
		}
	default:
		return nil
	}
}

func deleteAccount(ev Event) []Effect {
	if ev.Action != "" && !behavior.IsDeleteAccountForm(ev.Action) {
		return nil
	}
	fx := []Effect{{Op: OpConfirm, Target: "self", Value: behavior.DeleteAccountPrompt}}
	if behavior.ConfirmDelete(ev.Confirmed) {
		fx = append(fx, Effect{Op: OpPreventDefault, Target: "self"})
	}
	return fx
}

func smoothScroll(ev Event) []Effect {
	fx := []Effect{{Op: OpPreventDefault, Target: "self"}}
	id, ok := behavior.ScrollTarget(ev.Href)
	if !ok {
		return fx
	}
	o := behavior.SmoothScroll
	return append(fx, Effect{Op: OpScrollIntoView, Target: "#" + id, Name: o.Behavior, Value: o.Block})
}

func navActive(ev Event) []Effect {
	if !behavior.NavActive(ev.Path, ev.Href) {
		return nil
	}
	return []Effect{
		{Op: OpAddClass, Target: "self", Name: behavior.ActiveClass},
		{Op: OpSetAttr, Target: "self", Name: "aria-current", Value: behavior.AriaCurrent},
	}
}

func darkModeInit(ev Event) []Effect {
	if !behavior.ResolveDarkMode(ev.Stored, ev.PrefersDark) {
		return nil
	}
	return []Effect{{Op: OpAddClass, Target: "body", Name: behavior.DarkModeClass}}
}

func darkModeToggle(ev Event) []Effect {
	_, stored := behavior.ToggleDarkMode(ev.DarkMode)
	return []Effect{
		{Op: OpToggleClass, Target: "body", Name: behavior.DarkModeClass},
		{Op: OpStore, Target: "localStorage", Name: behavior.DarkModeKey, Value: stored},
	}
}

func loadingState(ev Event) []Effect {
	st, ok := behavior.Loading(ev.HasSubmitButton)
	if !ok {
		return nil
	}
	return []Effect{
		{Op: OpDisable, Target: "submit"},
		{Op: OpSetHTML, Target: "submit", Value: st.InnerHTML},
	}
}
