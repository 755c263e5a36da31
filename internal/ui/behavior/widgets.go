package behavior

// Widget is a Bootstrap component activated on page load.
type Widget string

const (
	Tooltip Widget = "tooltip"
	Popover Widget = "popover"
)

// Selector is the trigger attribute selector for the widget.
func (w Widget) Selector() string {
	return `[data-bs-toggle="` + string(w) + `"]`
}
