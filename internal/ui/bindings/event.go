package bindings

import (
	"io"

	"github.com/5w1tchy/blog-ui/internal/ui/behavior"
)

// Event is what the page reports for an element at event time. Handlers
// read only the fields relevant to them; the zero value means "absent".
type Event struct {
	Value       string // input value
	Href        string // link href
	Path        string // location.pathname
	Valid       bool   // form.checkValidity()
	Confirmed   bool   // answer to the confirm prompt
	InputType   string // type attribute of the sibling input
	IconClass   string // class attribute of the toggle icon
	Stored      string // local storage value for darkMode
	PrefersDark bool   // prefers-color-scheme: dark
	DarkMode    bool   // body currently has dark-mode
	Action      string // form action

	HasStrengthBar  bool
	HasSubmitButton bool
	HasPreview      bool
	PreviewTag      string
	HasContainer    bool
	File            io.Reader
	Alert           behavior.Dismisser
}

// Op is a DOM mutation kind.
type Op string

const (
	OpActivate        Op = "activate"
	OpScheduleDismiss Op = "schedule-dismiss"
	OpSetClass        Op = "set-class"
	OpAddClass        Op = "add-class"
	OpToggleClass     Op = "toggle-class"
	OpSetStyle        Op = "set-style"
	OpSetAttr         Op = "set-attr"
	OpPreventDefault  Op = "prevent-default"
	OpStopPropagation Op = "stop-propagation"
	OpScrollIntoView  Op = "scroll-into-view"
	OpStore           Op = "store"
	OpSetSrc          Op = "set-src"
	OpReplaceChildren Op = "replace-children"
	OpDisable         Op = "disable"
	OpSetHTML         Op = "set-html"
	OpConfirm         Op = "confirm"
	OpAppendChild     Op = "append-child"
)

// Effect is one mutation. Target is a selector or a well-known role
// ("self", "body", "bar", "icon", "input", "submit").
type Effect struct {
	Op     Op                `json:"op"`
	Target string            `json:"target"`
	Name   string            `json:"name,omitempty"`
	Value  string            `json:"value,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"` // attributes of a created element
}
