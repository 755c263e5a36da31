// Package bindings is the page's behavior table: every (selector, event)
// pair the front end reacts to, and the handler that decides the DOM
// changes for it.
package bindings

import (
	"errors"
	"fmt"
)

// EventKind is the DOM event (or page load) a binding fires on.
type EventKind string

const (
	EventLoad   EventKind = "load"
	EventInput  EventKind = "input"
	EventClick  EventKind = "click"
	EventSubmit EventKind = "submit"
	EventChange EventKind = "change"
)

// Handler turns what the page reports about an event into DOM effects.
type Handler func(ev Event) []Effect

// Binding is one row of the table.
type Binding struct {
	Name     string    `json:"name"`
	Selector string    `json:"selector"`
	Event    EventKind `json:"event"`
	Summary  string    `json:"summary"`
	Handler  Handler   `json:"-"`
}

var (
	ErrDuplicateName = errors.New("bindings: duplicate name")
	ErrEmptySelector = errors.New("bindings: empty selector")
	ErrNoHandler     = errors.New("bindings: missing handler")
)

// Table returns a fresh copy of the page's bindings, in evaluation order.
func Table() []Binding {
	out := make([]Binding, len(table))
	copy(out, table)
	return out
}

// Lookup returns every binding for a selector and event.
func Lookup(selector string, ev EventKind) []Binding {
	var out []Binding
	for _, b := range table {
		if b.Selector == selector && b.Event == ev {
			out = append(out, b)
		}
	}
	return out
}

// ByName finds a binding by its name.
func ByName(name string) (Binding, bool) {
	for _, b := range table {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// Selectors lists the distinct selectors the host markup may provide.
func Selectors() []string {
	seen := make(map[string]bool, len(table))
	var out []string
	for _, b := range table {
		if !seen[b.Selector] {
			seen[b.Selector] = true
			out = append(out, b.Selector)
		}
	}
	return out
}

// Validate checks a table for duplicate names, empty selectors and
// missing handlers.
func Validate(bs []Binding) error {
	names := make(map[string]bool, len(bs))
	for _, b := range bs {
		if names[b.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, b.Name)
		}
		names[b.Name] = true
		if b.Selector == "" {
			return fmt.Errorf("%w: %s", ErrEmptySelector, b.Name)
		}
		if b.Handler == nil {
			return fmt.Errorf("%w: %s", ErrNoHandler, b.Name)
		}
	}
	return nil
}

// Dispatch runs every handler bound to selector and event and concatenates
// their effects.
func Dispatch(selector string, kind EventKind, ev Event) []Effect {
	var out []Effect
	for _, b := range Lookup(selector, kind) {
		out = append(out, b.Handler(ev)...)
	}
	return out
}
