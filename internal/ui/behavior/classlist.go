// Package behavior holds the DOM-free rules behind the blog's page widgets.
// Each function takes what the browser would read and returns what it
// should change, so the rules can be tested without a page.
package behavior

import "strings"

// ClassList mirrors an element's class attribute.
type ClassList []string

func ParseClassList(attr string) ClassList {
	return ClassList(strings.Fields(attr))
}

func (c ClassList) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

// Add returns c with name appended if it was not already present.
func (c ClassList) Add(name string) ClassList {
	if name == "" || c.Contains(name) {
		return c
	}
	return append(c, name)
}

// Toggle removes name if present, adds it otherwise.
func (c ClassList) Toggle(name string) ClassList {
	if !c.Contains(name) {
		return append(c, name)
	}
	out := make(ClassList, 0, len(c))
	for _, n := range c {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func (c ClassList) String() string {
	return strings.Join(c, " ")
}
