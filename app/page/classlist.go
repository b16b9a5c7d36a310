package page

import "strings"

// ClassList is an ordered set of CSS class names, the Go counterpart of an element's classList.
type ClassList struct {
	names []string
}

// Add appends the class unless it is already present.
func (c *ClassList) Add(name string) {
	if name == "" || c.Contains(name) {
		return
	}
	c.names = append(c.names, name)
}

// Remove drops the class if present.
func (c *ClassList) Remove(name string) {
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			return
		}
	}
}

// Toggle removes the class if present, adds it otherwise, and reports whether it is present afterwards.
func (c *ClassList) Toggle(name string) bool {
	if c.Contains(name) {
		c.Remove(name)
		return false
	}
	c.Add(name)
	return c.Contains(name)
}

// Contains reports whether the class is present.
func (c *ClassList) Contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

// String returns the classes joined by spaces, ready for a class attribute.
func (c *ClassList) String() string { return strings.Join(c.names, " ") }
