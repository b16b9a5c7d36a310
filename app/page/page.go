// Package page models the host page the theme toggler runs in: a document with a body
// container, elements addressable by id, a ready callback and synchronous click dispatch.
// A Document belongs to a single request and is not safe for concurrent use.
package page

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoElement is returned when an element id is not present in the document.
var ErrNoElement = errors.New("element not found")

// ClickListener receives click events dispatched to an element.
// The returned state is the listener's view after handling the click.
type ClickListener interface {
	OnToggle(ctx context.Context) (bool, error)
}

// ClickFunc adapts a function to ClickListener.
type ClickFunc func(ctx context.Context) (bool, error)

// OnToggle calls f(ctx).
func (f ClickFunc) OnToggle(ctx context.Context) (bool, error) { return f(ctx) }

// Element is an addressable node of the document.
type Element struct {
	ID        string
	Classes   *ClassList
	listeners []ClickListener
}

// OnClick registers a listener for clicks on this element.
func (e *Element) OnClick(l ClickListener) {
	e.listeners = append(e.listeners, l)
}

// Document is the root of the page model.
type Document struct {
	Body     *Element
	elements map[string]*Element
	onReady  []func(ctx context.Context)
	ready    bool
}

// New makes a document with an empty body and the given element ids.
func New(ids ...string) *Document {
	d := &Document{
		Body:     &Element{ID: "body", Classes: &ClassList{}},
		elements: make(map[string]*Element, len(ids)),
	}
	for _, id := range ids {
		d.elements[id] = &Element{ID: id, Classes: &ClassList{}}
	}
	return d
}

// ElementByID returns the element with the given id, or nil if absent.
func (d *Document) ElementByID(id string) *Element {
	return d.elements[id]
}

// OnReady registers a callback fired once the document structure is ready.
// Callbacks registered after Ready never fire, same as a DOMContentLoaded listener added too late.
func (d *Document) OnReady(fn func(ctx context.Context)) {
	if d.ready {
		return
	}
	d.onReady = append(d.onReady, fn)
}

// Ready fires the ready callbacks in registration order. Only the first call has any effect.
func (d *Document) Ready(ctx context.Context) {
	if d.ready {
		return
	}
	pending := d.onReady
	d.onReady = nil
	d.ready = true
	for _, fn := range pending {
		fn(ctx)
	}
}

// Click dispatches a click to every listener of the element, in registration order,
// and returns the state reported by the last one. Dispatch stops at the first error.
func (d *Document) Click(ctx context.Context, id string) (bool, error) {
	el := d.ElementByID(id)
	if el == nil {
		return false, fmt.Errorf("click %q: %w", id, ErrNoElement)
	}
	var state bool
	for _, l := range el.listeners {
		st, err := l.OnToggle(ctx)
		if err != nil {
			return state, fmt.Errorf("click %q: %w", id, err)
		}
		state = st
	}
	return state, nil
}
