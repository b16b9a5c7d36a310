// Package store provides persistent storage for theme preferences.
package store

import (
	"errors"
)

// ErrNotFound is returned when a preference is not found in the store.
var ErrNotFound = errors.New("preference not found")

// RWLocker is the subset of sync.RWMutex used by Store.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noopLocker is used for postgres, which handles its own concurrency.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
