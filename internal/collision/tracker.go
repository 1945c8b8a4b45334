// Package collision tracks clip names while a library is assembled and rejects
// duplicates and 64-bit ID collisions before any payload is written.
package collision

import (
	"fmt"

	"github.com/arloliu/mclip/errs"
)

// Tracker maps clip IDs to clip names and keeps the names in insertion order.
//
// A library directory is keyed by clip ID alone, so unlike a tolerant name table
// a collision here is fatal: two names with one ID could never be told apart by
// a reader.
type Tracker struct {
	byID  map[uint64]string
	names []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID:  make(map[uint64]string),
		names: make([]string, 0),
	}
}

// Track records name under id.
//
// Returns:
//   - ErrInvalidName when name is empty
//   - ErrDuplicateClip when the same name was tracked before
//   - ErrHashCollision when a different name already owns id
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty clip name", errs.ErrInvalidName)
	}

	if existing, ok := t.byID[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateClip, name)
		}

		return fmt.Errorf("%w: %q and %q share ID 0x%016x", errs.ErrHashCollision, existing, name, id)
	}

	t.byID[id] = name
	t.names = append(t.names, name)

	return nil
}

// Contains reports whether id has been tracked.
func (t *Tracker) Contains(id uint64) bool {
	_, ok := t.byID[id]
	return ok
}

// Names returns the tracked names in the order Track accepted them.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.byID)
	t.names = t.names[:0]
}
