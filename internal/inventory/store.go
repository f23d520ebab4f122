package inventory

import (
	"fmt"
	"sort"
)

// Drawers maps a drawer name to its ordered items.
type Drawers map[string][]Item

// Clone returns a deep copy.
func (d Drawers) Clone() Drawers {
	out := make(Drawers, len(d))
	for name, items := range d {
		out[name] = append(make([]Item, 0, len(items)), items...)
	}
	return out
}

// Names returns the drawer names in sorted order.
func (d Drawers) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ItemCount returns the number of items across all drawers.
func (d Drawers) ItemCount() int {
	n := 0
	for _, items := range d {
		n += len(items)
	}
	return n
}

// Validate checks every drawer name and item.
func (d Drawers) Validate() error {
	for _, name := range d.Names() {
		if err := ValidateDrawerName(name); err != nil {
			return err
		}
		for i, item := range d[name] {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("drawer %q item %d: %w", name, i+1, err)
			}
		}
	}
	return nil
}

// Store is the in-memory document store. It is not safe for concurrent use.
type Store struct {
	drawers Drawers
}

// New returns an empty store.
func New() *Store {
	return &Store{drawers: Drawers{}}
}

// ReadAll returns a snapshot of every drawer. The caller owns the result;
// changing it does not change the store.
func (s *Store) ReadAll() Drawers {
	return s.drawers.Clone()
}

// WriteAll replaces the store contents. If any drawer or item is invalid the
// store is left unchanged and the validation error is returned.
func (s *Store) WriteAll(drawers Drawers) error {
	if err := drawers.Validate(); err != nil {
		return err
	}
	s.drawers = drawers.Clone()
	return nil
}

// Len returns the number of drawers.
func (s *Store) Len() int {
	return len(s.drawers)
}
