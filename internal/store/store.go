// Package store owns the in-memory task list and its mutations.
package store

import "github.com/Makepad-fr/tada/internal/model"

// Store holds items in insertion order.
// Mutations targeting an id that is not in the list are silent no-ops.
type Store struct {
	items []model.Item
}

// New returns a Store seeded with a copy of items.
func New(items []model.Item) *Store {
	s := &Store{items: make([]model.Item, 0, len(items))}
	s.items = append(s.items, items...)
	return s
}

// Items returns a copy of the current list.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Get returns the item with the given id.
func (s *Store) Get(id int) (model.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// NextID is one past the largest id in the list, or 1 for an empty list.
// Deleting the current maximum and adding again hands out the same id.
func (s *Store) NextID() int {
	maxID := 0
	for _, it := range s.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	return maxID + 1
}

// Add appends a new incomplete item. Blank text is the caller's problem.
func (s *Store) Add(text string) {
	s.items = append(s.items, model.Item{ID: s.NextID(), Text: text})
}

// Edit replaces the text of the item with id, keeping its completion flag.
func (s *Store) Edit(id int, text string) {
	if i := s.index(id); i >= 0 {
		s.items[i] = model.Item{ID: id, Text: text, Complete: s.items[i].Complete}
	}
}

// Delete removes every item with id.
func (s *Store) Delete(id int) {
	kept := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// ToggleComplete flips the completion flag of the item with id.
func (s *Store) ToggleComplete(id int) {
	if i := s.index(id); i >= 0 {
		it := s.items[i]
		s.items[i] = model.Item{ID: it.ID, Text: it.Text, Complete: !it.Complete}
	}
}

func (s *Store) index(id int) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
