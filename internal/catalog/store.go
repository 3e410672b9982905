package catalog

import (
	"fmt"
	"strings"
	"sync"
)

// Store is the process-wide tool catalog. Readers always receive copies.
type Store struct {
	mu       sync.RWMutex
	tools    []Descriptor
	onChange func(count int)
}

func NewStore() *Store {
	return &Store{}
}

// NewDefaultStore returns a store seeded with the built-in tools.
func NewDefaultStore() (*Store, error) {
	s := NewStore()
	if err := s.Replace(Defaults()); err != nil {
		return nil, err
	}
	return s, nil
}

// OnChange registers a callback invoked with the tool count after every mutation.
func (s *Store) OnChange(fn func(count int)) {
	s.mu.Lock()
	s.onChange = fn
	count := len(s.tools)
	s.mu.Unlock()

	if fn != nil {
		fn(count)
	}
}

func (s *Store) List() []Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Descriptor, len(s.tools))
	for i, t := range s.tools {
		out[i] = t.clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tools)
}

func (s *Store) Get(slug string) (Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tools {
		if t.Slug == slug {
			return t.clone(), nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

func (s *Store) GetByID(id string) (Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tools {
		if t.ID == id {
			return t.clone(), nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
}

// Add prepares the tool and appends it. The stored copy is returned.
// Conflicts with an existing id or slug are reported before validation.
func (s *Store) Add(d Descriptor) (Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tools {
		if t.ID == d.ID {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		if t.Slug == d.Slug {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrDuplicateSlug, d.Slug)
		}
	}

	prepared, err := Prepare(d)
	if err != nil {
		return Descriptor{}, err
	}
	s.tools = append(s.tools, prepared)
	s.notifyLocked()

	return prepared.clone(), nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tools {
		if t.ID == id {
			s.tools = append(s.tools[:i:i], s.tools[i+1:]...)
			s.notifyLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: id %s", ErrNotFound, id)
}

// Replace swaps the whole catalog. Nothing changes if any tool is invalid or
// ids and slugs are not unique.
func (s *Store) Replace(tools []Descriptor) error {
	prepared := make([]Descriptor, 0, len(tools))
	ids := make(map[string]bool, len(tools))
	slugs := make(map[string]bool, len(tools))

	for _, t := range tools {
		p, err := Prepare(t)
		if err != nil {
			return err
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		ids[p.ID] = true
		slugs[p.Slug] = true
		prepared = append(prepared, p)
	}

	s.mu.Lock()
	s.tools = prepared
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// Filter matches the category (CategoryAll matches everything) and a
// case-insensitive substring of the name or description.
func (s *Store) Filter(category Category, query string) []Descriptor {
	query = strings.ToLower(query)

	var out []Descriptor
	for _, t := range s.List() {
		if category != CategoryAll && category != "" && t.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(len(s.tools))
	}
}
