package relation

import "sort"

// Store maps relation names to relations. A Store belongs to one evaluation
// session and is not safe for concurrent mutation.
type Store struct {
	relations map[string]*Relation
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{relations: make(map[string]*Relation)}
}

// Put stores r under its name, replacing any relation with the same name.
func (s *Store) Put(r *Relation) {
	s.relations[r.Name] = r
}

// Get looks up a relation by name.
func (s *Store) Get(name string) (*Relation, bool) {
	r, ok := s.relations[name]
	return r, ok
}

// Lookup is Get with a RelationNotFound error for missing names.
func (s *Store) Lookup(name string) (*Relation, error) {
	r, ok := s.relations[name]
	if !ok {
		return nil, NewNotFoundError(name)
	}
	return r, nil
}

// Has reports whether a relation with the given name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.relations[name]
	return ok
}

// Delete removes a relation. Deleting a missing name is a no-op.
func (s *Store) Delete(name string) {
	delete(s.relations, name)
}

// Names returns all relation names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.relations))
	for n := range s.relations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored relations.
func (s *Store) Len() int {
	return len(s.relations)
}
